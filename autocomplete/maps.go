package autocomplete

import (
	"strings"

	"github.com/vidhanio/scheduletf/model"
)

// SuggestMapLists completes a partially typed map list against the
// catalog. catalog must already be sorted official-first for the
// format (the order choices are offered in).
//
// Three cases:
//   - nothing typed: each catalog map as a one-map list;
//   - query ends in a separator: the typed list extended by each
//     catalog map;
//   - a partial last token: official combinations rebuilt by filtering
//     the official pool per slot and taking the cartesian product,
//     then non-official completions of just the last slot.
func SuggestMapLists(catalog model.MapList, format model.GameFormat, query string) []model.MapList {
	typed := model.ParseMapList(query)

	if len(typed) == 0 {
		out := make([]model.MapList, 0, min(len(catalog), MaxChoices))
		for _, m := range catalog {
			if len(out) == MaxChoices {
				break
			}
			out = append(out, model.MapList{m})
		}
		return out
	}

	if endsInSeparator(query) {
		out := make([]model.MapList, 0, min(len(catalog), MaxChoices))
		for _, m := range catalog {
			if len(out) == MaxChoices {
				break
			}
			out = append(out, extend(typed, m))
		}
		return out
	}

	var official, other model.MapList
	for _, m := range catalog {
		if m.IsOfficial(format) {
			official = append(official, m)
		} else {
			other = append(other, m)
		}
	}

	out := officialCombinations(official, typed)

	// Non-official maps have no per-slot structure to validate, so
	// only the token being typed is filtered; earlier slots pass
	// through as typed.
	last := strings.ToLower(string(typed[len(typed)-1]))
	for _, m := range other {
		if len(out) == MaxChoices {
			break
		}
		if strings.Contains(strings.ToLower(string(m)), last) {
			out = append(out, extend(typed[:len(typed)-1], m))
		}
	}
	return out
}

// officialCombinations filters the official pool independently by
// each typed slot's substring and takes the cartesian product in slot
// order, yielding every officially-valid list consistent with the
// input. Built iteratively, one slot at a time, so the cap bounds the
// work even with many slots.
func officialCombinations(official model.MapList, typed model.MapList) []model.MapList {
	partials := []model.MapList{{}}
	for _, slot := range typed {
		token := strings.ToLower(string(slot))

		var candidates model.MapList
		for _, m := range official {
			if strings.Contains(strings.ToLower(string(m)), token) {
				candidates = append(candidates, m)
			}
		}
		if len(candidates) == 0 {
			return nil
		}

		next := make([]model.MapList, 0, min(len(partials)*len(candidates), MaxChoices))
	fill:
		for _, partial := range partials {
			for _, m := range candidates {
				if len(next) == MaxChoices {
					break fill
				}
				next = append(next, extend(partial, m))
			}
		}
		partials = next
	}
	return partials
}

func extend(l model.MapList, m model.Map) model.MapList {
	out := make(model.MapList, len(l), len(l)+1)
	copy(out, l)
	return append(out, m)
}

func endsInSeparator(query string) bool {
	return strings.HasSuffix(query, ",") || strings.HasSuffix(query, "/") ||
		query != strings.TrimRight(query, " \t")
}
