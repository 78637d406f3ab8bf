package model

import (
	"sort"
	"strings"
)

// Map is a game map name, e.g. "cp_process_f12".
type Map string

// MapList is an ordered list of maps for a single game.
type MapList []Map

// ParseMapList splits a user-typed map list on commas, slashes, and
// whitespace, dropping empty tokens.
func ParseMapList(s string) MapList {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '/' || r == ' ' || r == '\t'
	})

	maps := make(MapList, 0, len(fields))
	for _, f := range fields {
		maps = append(maps, Map(f))
	}
	return maps
}

func (l MapList) String() string {
	names := make([]string, len(l))
	for i, m := range l {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func (l MapList) First() (Map, bool) {
	if len(l) == 0 {
		return "", false
	}
	return l[0], true
}

// ServerConfig is a named server configuration preset on the booking
// service, applied when a reservation starts.
type ServerConfig struct {
	Name string
	ID   int32
}

var (
	configSixesScrim5CP  = ServerConfig{Name: "rgl_6s_5cp_scrim", ID: 69}
	configSixesScrimKoth = ServerConfig{Name: "rgl_6s_koth_scrim", ID: 113}
	configSixesMatch5CP  = ServerConfig{Name: "rgl_6s_5cp_match_half1", ID: 68}
	configSixesMatchKoth = ServerConfig{Name: "rgl_6s_koth_bo5", ID: 114}
	configHLStopwatch    = ServerConfig{Name: "rgl_HL_stopwatch", ID: 55}
	configHLKoth         = ServerConfig{Name: "rgl_HL_koth_bo5", ID: 54}
)

// ServerConfigFor resolves the server config for this map under the
// given game kind and format. Maps with no recognized prefix have no
// config, which is not an error: the reservation is simply created
// without a preset.
func (m Map) ServerConfigFor(kind GameKind, format GameFormat) (ServerConfig, bool) {
	name := string(m)

	switch format {
	case FormatSixes:
		switch {
		case strings.HasPrefix(name, "cp_"):
			if kind == KindMatch {
				return configSixesMatch5CP, true
			}
			return configSixesScrim5CP, true
		case strings.HasPrefix(name, "koth_"):
			if kind == KindMatch {
				return configSixesMatchKoth, true
			}
			return configSixesScrimKoth, true
		}
	case FormatHighlander:
		switch {
		case strings.HasPrefix(name, "pl_"), strings.HasPrefix(name, "cp_"):
			return configHLStopwatch, true
		case strings.HasPrefix(name, "koth_"):
			return configHLKoth, true
		}
	}
	return ServerConfig{}, false
}

// The league-sanctioned map pools. Other maps can still be played, they
// just sort after these and never form official combinations.
var sixesMaps = map[Map]bool{
	"cp_gullywash_f9":      true,
	"cp_metalworks_f5":     true,
	"cp_process_f12":       true,
	"cp_snakewater_final1": true,
	"cp_sultry_b8a":        true,
	"cp_sunshine":          true,
	"koth_bagel_rc10":      true,
	"koth_clearcut_b17":    true,
	"cp_granary_pro_rc8":   true,
	"koth_product_final":   true,
}

var hlMaps = map[Map]bool{
	"cp_steel_f12":         true,
	"koth_ashville_final1": true,
	"koth_lakeside_f5":     true,
	"koth_product_final":   true,
	"pl_swiftwater_final1": true,
	"pl_upward_f12":        true,
	"pl_vigil_rc10":        true,
}

// IsOfficial reports whether the map is in the sanctioned pool for the
// format. FormatUnknown checks both pools.
func (m Map) IsOfficial(format GameFormat) bool {
	switch format {
	case FormatSixes:
		return sixesMaps[m]
	case FormatHighlander:
		return hlMaps[m]
	default:
		return sixesMaps[m] || hlMaps[m]
	}
}

// OfficialMaps returns the sanctioned pool for the format in a stable
// alphabetical order.
func OfficialMaps(format GameFormat) MapList {
	var pool map[Map]bool
	switch format {
	case FormatSixes:
		pool = sixesMaps
	case FormatHighlander:
		pool = hlMaps
	default:
		pool = make(map[Map]bool, len(sixesMaps)+len(hlMaps))
		for m := range sixesMaps {
			pool[m] = true
		}
		for m := range hlMaps {
			pool[m] = true
		}
	}

	maps := make(MapList, 0, len(pool))
	for m := range pool {
		maps = append(maps, m)
	}
	sort.Slice(maps, func(i, j int) bool { return maps[i] < maps[j] })
	return maps
}

// SortMaps orders a catalog for display: official maps for the format
// first, then everything else, each group alphabetically.
func SortMaps(maps MapList, format GameFormat) {
	sort.SliceStable(maps, func(i, j int) bool {
		oi, oj := maps[i].IsOfficial(format), maps[j].IsOfficial(format)
		if oi != oj {
			return oi
		}
		return strings.ToLower(string(maps[i])) < strings.ToLower(string(maps[j]))
	})
}
