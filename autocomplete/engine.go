package autocomplete

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vidhanio/scheduletf/model"
)

// MaxChoices is the most suggestions any query can return, matching
// the chat platform's autocomplete limit.
const MaxChoices = 25

// SuggestTimes proposes open start times over the next eight days
// matching the query. A query naming several possible days offers only
// the default evening blocks per day unless a time token narrows it;
// a single resolved day offers every half hour. Slots already taken
// and slots more than thirty minutes in the past are never offered.
func SuggestTimes(now time.Time, taken map[time.Time]bool, query string) []time.Time {
	_, dayQuery, timeQuery := SplitQuery(query)

	var dates []time.Time
	for _, date := range dayChoices(now) {
		if anyHasPrefix(DayAliases(now, date), dayQuery) {
			dates = append(dates, date)
		}
	}

	minStart := now.Add(-30 * time.Minute)

	open := func(t time.Time) bool {
		return !taken[t.UTC()] && !t.Before(minStart)
	}

	var out []time.Time
	add := func(t time.Time) bool {
		if open(t) {
			out = append(out, t)
		}
		return len(out) < MaxChoices
	}

	switch {
	case len(dates) == 0:
	case len(dates) == 1:
		for _, c := range timeChoices() {
			t := c.at(dates[0])
			if !anyHasPrefix(TimeAliases(t), timeQuery) {
				continue
			}
			if !add(t) {
				return out
			}
		}
	case timeQuery == "":
		for _, date := range dates {
			for _, c := range defaultTimes {
				if !add(c.at(date)) {
					return out
				}
			}
		}
	default:
		for _, date := range dates {
			for _, c := range timeChoices() {
				t := c.at(date)
				if !anyHasPrefix(TimeAliases(t), timeQuery) {
					continue
				}
				if !add(t) {
					return out
				}
			}
		}
	}
	return out
}

// CandidateTimes returns every slot SuggestTimes could offer for the
// query, before open-slot filtering. Callers use it to ask storage
// which of the candidates are already booked.
func CandidateTimes(now time.Time, query string) []time.Time {
	_, dayQuery, timeQuery := SplitQuery(query)

	var out []time.Time
	for _, date := range dayChoices(now) {
		if !anyHasPrefix(DayAliases(now, date), dayQuery) {
			continue
		}
		for _, c := range timeChoices() {
			t := c.at(date)
			if timeQuery == "" || anyHasPrefix(TimeAliases(t), timeQuery) {
				out = append(out, t)
			}
		}
	}
	return out
}

// FilterGames keeps the games whose start time matches both the day
// and time tokens of the query, preserving order, capped at
// MaxChoices.
func FilterGames(now time.Time, games []*model.Game, query string) []*model.Game {
	_, dayQuery, timeQuery := SplitQuery(query)

	var out []*model.Game
	for _, g := range games {
		if !anyHasPrefix(DayAliases(now, g.StartsAt), dayQuery) {
			continue
		}
		if !anyHasPrefix(TimeAliases(g.StartsAt), timeQuery) {
			continue
		}
		out = append(out, g)
		if len(out) == MaxChoices {
			break
		}
	}
	return out
}

// ReservationGroup is a live reservation and the start times of the
// games backed by it.
type ReservationGroup struct {
	ID    model.ReservationID
	Times []time.Time
}

// Label renders the group as "id (Today 9:30 PM, Today 10:30 PM)".
func (g ReservationGroup) Label(now time.Time) string {
	times := make([]string, len(g.Times))
	for i, t := range g.Times {
		times[i] = model.FormatRelative(now, t)
	}
	return fmt.Sprintf("%d (%s)", g.ID, strings.Join(times, ", "))
}

// GroupReservations buckets hosted games by reservation id, keeping
// only reservations present in the live set, ordered by id with each
// group's times ascending.
func GroupReservations(games []*model.Game, live map[model.ReservationID]bool) []ReservationGroup {
	byID := make(map[model.ReservationID][]time.Time)
	for _, g := range games {
		id, err := g.Server.HostedReservationID()
		if err != nil || !live[id] {
			continue
		}
		byID[id] = append(byID[id], g.StartsAt)
	}

	groups := make([]ReservationGroup, 0, len(byID))
	for id, times := range byID {
		sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
		groups = append(groups, ReservationGroup{ID: id, Times: times})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups
}

// FilterReservations keeps the groups where some member matches the
// day token and some member matches the time token, or where the
// reservation id itself starts with the raw query. Capped at
// MaxChoices.
func FilterReservations(now time.Time, groups []ReservationGroup, query string) []ReservationGroup {
	full, dayQuery, timeQuery := SplitQuery(query)

	var out []ReservationGroup
	for _, group := range groups {
		dayMatches, timeMatches := false, false
		for _, t := range group.Times {
			dayMatches = dayMatches || anyHasPrefix(DayAliases(now, t), dayQuery)
			timeMatches = timeMatches || anyHasPrefix(TimeAliases(t), timeQuery)
		}

		idMatches := strings.HasPrefix(strconv.Itoa(int(group.ID)), full)

		if (dayMatches && timeMatches) || idMatches {
			out = append(out, group)
			if len(out) == MaxChoices {
				break
			}
		}
	}
	return out
}
