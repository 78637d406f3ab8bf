// Package autocomplete resolves partial free-text queries against
// scheduled games, live reservations, candidate time slots, and map
// lists. Matching is prefix-based over precomputed textual aliases so
// "tmrw 930" finds tomorrow's 9:30 game.
package autocomplete

import (
	"fmt"
	"strings"
	"time"

	"github.com/vidhanio/scheduletf/model"
)

// DayAliases returns the strings a user might type for a calendar
// date: its weekday name, plus "today"/"tdy" or "tomorrow"/"tmrw" for
// the nearest two dates. Dates are compared in eastern time.
func DayAliases(now, date time.Time) []string {
	today := model.EasternDate(now)
	d := model.EasternDate(date)
	weekday := strings.ToLower(d.Weekday().String())

	switch {
	case d.Equal(today):
		return []string{weekday, "today", "tdy"}
	case d.Equal(today.AddDate(0, 0, 1)):
		return []string{weekday, "tomorrow", "tmrw"}
	default:
		return []string{weekday}
	}
}

// TimeAliases returns the textual renderings of an eastern clock time
// a user might type. Only whole and half hours have aliases; anything
// else is unmatchable by design, since suggested slots are always on
// the half hour.
func TimeAliases(t time.Time) []string {
	et := t.In(model.Eastern)
	hour24, minute := et.Hour(), et.Minute()

	hour := hour24 % 12
	if hour == 0 {
		hour = 12
	}
	period := "am"
	if hour24 >= 12 {
		period = "pm"
	}

	var stems []string
	switch minute {
	case 0:
		// "9:00", "900", and the bare "9".
		stems = []string{
			fmt.Sprintf("%d:00", hour),
			fmt.Sprintf("%d00", hour),
			fmt.Sprintf("%d", hour),
		}
	case 30:
		stems = []string{
			fmt.Sprintf("%d:30", hour),
			fmt.Sprintf("%d30", hour),
		}
	default:
		return nil
	}

	aliases := make([]string, 0, len(stems)*4)
	for _, stem := range stems {
		aliases = append(aliases,
			stem+" "+period,
			stem+period,
			stem+" "+period[:1]+"."+period[1:]+".",
			stem+period[:1]+"."+period[1:]+".",
		)
	}
	return aliases
}

// dayChoices returns the next eight dates (today included) as
// midnights in eastern time.
func dayChoices(now time.Time) []time.Time {
	today := model.EasternDate(now)
	dates := make([]time.Time, 8)
	for i := range dates {
		dates[i] = today.AddDate(0, 0, i)
	}
	return dates
}

// clockTime is an eastern wall-clock time of day.
type clockTime struct {
	hour, minute int
}

// at composes the wall-clock time onto a date's midnight, in eastern
// time. Composing by wall clock rather than by offset keeps 8:30
// meaning 8:30 across DST transitions.
func (c clockTime) at(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.hour, c.minute, 0, 0, model.Eastern)
}

// timeChoices returns every whole and half hour of the day.
func timeChoices() []clockTime {
	choices := make([]clockTime, 0, 48)
	for hour := range 24 {
		choices = append(choices, clockTime{hour, 0}, clockTime{hour, 30})
	}
	return choices
}

// defaultTimes are the offered start times when the query names a day
// but no time: the common evening scrim blocks.
var defaultTimes = []clockTime{{20, 30}, {21, 30}, {22, 30}}

func anyHasPrefix(aliases []string, prefix string) bool {
	for _, a := range aliases {
		if strings.HasPrefix(a, prefix) {
			return true
		}
	}
	return false
}
