package model

import (
	"fmt"
	"time"
	// Team scheduling is pinned to eastern time regardless of where
	// the process runs, so carry the tz database in the binary.
	_ "time/tzdata"
)

// Eastern is the scheduling timezone. All user-facing days and clock
// times are interpreted and rendered in it.
var Eastern *time.Location

func init() {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic(fmt.Sprintf("error loading eastern timezone: %v", err))
	}
	Eastern = loc
}

// EasternDate returns midnight of t's calendar date in eastern time.
func EasternDate(t time.Time) time.Time {
	et := t.In(Eastern)
	return time.Date(et.Year(), et.Month(), et.Day(), 0, 0, 0, 0, Eastern)
}

// Clock12 renders t's eastern clock time in 12-hour form, e.g.
// "9:30 PM".
func Clock12(t time.Time) string {
	et := t.In(Eastern)
	hour := et.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	period := "AM"
	if et.Hour() >= 12 {
		period = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, et.Minute(), period)
}

// FormatRelative renders t for display relative to now: "Today" and
// "Tomorrow" for the nearest dates, the weekday name within a week,
// and a full date beyond that.
func FormatRelative(now, t time.Time) string {
	today := EasternDate(now)
	date := EasternDate(t)

	// Round absorbs the 23- and 25-hour days around DST transitions.
	switch days := int(date.Sub(today).Round(24*time.Hour) / (24 * time.Hour)); {
	case days == 0:
		return "Today " + Clock12(t)
	case days == 1:
		return "Tomorrow " + Clock12(t)
	case days > 1 && days < 7:
		return t.In(Eastern).Weekday().String() + " " + Clock12(t)
	default:
		return t.In(Eastern).Format("Mon, Jan 2") + " " + Clock12(t)
	}
}
