package controller

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vidhanio/scheduletf/model"
)

// LFSMessage builds the text a team pastes into a looking-for-scrim
// channel, e.g. "lfs main 9/15 930/1030". Only scrims without an
// opponent in the requested format are advertised. With slots on
// several dates, each date gets its own line.
func (c *controller) LFSMessage(ctx context.Context, guildID model.GuildID, format *model.GameFormat, division *string) (string, error) {
	team, err := c.db.GetTeam(ctx, guildID)
	if err != nil {
		return "", err
	}

	f, err := resolveFormat(team, format)
	if err != nil {
		return "", err
	}

	div := division
	if div == nil {
		div = team.Division
	}
	if div == nil {
		return "", ErrNoDivision
	}

	kind := model.KindScrim
	games, err := c.db.ListUpcomingGames(ctx, guildID, c.clock.Now(), &kind)
	if err != nil {
		return "", err
	}

	var (
		dates []time.Time
		times = make(map[time.Time][]time.Time)
	)
	for _, g := range games {
		d, ok := g.Details.(model.ScrimDetails)
		if !ok || d.Opponent != 0 || d.Format != f {
			continue
		}

		date := model.EasternDate(g.StartsAt)
		if _, seen := times[date]; !seen {
			dates = append(dates, date)
		}
		times[date] = append(times[date], g.StartsAt)
	}
	if len(dates) == 0 {
		return "", ErrNoOpenScrims
	}

	if len(dates) == 1 {
		return fmt.Sprintf("lfs %s %s %s", *div, lfsDate(dates[0]), lfsTimes(times[dates[0]])), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "lfs %s", *div)
	for _, date := range dates {
		fmt.Fprintf(&b, "\n%s %s", lfsDate(date), lfsTimes(times[date]))
	}
	return b.String(), nil
}

func lfsDate(date time.Time) string {
	return fmt.Sprintf("%d/%d", date.Month(), date.Day())
}

// lfsTimes renders start times in the terse convention scrim channels
// use: "930" for 9:30, "1030" for 10:30, joined with slashes.
func lfsTimes(ts []time.Time) string {
	out := make([]string, len(ts))
	for i, t := range ts {
		t = t.In(model.Eastern)
		hour := t.Hour() % 12
		if hour == 0 {
			hour = 12
		}
		out[i] = fmt.Sprintf("%d%02d", hour, t.Minute())
	}
	return strings.Join(out, "/")
}
