package publish

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/vidhanio/scheduletf/model"
)

// ScheduleEntry is one game prepared for rendering. The caller resolves
// the opponent label (a user mention for scrims, a team name for
// officials) and the connect info, which may require external lookups.
type ScheduleEntry struct {
	Game     *model.Game
	Opponent string
	Connect  *model.ConnectInfo
}

// ScheduleEmbed renders the upcoming games as a single embed, grouped
// by eastern date. Entries must be sorted by start time. Within a date,
// the connect block is attached only to the last game of a contiguous
// run sharing the same server assignment, so back-to-back games on one
// reservation print their connect info once.
func ScheduleEmbed(entries []ScheduleEntry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Title: "🗓️ Schedule"}

	if len(entries) == 0 {
		embed.Description = "No upcoming games."
		return embed
	}

	var (
		fields []*discordgo.MessageEmbedField
		field  *discordgo.MessageEmbedField
		date   time.Time
	)
	for i, e := range entries {
		d := model.EasternDate(e.Game.StartsAt)
		if field == nil || !d.Equal(date) {
			field = &discordgo.MessageEmbedField{
				Name: fmt.Sprintf("**%s**", d.Format("Monday, January 2")),
			}
			fields = append(fields, field)
			date = d
		}

		includeConnect := true
		if i+1 < len(entries) {
			next := entries[i+1]
			if model.EasternDate(next.Game.StartsAt).Equal(d) && next.Game.Server == e.Game.Server {
				includeConnect = false
			}
		}

		field.Value += entryLine(e, includeConnect)
	}

	embed.Fields = fields
	return embed
}

func entryLine(e ScheduleEntry, includeConnect bool) string {
	var b strings.Builder

	t := model.Clock12(e.Game.StartsAt)
	switch d := e.Game.Details.(type) {
	case model.ScrimDetails:
		fmt.Fprintf(&b, "**%s:** Scrim vs. %s (%s)", t, e.Opponent, mapsLabel(d.Maps))
	case model.MatchDetails:
		fmt.Fprintf(&b, "**%s:** Official Match vs. %s", t, e.Opponent)
	}

	if includeConnect {
		b.WriteString(" ")
		b.WriteString(connectBlock(e.Connect))
	}
	b.WriteString("\n")
	return b.String()
}

func mapsLabel(maps model.MapList) string {
	if len(maps) == 0 {
		return "TBD"
	}
	return maps.String()
}

func connectBlock(c *model.ConnectInfo) string {
	if c == nil {
		return "```\nNo connect info\n```"
	}
	return fmt.Sprintf("```\n%s\n```", c.ConnectCommand())
}
