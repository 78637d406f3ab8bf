package publish

import (
	"strings"
	"testing"
	"time"

	"github.com/vidhanio/scheduletf/model"
)

func et(t *testing.T, day, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2024, time.September, day, hour, minute, 0, 0, model.Eastern).UTC()
}

func TestScheduleEmbed_empty(t *testing.T) {
	embed := ScheduleEmbed(nil)
	if embed.Title != "🗓️ Schedule" {
		t.Errorf("wrong title: %q", embed.Title)
	}
	if embed.Description != "No upcoming games." {
		t.Errorf("wrong description: %q", embed.Description)
	}
	if len(embed.Fields) != 0 {
		t.Errorf("expected no fields, got %d", len(embed.Fields))
	}
}

func TestScheduleEmbed_groupsByDate(t *testing.T) {
	entries := []ScheduleEntry{
		{
			Game: &model.Game{
				StartsAt: et(t, 10, 21, 30),
				Server:   model.HostedServer(900),
				Details:  model.ScrimDetails{Opponent: 7, Format: model.FormatSixes, Maps: model.MapList{"cp_process_f12"}},
			},
			Opponent: "<@7>",
			Connect:  &model.ConnectInfo{Address: "chi-1.fakeboot.tf:27015", Password: "scrim.pw"},
		},
		{
			Game: &model.Game{
				StartsAt: et(t, 11, 21, 30),
				Details:  model.MatchDetails{MatchID: 101234},
			},
			Opponent: "rival team",
		},
	}

	embed := ScheduleEmbed(entries)
	if len(embed.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(embed.Fields))
	}

	if embed.Fields[0].Name != "**Tuesday, September 10**" {
		t.Errorf("wrong first date: %q", embed.Fields[0].Name)
	}
	if !strings.Contains(embed.Fields[0].Value, "**9:30 PM:** Scrim vs. <@7> (cp_process_f12)") {
		t.Errorf("wrong scrim line: %q", embed.Fields[0].Value)
	}
	if !strings.Contains(embed.Fields[0].Value, `connect chi-1.fakeboot.tf:27015; password "scrim.pw"`) {
		t.Errorf("missing connect info: %q", embed.Fields[0].Value)
	}

	if embed.Fields[1].Name != "**Wednesday, September 11**" {
		t.Errorf("wrong second date: %q", embed.Fields[1].Name)
	}
	if !strings.Contains(embed.Fields[1].Value, "**9:30 PM:** Official Match vs. rival team") {
		t.Errorf("wrong match line: %q", embed.Fields[1].Value)
	}
	if !strings.Contains(embed.Fields[1].Value, "No connect info") {
		t.Errorf("undecided match should show no connect info: %q", embed.Fields[1].Value)
	}
}

func TestScheduleEmbed_connectOnLastOfRun(t *testing.T) {
	connect := &model.ConnectInfo{Address: "chi-1.fakeboot.tf:27015", Password: "scrim.pw"}
	scrim := func(hour int) *model.Game {
		return &model.Game{
			StartsAt: et(t, 10, hour, 30),
			Server:   model.HostedServer(900),
			Details:  model.ScrimDetails{Opponent: 7, Format: model.FormatSixes, Maps: model.MapList{"cp_sunshine"}},
		}
	}

	entries := []ScheduleEntry{
		{Game: scrim(21), Opponent: "<@7>", Connect: connect},
		{Game: scrim(22), Opponent: "<@7>", Connect: connect},
	}

	embed := ScheduleEmbed(entries)
	if len(embed.Fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(embed.Fields))
	}

	if n := strings.Count(embed.Fields[0].Value, "connect chi-1"); n != 1 {
		t.Errorf("expected connect info exactly once, got %d times:\n%s", n, embed.Fields[0].Value)
	}

	// The connect block belongs to the later game of the run.
	lines := strings.SplitN(embed.Fields[0].Value, "**10:30 PM:**", 2)
	if strings.Contains(lines[0], "connect chi-1") {
		t.Errorf("connect info attached to the first game of the run:\n%s", embed.Fields[0].Value)
	}
}

func TestScheduleEmbed_mapsTBD(t *testing.T) {
	entries := []ScheduleEntry{{
		Game: &model.Game{
			StartsAt: et(t, 10, 21, 30),
			Details:  model.ScrimDetails{Opponent: 7, Format: model.FormatSixes},
		},
		Opponent: "<@7>",
	}}

	embed := ScheduleEmbed(entries)
	if !strings.Contains(embed.Fields[0].Value, "Scrim vs. <@7> (TBD)") {
		t.Errorf("empty map list should render TBD: %q", embed.Fields[0].Value)
	}
}
