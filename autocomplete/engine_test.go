package autocomplete

import (
	"reflect"
	"testing"
	"time"

	"github.com/vidhanio/scheduletf/model"
)

// A fixed Tuesday evening in eastern time used as "now" throughout.
var testNow = time.Date(2024, 9, 10, 18, 0, 0, 0, model.Eastern)

func et(day, hour, minute int) time.Time {
	return time.Date(2024, 9, day, hour, minute, 0, 0, model.Eastern)
}

func TestSplitQuery(t *testing.T) {
	tests := []struct {
		query string
		day   string
		clock string
	}{
		{"", "", ""},
		{"tue", "tue", ""},
		{"tue 930", "tue", "930"},
		{"TUE 930PM", "tue", "930pm"},
		{"930", "", "930"},
		{"   thursday  9 ", "thursday", "9"},
		{"9:30", "", ""}, // colon doesn't fit the grammar; matches everything
		{"not a time query", "", ""},
	}

	for _, tc := range tests {
		_, day, clock := SplitQuery(tc.query)
		if day != tc.day || clock != tc.clock {
			t.Errorf("SplitQuery(%q) = (%q, %q), expected (%q, %q)",
				tc.query, day, clock, tc.day, tc.clock)
		}
	}
}

func TestDayAliases(t *testing.T) {
	today := DayAliases(testNow, et(10, 21, 30))
	if !reflect.DeepEqual(today, []string{"tuesday", "today", "tdy"}) {
		t.Errorf("unexpected aliases for today: %v", today)
	}

	tomorrow := DayAliases(testNow, et(11, 21, 30))
	if !reflect.DeepEqual(tomorrow, []string{"wednesday", "tomorrow", "tmrw"}) {
		t.Errorf("unexpected aliases for tomorrow: %v", tomorrow)
	}

	later := DayAliases(testNow, et(13, 21, 30))
	if !reflect.DeepEqual(later, []string{"friday"}) {
		t.Errorf("unexpected aliases for a later day: %v", later)
	}
}

func TestTimeAliases(t *testing.T) {
	halfPast := TimeAliases(et(10, 21, 30))
	for _, q := range []string{"930", "9:30pm", "9:30 p.m.", "9"} {
		if !anyHasPrefix(halfPast, q) {
			t.Errorf("expected 9:30 PM to match %q, aliases: %v", q, halfPast)
		}
	}
	if anyHasPrefix(halfPast, "10") {
		t.Errorf("9:30 PM should not match %q", "10")
	}

	// On the hour the bare-hour alias applies too.
	onHour := TimeAliases(et(10, 21, 0))
	for _, q := range []string{"9pm", "9 p.m.", "900", "9:00pm"} {
		if !anyHasPrefix(onHour, q) {
			t.Errorf("expected 9:00 PM to match %q, aliases: %v", q, onHour)
		}
	}

	// Odd minutes have no aliases at all.
	if aliases := TimeAliases(et(10, 21, 15)); aliases != nil {
		t.Errorf("expected no aliases for 9:15, got %v", aliases)
	}

	// Noon and midnight render as 12.
	if noon := TimeAliases(et(10, 12, 0)); !anyHasPrefix(noon, "12pm") {
		t.Errorf("expected noon to match 12pm, aliases: %v", noon)
	}
	if midnight := TimeAliases(et(10, 0, 0)); !anyHasPrefix(midnight, "12am") {
		t.Errorf("expected midnight to match 12am, aliases: %v", midnight)
	}
}

func TestSuggestTimes_singleDay(t *testing.T) {
	got := SuggestTimes(testNow, nil, "tmrw 930")

	want := []time.Time{et(11, 9, 30), et(11, 21, 30)}
	if len(got) != len(want) {
		t.Fatalf("expected %d slots, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("slot %d - expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSuggestTimes_multipleDaysDefaults(t *testing.T) {
	// An empty query matches all eight days; with no time token only
	// the default evening blocks are offered, capped at 25.
	got := SuggestTimes(testNow, nil, "")
	if len(got) != 24 {
		t.Fatalf("expected 24 slots (8 days x 3 defaults), got %d", len(got))
	}
	if !got[0].Equal(et(10, 20, 30)) {
		t.Errorf("expected first slot 8:30 PM today, got %v", got[0])
	}

	// "t" matches tuesday, today, tdy, tomorrow, tmrw, and thursday.
	got = SuggestTimes(testNow, nil, "t 1030")
	for _, slot := range got {
		etSlot := slot.In(model.Eastern)
		if etSlot.Minute() != 30 {
			t.Errorf("unexpected slot %v", slot)
		}
	}
	// Today, tomorrow, thursday, and next tuesday; 10:30 AM and PM
	// each, minus 10:30 AM today which is already past.
	if len(got) != 7 {
		t.Errorf("expected 7 slots, got %d: %v", len(got), got)
	}
}

func TestSuggestTimes_skipsTakenAndPast(t *testing.T) {
	taken := map[time.Time]bool{
		et(10, 21, 30).UTC(): true,
	}

	got := SuggestTimes(testNow, taken, "today 930")
	// 9:30 AM today is more than 30 minutes past, 9:30 PM is taken.
	if len(got) != 0 {
		t.Errorf("expected no slots, got %v", got)
	}

	// A slot within the 30 minute grace window is still offered.
	got = SuggestTimes(et(10, 21, 45), nil, "today 930")
	found := false
	for _, slot := range got {
		if slot.Equal(et(10, 21, 30)) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 9:30 PM within the grace window, got %v", got)
	}
}

func TestFilterGames(t *testing.T) {
	games := []*model.Game{
		scrim(et(10, 21, 30)),
		scrim(et(11, 21, 30)),
		scrim(et(11, 22, 30)),
		scrim(et(13, 20, 30)),
	}

	got := FilterGames(testNow, games, "tmrw")
	if len(got) != 2 {
		t.Fatalf("expected 2 games, got %d", len(got))
	}
	if !got[0].StartsAt.Equal(et(11, 21, 30)) || !got[1].StartsAt.Equal(et(11, 22, 30)) {
		t.Errorf("unexpected games: %v, %v", got[0].StartsAt, got[1].StartsAt)
	}

	got = FilterGames(testNow, games, "930")
	if len(got) != 2 {
		t.Fatalf("expected 2 games, got %d", len(got))
	}

	got = FilterGames(testNow, games, "tmrw 1030")
	if len(got) != 1 || !got[0].StartsAt.Equal(et(11, 22, 30)) {
		t.Errorf("expected only tomorrow 10:30, got %v", got)
	}

	if got = FilterGames(testNow, games, ""); len(got) != 4 {
		t.Errorf("empty query should match all games, got %d", len(got))
	}
}

func TestReservationGroups(t *testing.T) {
	games := []*model.Game{
		hosted(et(10, 21, 30), 900),
		hosted(et(10, 22, 30), 900),
		hosted(et(11, 21, 30), 901),
		hosted(et(12, 21, 30), 902), // not live
		scrim(et(13, 20, 30)),       // no reservation
	}
	live := map[model.ReservationID]bool{900: true, 901: true}

	groups := GroupReservations(games, live)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].ID != 900 || len(groups[0].Times) != 2 {
		t.Errorf("unexpected first group: %+v", groups[0])
	}
	if groups[1].ID != 901 {
		t.Errorf("unexpected second group: %+v", groups[1])
	}

	// Day/time match: both of group 900's games are today.
	got := FilterReservations(testNow, groups, "today")
	if len(got) != 1 || got[0].ID != 900 {
		t.Errorf("expected only group 900, got %v", got)
	}

	// Id prefix match works even when day/time don't.
	got = FilterReservations(testNow, groups, "901")
	if len(got) != 1 || got[0].ID != 901 {
		t.Errorf("expected only group 901, got %v", got)
	}

	// The label joins relative times.
	label := groups[0].Label(testNow)
	if label != "900 (Today 9:30 PM, Today 10:30 PM)" {
		t.Errorf("unexpected label: %s", label)
	}
}

func scrim(startsAt time.Time) *model.Game {
	return &model.Game{
		GuildID:  1,
		StartsAt: startsAt,
		Details: model.ScrimDetails{
			Opponent: 777001,
			Format:   model.FormatSixes,
			Maps:     model.MapList{"cp_process_f12"},
		},
	}
}

func hosted(startsAt time.Time, id model.ReservationID) *model.Game {
	g := scrim(startsAt)
	g.Server = model.HostedServer(id)
	return g
}
