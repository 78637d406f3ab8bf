package controller

import (
	"testing"
	"time"

	"github.com/vidhanio/scheduletf/db/mockdb"
	"github.com/vidhanio/scheduletf/model"
	"github.com/vidhanio/scheduletf/publish/mockmessenger"
	"github.com/vidhanio/scheduletf/rgl"
	"github.com/vidhanio/scheduletf/serveme"
	"github.com/vidhanio/scheduletf/testutils"
)

const (
	testGuild = model.GuildID(5551212)
	testKey   = "team-api-key"
)

func newTestController(t *testing.T) (*controller, *testutils.TestController, *mockdb.DB, *mockmessenger.Messenger) {
	t.Helper()

	tc := testutils.NewTestController()
	t.Cleanup(tc.Close)

	mdb := &mockdb.DB{}
	msg := &mockmessenger.Messenger{}

	c := &controller{
		clock:     tc.Clock,
		db:        mdb,
		serveme:   serveme.NewForTest(tc.FakeServeme.URL()),
		rgl:       rgl.NewForTest(tc.FakeRGL.URL()),
		messenger: msg,
	}
	return c, tc, mdb, msg
}

func strPtr(s string) *string { return &s }

func formatPtr(f model.GameFormat) *model.GameFormat { return &f }

func reservationPtr(id model.ReservationID) *model.ReservationID { return &id }

// teamWithKey is a team that can talk to the booking service but has
// no schedule channel, so implicit refreshes are no-ops.
func teamWithKey() *model.TeamConfig {
	return &model.TeamConfig{GuildID: testGuild, ServemeKey: strPtr(testKey)}
}

// et builds an instant on a September 2024 day in eastern time,
// normalized to UTC the way games are stored.
func et(day, hour, minute int) time.Time {
	return time.Date(2024, time.September, day, hour, minute, 0, 0, model.Eastern).UTC()
}

func TestResolveFormat(t *testing.T) {
	withDefault := &model.TeamConfig{GameFormat: formatPtr(model.FormatHighlander)}
	bare := &model.TeamConfig{}

	tests := map[string]struct {
		team     *model.TeamConfig
		arg      *model.GameFormat
		expected model.GameFormat
		err      error
	}{
		"explicit":               {team: bare, arg: formatPtr(model.FormatSixes), expected: model.FormatSixes},
		"explicit beats default": {team: withDefault, arg: formatPtr(model.FormatSixes), expected: model.FormatSixes},
		"team default":           {team: withDefault, arg: nil, expected: model.FormatHighlander},
		"nothing":                {team: bare, arg: nil, err: ErrNoGameFormat},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := resolveFormat(tc.team, tc.arg)
			if tc.err != nil {
				if err != tc.err {
					t.Fatalf("expected %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, f)
			}
		})
	}
}

func TestGamePasswords(t *testing.T) {
	pw, rcon := gamePasswords(model.KindScrim)
	if len(pw) != len("scrim.")+8 || pw[:6] != "scrim." {
		t.Errorf("bad scrim password: %q", pw)
	}
	if len(rcon) != len("scrim.rcon.")+32 || rcon[:11] != "scrim.rcon." {
		t.Errorf("bad scrim rcon password: %q", rcon)
	}

	pw, rcon = gamePasswords(model.KindMatch)
	if len(pw) != len("match.")+8 || pw[:6] != "match." {
		t.Errorf("bad match password: %q", pw)
	}
	if len(rcon) != len("match.rcon.")+32 || rcon[:11] != "match.rcon." {
		t.Errorf("bad match rcon password: %q", rcon)
	}
}
