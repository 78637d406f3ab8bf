package controller

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vidhanio/scheduletf/db"
	"github.com/vidhanio/scheduletf/model"
	"github.com/vidhanio/scheduletf/testutils"
)

func TestHostMatch(t *testing.T) {
	ctx := context.Background()
	c, tc, mdb, _ := newTestController(t)

	// The start time comes from the league API, not the caller.
	matchDate, _ := time.Parse(time.RFC3339, "2024-09-18T21:30:00-04:00")

	mdb.On("GetTeam", mock.Anything, testGuild).Return(teamWithKey(), nil)
	mdb.On("GetGame", mock.Anything, testGuild, matchDate.UTC()).Return(nil, db.ErrGameNotFound)
	mdb.On("InsertGame", mock.Anything, mock.AnythingOfType("*model.Game")).Return(nil)

	g, err := c.HostMatch(ctx, testGuild, testutils.FakeRGLMatchID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !g.StartsAt.Equal(matchDate) {
		t.Errorf("expected start %v, got %v", matchDate, g.StartsAt)
	}
	if d, ok := g.Details.(model.MatchDetails); !ok || d.MatchID != testutils.FakeRGLMatchID {
		t.Errorf("wrong details: %+v", g.Details)
	}

	res := tc.FakeServeme.Reservation(int32(g.Server.ReservationID))
	if res == nil {
		t.Fatal("reservation was not created")
	}

	// Officials run two hours, so the window is 2h30m.
	wantStart, wantEnd := matchDate.Add(-15*time.Minute), matchDate.Add(135*time.Minute)
	if got, _ := time.Parse(time.RFC3339, res["starts_at"].(string)); !got.Equal(wantStart) {
		t.Errorf("expected start %v, got %v", wantStart, got)
	}
	if got, _ := time.Parse(time.RFC3339, res["ends_at"].(string)); !got.Equal(wantEnd) {
		t.Errorf("expected end %v, got %v", wantEnd, got)
	}

	if pw := res["password"].(string); !strings.HasPrefix(pw, "match.") {
		t.Errorf("bad password: %q", pw)
	}

	// Officials carry no stored map list; the server keeps its defaults.
	if res["first_map"].(string) != "" {
		t.Errorf("no first map should be set, got %v", res["first_map"])
	}
	if _, ok := res["server_config_id"]; ok {
		t.Errorf("no config should be set, got %v", res["server_config_id"])
	}

	mdb.AssertExpectations(t)
}

func TestHostMatch_unknownMatch(t *testing.T) {
	ctx := context.Background()
	c, tc, mdb, _ := newTestController(t)

	mdb.On("GetTeam", mock.Anything, testGuild).Return(teamWithKey(), nil)

	if _, err := c.HostMatch(ctx, testGuild, 999, nil); err == nil {
		t.Fatal("expected an error for an unknown match id")
	}
	if tc.FakeServeme.Count("create") != 0 {
		t.Error("no reservation should have been created")
	}
}

func TestJoinMatch(t *testing.T) {
	ctx := context.Background()
	c, _, mdb, _ := newTestController(t)

	matchDate, _ := time.Parse(time.RFC3339, "2024-09-18T21:30:00-04:00")
	connect := &model.ConnectInfo{Address: "their.server.tf:27015", Password: "theirpw"}

	mdb.On("GetTeam", mock.Anything, testGuild).Return(&model.TeamConfig{GuildID: testGuild}, nil)
	mdb.On("GetGame", mock.Anything, testGuild, matchDate.UTC()).Return(nil, db.ErrGameNotFound)
	mdb.On("InsertGame", mock.Anything, mock.AnythingOfType("*model.Game")).Return(nil)

	g, err := c.JoinMatch(ctx, testGuild, testutils.FakeRGLMatchID, connect)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !g.StartsAt.Equal(matchDate) {
		t.Errorf("expected start %v, got %v", matchDate, g.StartsAt)
	}
	if !g.Server.IsJoined() {
		t.Errorf("expected a joined game, got %+v", g.Server)
	}

	mdb.AssertExpectations(t)
}
