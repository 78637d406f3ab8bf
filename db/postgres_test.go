package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vidhanio/scheduletf/containers"
	"github.com/vidhanio/scheduletf/model"
)

var (
	// A test global db instance to use for all of the tests instead of setting up a new one each time.
	testDB DB

	// a counter to generate a distinct guild id for each test, to keep them separated.
	guildCtr = int64(0)
)

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := containers.NewDBContainer(ctx)
	if err != nil {
		fmt.Printf("error starting container: %v", err)
		os.Exit(-1)
	}

	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			container.Shutdown(ctx)
			fmt.Println("panic")
		}
	}()

	connStr, err := container.ConnectionString(ctx)
	if err != nil {
		container.Shutdown(ctx)
		fmt.Printf("error getting connection string: %v", err)
		os.Exit(-1)
	}

	testDB, err = New(ctx, connStr)
	if err != nil {
		container.Shutdown(ctx)
		fmt.Printf("error connecting to db: %v", err)
		os.Exit(-1)
	}

	code := m.Run()
	if err := container.Shutdown(ctx); err != nil {
		fmt.Printf("error terminating container: %v", err)
	}
	os.Exit(code)
}

func newGuild(t *testing.T) model.GuildID {
	t.Helper()
	id := model.GuildID(100000 + atomic.AddInt64(&guildCtr, 1))

	// Creates the team row the games foreign key needs.
	if _, err := testDB.GetTeam(context.Background(), id); err != nil {
		t.Fatalf("error creating team row: %v", err)
	}
	return id
}

func TestDB_teamLazyCreate(t *testing.T) {
	ctx := context.Background()
	id := model.GuildID(100000 + atomic.AddInt64(&guildCtr, 1))

	team, err := testDB.GetTeam(ctx, id)
	if err != nil {
		t.Fatalf("error getting team: %v", err)
	}
	if team.GuildID != id {
		t.Errorf("expected guild id %d, got %d", id, team.GuildID)
	}
	if team.ServemeKey != nil || team.LeagueTeamID != nil || team.GameFormat != nil {
		t.Errorf("expected an empty config, got %+v", team)
	}

	// A second read returns the same empty row rather than erroring.
	again, err := testDB.GetTeam(ctx, id)
	if err != nil {
		t.Fatalf("error getting team again: %v", err)
	}
	if again.GuildID != id {
		t.Errorf("expected guild id %d, got %d", id, again.GuildID)
	}
}

func TestDB_teamSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	id := newGuild(t)

	key := "seekrit-key"
	format := model.FormatSixes
	leagueTeam := model.TeamID(13001)
	channel := int64(555111)
	division := "Main"

	team := &model.TeamConfig{
		GuildID:           id,
		LeagueTeamID:      &leagueTeam,
		GameFormat:        &format,
		ScheduleChannelID: &channel,
		ServemeKey:        &key,
		Division:          &division,
	}
	if err := testDB.SaveTeam(ctx, team); err != nil {
		t.Fatalf("error saving team: %v", err)
	}

	res, err := testDB.GetTeam(ctx, id)
	if err != nil {
		t.Fatalf("error getting team: %v", err)
	}
	if res.ServemeKey == nil || *res.ServemeKey != key {
		t.Errorf("serveme key not persisted: %v", res.ServemeKey)
	}
	if res.GameFormat == nil || *res.GameFormat != model.FormatSixes {
		t.Errorf("game format not persisted: %v", res.GameFormat)
	}
	if res.LeagueTeamID == nil || *res.LeagueTeamID != leagueTeam {
		t.Errorf("league team id not persisted: %v", res.LeagueTeamID)
	}
	if res.ScheduleMessageID != nil {
		t.Errorf("expected nil schedule message id, got %v", res.ScheduleMessageID)
	}
}

func TestDB_gameSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	id := newGuild(t)
	startsAt := time.Date(2024, 9, 10, 21, 30, 0, 0, time.UTC)

	g := &model.Game{
		GuildID:  id,
		StartsAt: startsAt,
		Server:   model.HostedServer(424242),
		Details: model.ScrimDetails{
			Opponent: 777001,
			Format:   model.FormatSixes,
			Maps:     model.MapList{"cp_process_f12", "koth_bagel_rc10"},
		},
	}
	if err := testDB.InsertGame(ctx, g); err != nil {
		t.Fatalf("error inserting game: %v", err)
	}

	res, err := testDB.GetGame(ctx, id, startsAt)
	if err != nil {
		t.Fatalf("error getting game: %v", err)
	}
	if !res.StartsAt.Equal(startsAt) {
		t.Errorf("expected start %v, got %v", startsAt, res.StartsAt)
	}
	if !res.Server.IsHosted() || res.Server.ReservationID != 424242 {
		t.Errorf("unexpected server: %+v", res.Server)
	}
	details, ok := res.Details.(model.ScrimDetails)
	if !ok {
		t.Fatalf("expected scrim details, got %T", res.Details)
	}
	if details.Opponent != 777001 {
		t.Errorf("unexpected opponent: %d", details.Opponent)
	}
	if !reflect.DeepEqual(details.Maps, model.MapList{"cp_process_f12", "koth_bagel_rc10"}) {
		t.Errorf("unexpected maps: %v", details.Maps)
	}

	// Lookup a game that doesn't exist.
	if _, err := testDB.GetGame(ctx, id, startsAt.Add(time.Hour)); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}
}

func TestDB_gameVariants(t *testing.T) {
	ctx := context.Background()
	id := newGuild(t)
	startsAt := time.Date(2024, 9, 11, 21, 30, 0, 0, time.UTC)

	// A match on a joined server.
	g := &model.Game{
		GuildID:  id,
		StartsAt: startsAt,
		Server: model.JoinedServer(model.ConnectInfo{
			Address:  "192.0.2.10:27015",
			Password: "letmein",
		}),
		Details: model.MatchDetails{MatchID: 101234},
	}
	if err := testDB.InsertGame(ctx, g); err != nil {
		t.Fatalf("error inserting match: %v", err)
	}

	res, err := testDB.GetGame(ctx, id, startsAt)
	if err != nil {
		t.Fatalf("error getting match: %v", err)
	}
	if !res.Server.IsJoined() || res.Server.Connect.Address != "192.0.2.10:27015" {
		t.Errorf("unexpected server: %+v", res.Server)
	}
	details, ok := res.Details.(model.MatchDetails)
	if !ok {
		t.Fatalf("expected match details, got %T", res.Details)
	}
	if details.MatchID != 101234 {
		t.Errorf("unexpected match id: %d", details.MatchID)
	}

	// A scrim with no server decided yet and no maps picked.
	startsAt2 := startsAt.Add(24 * time.Hour)
	g2 := &model.Game{
		GuildID:  id,
		StartsAt: startsAt2,
		Details: model.ScrimDetails{
			Opponent: 777002,
			Format:   model.FormatHighlander,
			Maps:     model.MapList{},
		},
	}
	if err := testDB.InsertGame(ctx, g2); err != nil {
		t.Fatalf("error inserting scrim: %v", err)
	}

	res2, err := testDB.GetGame(ctx, id, startsAt2)
	if err != nil {
		t.Fatalf("error getting scrim: %v", err)
	}
	if res2.Server.IsHosted() || res2.Server.IsJoined() {
		t.Errorf("expected an undecided server, got %+v", res2.Server)
	}
	details2, ok := res2.Details.(model.ScrimDetails)
	if !ok {
		t.Fatalf("expected scrim details, got %T", res2.Details)
	}
	if len(details2.Maps) != 0 {
		t.Errorf("expected no maps, got %v", details2.Maps)
	}
}

func TestDB_timeSlotTaken(t *testing.T) {
	ctx := context.Background()
	id := newGuild(t)
	startsAt := time.Date(2024, 9, 12, 21, 30, 0, 0, time.UTC)

	g := scrimAt(id, startsAt)
	if err := testDB.InsertGame(ctx, g); err != nil {
		t.Fatalf("error inserting game: %v", err)
	}

	// The same slot again.
	if err := testDB.InsertGame(ctx, scrimAt(id, startsAt)); !errors.Is(err, ErrTimeSlotTaken) {
		t.Errorf("expected ErrTimeSlotTaken, got %v", err)
	}

	// Another guild can use the same slot.
	other := newGuild(t)
	if err := testDB.InsertGame(ctx, scrimAt(other, startsAt)); err != nil {
		t.Errorf("error inserting game for other guild: %v", err)
	}

	// Moving a game onto an occupied slot fails too.
	startsAt2 := startsAt.Add(time.Hour)
	if err := testDB.InsertGame(ctx, scrimAt(id, startsAt2)); err != nil {
		t.Fatalf("error inserting second game: %v", err)
	}
	moved := scrimAt(id, startsAt)
	if err := testDB.UpdateGame(ctx, startsAt2, moved); !errors.Is(err, ErrTimeSlotTaken) {
		t.Errorf("expected ErrTimeSlotTaken, got %v", err)
	}
}

func TestDB_updateAndMoveGame(t *testing.T) {
	ctx := context.Background()
	id := newGuild(t)
	startsAt := time.Date(2024, 9, 13, 21, 30, 0, 0, time.UTC)

	if err := testDB.InsertGame(ctx, scrimAt(id, startsAt)); err != nil {
		t.Fatalf("error inserting game: %v", err)
	}

	// Change the server state and move the start an hour later.
	newStart := startsAt.Add(time.Hour)
	updated := &model.Game{
		GuildID:  id,
		StartsAt: newStart,
		Server:   model.HostedServer(91111),
		Details: model.ScrimDetails{
			Opponent: 777001,
			Format:   model.FormatSixes,
			Maps:     model.MapList{"cp_sunshine"},
		},
	}
	if err := testDB.UpdateGame(ctx, startsAt, updated); err != nil {
		t.Fatalf("error updating game: %v", err)
	}

	if _, err := testDB.GetGame(ctx, id, startsAt); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("old slot should be empty, got %v", err)
	}

	res, err := testDB.GetGame(ctx, id, newStart)
	if err != nil {
		t.Fatalf("error getting moved game: %v", err)
	}
	if !res.Server.IsHosted() || res.Server.ReservationID != 91111 {
		t.Errorf("unexpected server: %+v", res.Server)
	}

	// Updating a game that isn't there.
	if err := testDB.UpdateGame(ctx, startsAt, updated); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}
}

func TestDB_deleteGame(t *testing.T) {
	ctx := context.Background()
	id := newGuild(t)
	startsAt := time.Date(2024, 9, 14, 21, 30, 0, 0, time.UTC)

	if err := testDB.InsertGame(ctx, scrimAt(id, startsAt)); err != nil {
		t.Fatalf("error inserting game: %v", err)
	}
	if err := testDB.DeleteGame(ctx, id, startsAt); err != nil {
		t.Fatalf("error deleting game: %v", err)
	}
	if _, err := testDB.GetGame(ctx, id, startsAt); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}
	if err := testDB.DeleteGame(ctx, id, startsAt); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound on second delete, got %v", err)
	}
}

func TestDB_listUpcomingGames(t *testing.T) {
	ctx := context.Background()
	id := newGuild(t)
	base := time.Date(2024, 9, 16, 21, 30, 0, 0, time.UTC)

	// Three scrims and a match, deliberately inserted out of order.
	times := []time.Time{
		base.Add(48 * time.Hour),
		base,
		base.Add(24 * time.Hour),
	}
	for _, ts := range times {
		if err := testDB.InsertGame(ctx, scrimAt(id, ts)); err != nil {
			t.Fatalf("error inserting game: %v", err)
		}
	}
	match := &model.Game{
		GuildID:  id,
		StartsAt: base.Add(72 * time.Hour),
		Details:  model.MatchDetails{MatchID: 101234},
	}
	if err := testDB.InsertGame(ctx, match); err != nil {
		t.Fatalf("error inserting match: %v", err)
	}

	games, err := testDB.ListUpcomingGames(ctx, id, base, nil)
	if err != nil {
		t.Fatalf("error listing games: %v", err)
	}
	if len(games) != 4 {
		t.Fatalf("expected 4 games, got %d", len(games))
	}
	for i := 1; i < len(games); i++ {
		if games[i].StartsAt.Before(games[i-1].StartsAt) {
			t.Errorf("games out of order: %v before %v", games[i].StartsAt, games[i-1].StartsAt)
		}
	}

	// The cutoff excludes earlier games.
	games, err = testDB.ListUpcomingGames(ctx, id, base.Add(24*time.Hour), nil)
	if err != nil {
		t.Fatalf("error listing games: %v", err)
	}
	if len(games) != 3 {
		t.Errorf("expected 3 games, got %d", len(games))
	}

	// Kind filters.
	scrims := model.KindScrim
	games, err = testDB.ListUpcomingGames(ctx, id, base, &scrims)
	if err != nil {
		t.Fatalf("error listing scrims: %v", err)
	}
	if len(games) != 3 {
		t.Errorf("expected 3 scrims, got %d", len(games))
	}

	matches := model.KindMatch
	games, err = testDB.ListUpcomingGames(ctx, id, base, &matches)
	if err != nil {
		t.Fatalf("error listing matches: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 match, got %d", len(games))
	}
	if _, ok := games[0].Details.(model.MatchDetails); !ok {
		t.Errorf("expected match details, got %T", games[0].Details)
	}
}

func TestDB_takenTimes(t *testing.T) {
	ctx := context.Background()
	id := newGuild(t)
	base := time.Date(2024, 9, 17, 20, 30, 0, 0, time.UTC)

	if err := testDB.InsertGame(ctx, scrimAt(id, base)); err != nil {
		t.Fatalf("error inserting game: %v", err)
	}
	if err := testDB.InsertGame(ctx, scrimAt(id, base.Add(2*time.Hour))); err != nil {
		t.Fatalf("error inserting game: %v", err)
	}

	taken, err := testDB.TakenTimes(ctx, id, []time.Time{
		base,
		base.Add(time.Hour),
		base.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("error checking taken times: %v", err)
	}
	if !taken[base] {
		t.Errorf("expected %v to be taken", base)
	}
	if taken[base.Add(time.Hour)] {
		t.Errorf("expected %v to be open", base.Add(time.Hour))
	}
	if !taken[base.Add(2*time.Hour)] {
		t.Errorf("expected %v to be taken", base.Add(2*time.Hour))
	}
}

func scrimAt(id model.GuildID, startsAt time.Time) *model.Game {
	return &model.Game{
		GuildID:  id,
		StartsAt: startsAt,
		Details: model.ScrimDetails{
			Opponent: 777001,
			Format:   model.FormatSixes,
			Maps:     model.MapList{"cp_process_f12"},
		},
	}
}
