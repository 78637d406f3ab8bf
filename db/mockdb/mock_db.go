package mockdb

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vidhanio/scheduletf/model"
)

type DB struct {
	mock.Mock
}

func (db *DB) GetTeam(ctx context.Context, id model.GuildID) (*model.TeamConfig, error) {
	args := db.Called(ctx, id)

	var t *model.TeamConfig
	if args.Get(0) != nil {
		t = args.Get(0).(*model.TeamConfig)
	}
	return t, args.Error(1)
}

func (db *DB) SaveTeam(ctx context.Context, t *model.TeamConfig) error {
	args := db.Called(ctx, t)
	return args.Error(0)
}

func (db *DB) GetGame(ctx context.Context, id model.GuildID, startsAt time.Time) (*model.Game, error) {
	args := db.Called(ctx, id, startsAt)

	var g *model.Game
	if args.Get(0) != nil {
		g = args.Get(0).(*model.Game)
	}
	return g, args.Error(1)
}

func (db *DB) InsertGame(ctx context.Context, g *model.Game) error {
	args := db.Called(ctx, g)
	return args.Error(0)
}

func (db *DB) UpdateGame(ctx context.Context, oldStartsAt time.Time, g *model.Game) error {
	args := db.Called(ctx, oldStartsAt, g)
	return args.Error(0)
}

func (db *DB) DeleteGame(ctx context.Context, id model.GuildID, startsAt time.Time) error {
	args := db.Called(ctx, id, startsAt)
	return args.Error(0)
}

func (db *DB) ListUpcomingGames(ctx context.Context, id model.GuildID, after time.Time, kind *model.GameKind) ([]*model.Game, error) {
	args := db.Called(ctx, id, after, kind)

	var games []*model.Game
	if args.Get(0) != nil {
		games = args.Get(0).([]*model.Game)
	}
	return games, args.Error(1)
}

func (db *DB) TakenTimes(ctx context.Context, id model.GuildID, times []time.Time) (map[time.Time]bool, error) {
	args := db.Called(ctx, id, times)

	var taken map[time.Time]bool
	if args.Get(0) != nil {
		taken = args.Get(0).(map[time.Time]bool)
	}
	return taken, args.Error(1)
}
