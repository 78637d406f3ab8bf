package db

import (
	"context"
	"time"

	"github.com/vidhanio/scheduletf/model"
)

type DB interface {
	// GetTeam returns the guild's settings row, creating an empty one
	// on first use.
	GetTeam(ctx context.Context, id model.GuildID) (*model.TeamConfig, error)
	SaveTeam(ctx context.Context, t *model.TeamConfig) error

	GetGame(ctx context.Context, id model.GuildID, startsAt time.Time) (*model.Game, error)
	// InsertGame adds a new game. The slot (guild, start time) must be
	// open or ErrTimeSlotTaken is returned.
	InsertGame(ctx context.Context, g *model.Game) error
	// UpdateGame rewrites the game that was at oldStartsAt, possibly
	// moving it to a new start time. Moving onto an occupied slot
	// returns ErrTimeSlotTaken.
	UpdateGame(ctx context.Context, oldStartsAt time.Time, g *model.Game) error
	DeleteGame(ctx context.Context, id model.GuildID, startsAt time.Time) error

	// ListUpcomingGames returns the guild's games starting at or after
	// the given instant, soonest first. A nil kind returns every game.
	ListUpcomingGames(ctx context.Context, id model.GuildID, after time.Time, kind *model.GameKind) ([]*model.Game, error)

	// TakenTimes reports which of the candidate start times already
	// have a game scheduled.
	TakenTimes(ctx context.Context, id model.GuildID, times []time.Time) (map[time.Time]bool, error)
}
