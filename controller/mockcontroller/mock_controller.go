package mockcontroller

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vidhanio/scheduletf/autocomplete"
	"github.com/vidhanio/scheduletf/model"
)

type C struct {
	mock.Mock
}

func (c *C) team(args mock.Arguments) (*model.TeamConfig, error) {
	var t *model.TeamConfig
	if args.Get(0) != nil {
		t = args.Get(0).(*model.TeamConfig)
	}
	return t, args.Error(1)
}

func (c *C) game(args mock.Arguments) (*model.Game, error) {
	var g *model.Game
	if args.Get(0) != nil {
		g = args.Get(0).(*model.Game)
	}
	return g, args.Error(1)
}

func (c *C) GetTeam(ctx context.Context, guildID model.GuildID) (*model.TeamConfig, error) {
	return c.team(c.Called(ctx, guildID))
}

func (c *C) SetServemeKey(ctx context.Context, guildID model.GuildID, key *string) (*model.TeamConfig, error) {
	return c.team(c.Called(ctx, guildID, key))
}

func (c *C) SetLeagueTeam(ctx context.Context, guildID model.GuildID, teamID *model.TeamID) (*model.TeamConfig, error) {
	return c.team(c.Called(ctx, guildID, teamID))
}

func (c *C) SetGameFormat(ctx context.Context, guildID model.GuildID, format *model.GameFormat) (*model.TeamConfig, error) {
	return c.team(c.Called(ctx, guildID, format))
}

func (c *C) SetDivision(ctx context.Context, guildID model.GuildID, division *string) (*model.TeamConfig, error) {
	return c.team(c.Called(ctx, guildID, division))
}

func (c *C) SetScheduleChannel(ctx context.Context, guildID model.GuildID, channelID *int64) (*model.TeamConfig, error) {
	return c.team(c.Called(ctx, guildID, channelID))
}

func (c *C) HostScrim(ctx context.Context, guildID model.GuildID, startsAt time.Time, opponent model.UserID, format *model.GameFormat, maps model.MapList, reservationID *model.ReservationID) (*model.Game, error) {
	return c.game(c.Called(ctx, guildID, startsAt, opponent, format, maps, reservationID))
}

func (c *C) JoinScrim(ctx context.Context, guildID model.GuildID, startsAt time.Time, opponent model.UserID, format *model.GameFormat, maps model.MapList, connect *model.ConnectInfo) (*model.Game, error) {
	return c.game(c.Called(ctx, guildID, startsAt, opponent, format, maps, connect))
}

func (c *C) HostMatch(ctx context.Context, guildID model.GuildID, matchID model.MatchID, reservationID *model.ReservationID) (*model.Game, error) {
	return c.game(c.Called(ctx, guildID, matchID, reservationID))
}

func (c *C) JoinMatch(ctx context.Context, guildID model.GuildID, matchID model.MatchID, connect *model.ConnectInfo) (*model.Game, error) {
	return c.game(c.Called(ctx, guildID, matchID, connect))
}

func (c *C) GetGame(ctx context.Context, guildID model.GuildID, startsAt time.Time) (*model.Game, error) {
	return c.game(c.Called(ctx, guildID, startsAt))
}

func (c *C) ListUpcomingGames(ctx context.Context, guildID model.GuildID, kind *model.GameKind) ([]*model.Game, error) {
	args := c.Called(ctx, guildID, kind)

	var games []*model.Game
	if args.Get(0) != nil {
		games = args.Get(0).([]*model.Game)
	}
	return games, args.Error(1)
}

func (c *C) CancelGame(ctx context.Context, guildID model.GuildID, startsAt time.Time) (*model.Game, error) {
	return c.game(c.Called(ctx, guildID, startsAt))
}

func (c *C) EditGameTime(ctx context.Context, guildID model.GuildID, startsAt, newStartsAt time.Time) (*model.Game, error) {
	return c.game(c.Called(ctx, guildID, startsAt, newStartsAt))
}

func (c *C) EditScrimOpponent(ctx context.Context, guildID model.GuildID, startsAt time.Time, opponent model.UserID) (*model.Game, error) {
	return c.game(c.Called(ctx, guildID, startsAt, opponent))
}

func (c *C) EditScrimFormat(ctx context.Context, guildID model.GuildID, startsAt time.Time, format model.GameFormat) (*model.Game, error) {
	return c.game(c.Called(ctx, guildID, startsAt, format))
}

func (c *C) EditScrimMaps(ctx context.Context, guildID model.GuildID, startsAt time.Time, maps model.MapList) (*model.Game, error) {
	return c.game(c.Called(ctx, guildID, startsAt, maps))
}

func (c *C) EditGameReservation(ctx context.Context, guildID model.GuildID, startsAt time.Time, reservationID *model.ReservationID) (*model.Game, error) {
	return c.game(c.Called(ctx, guildID, startsAt, reservationID))
}

func (c *C) EditGameConnectInfo(ctx context.Context, guildID model.GuildID, startsAt time.Time, connect *model.ConnectInfo) (*model.Game, error) {
	return c.game(c.Called(ctx, guildID, startsAt, connect))
}

func (c *C) Rcon(ctx context.Context, guildID model.GuildID, reservationID *model.ReservationID, command string) (string, error) {
	args := c.Called(ctx, guildID, reservationID, command)
	return args.String(0), args.Error(1)
}

func (c *C) Changelevel(ctx context.Context, guildID model.GuildID, gameStartsAt *time.Time, m model.Map) error {
	args := c.Called(ctx, guildID, gameStartsAt, m)
	return args.Error(0)
}

func (c *C) RefreshSchedule(ctx context.Context, guildID model.GuildID) error {
	args := c.Called(ctx, guildID)
	return args.Error(0)
}

func (c *C) LFSMessage(ctx context.Context, guildID model.GuildID, format *model.GameFormat, division *string) (string, error) {
	args := c.Called(ctx, guildID, format, division)
	return args.String(0), args.Error(1)
}

func (c *C) SuggestGameTimes(ctx context.Context, guildID model.GuildID, query string) ([]time.Time, error) {
	args := c.Called(ctx, guildID, query)

	var times []time.Time
	if args.Get(0) != nil {
		times = args.Get(0).([]time.Time)
	}
	return times, args.Error(1)
}

func (c *C) SuggestGames(ctx context.Context, guildID model.GuildID, kind *model.GameKind, query string) ([]*model.Game, error) {
	args := c.Called(ctx, guildID, kind, query)

	var games []*model.Game
	if args.Get(0) != nil {
		games = args.Get(0).([]*model.Game)
	}
	return games, args.Error(1)
}

func (c *C) SuggestReservations(ctx context.Context, guildID model.GuildID, readyOnly bool, query string) ([]autocomplete.ReservationGroup, error) {
	args := c.Called(ctx, guildID, readyOnly, query)

	var groups []autocomplete.ReservationGroup
	if args.Get(0) != nil {
		groups = args.Get(0).([]autocomplete.ReservationGroup)
	}
	return groups, args.Error(1)
}

func (c *C) SuggestMaps(ctx context.Context, guildID model.GuildID, gameStartsAt *time.Time, query string) ([]model.MapList, error) {
	args := c.Called(ctx, guildID, gameStartsAt, query)

	var lists []model.MapList
	if args.Get(0) != nil {
		lists = args.Get(0).([]model.MapList)
	}
	return lists, args.Error(1)
}
