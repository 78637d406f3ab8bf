package controller

import (
	"context"
	"errors"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/vidhanio/scheduletf/autocomplete"
	"github.com/vidhanio/scheduletf/db"
	"github.com/vidhanio/scheduletf/model"
	"github.com/vidhanio/scheduletf/publish"
	"github.com/vidhanio/scheduletf/rgl"
	"github.com/vidhanio/scheduletf/serveme"
)

var (
	// ErrNoServemeKey is returned by operations that talk to the
	// booking service when the team has no API key configured.
	ErrNoServemeKey = errors.New("no serveme.tf API key is configured")

	// ErrNoGameFormat is returned when an operation needs a game format
	// and neither an explicit one nor a team default exists.
	ErrNoGameFormat = errors.New("no game format given and no default is configured")

	// ErrNoDivision is returned by LFSMessage when no division is given
	// and the team has no default.
	ErrNoDivision = errors.New("no division given and no default is configured")

	// ErrNoServemeServers is returned when no acceptable server is free
	// for the requested window.
	ErrNoServemeServers = errors.New("no suitable serveme.tf servers are available")

	// ErrNoActiveGames is returned when an operation targeting "the
	// current game" finds no game backed by a live reservation.
	ErrNoActiveGames = errors.New("no games with a live reservation")

	// ErrNoScheduleChannel is returned by RefreshSchedule when the team
	// has not chosen a channel for the schedule message.
	ErrNoScheduleChannel = errors.New("no schedule channel is configured")

	// ErrNoOpenScrims is returned by LFSMessage when every upcoming
	// scrim already has an opponent.
	ErrNoOpenScrims = errors.New("no upcoming scrims without an opponent")
)

// How far past "now" a game still counts as upcoming. Covers games in
// progress and recently finished ones whose reservations may be live.
const upcomingGrace = 6 * time.Hour

// C is the guild scheduling API. Every operation is scoped to a guild;
// games are identified by their start time within the guild.
type C interface {
	// Team configuration. Setters accept nil to clear the option and
	// return the updated config.
	GetTeam(ctx context.Context, guildID model.GuildID) (*model.TeamConfig, error)
	SetServemeKey(ctx context.Context, guildID model.GuildID, key *string) (*model.TeamConfig, error)
	// SetLeagueTeam also derives and stores the team's game format from
	// the league season. Clearing the team clears the derived format too.
	SetLeagueTeam(ctx context.Context, guildID model.GuildID, teamID *model.TeamID) (*model.TeamConfig, error)
	SetGameFormat(ctx context.Context, guildID model.GuildID, format *model.GameFormat) (*model.TeamConfig, error)
	SetDivision(ctx context.Context, guildID model.GuildID, division *string) (*model.TeamConfig, error)
	// SetScheduleChannel forgets the old schedule message; the next
	// refresh posts a fresh one in the new channel.
	SetScheduleChannel(ctx context.Context, guildID model.GuildID, channelID *int64) (*model.TeamConfig, error)

	// HostScrim schedules a scrim on a server we book. With a
	// reservation id the existing reservation is grown to cover the
	// game; without one a new reservation is created.
	HostScrim(ctx context.Context, guildID model.GuildID, startsAt time.Time, opponent model.UserID, format *model.GameFormat, maps model.MapList, reservationID *model.ReservationID) (*model.Game, error)
	// JoinScrim schedules a scrim on the opponent's server. Connect
	// info may be nil when the venue is not known yet.
	JoinScrim(ctx context.Context, guildID model.GuildID, startsAt time.Time, opponent model.UserID, format *model.GameFormat, maps model.MapList, connect *model.ConnectInfo) (*model.Game, error)
	// HostMatch and JoinMatch schedule an official league match; the
	// start time comes from the league API.
	HostMatch(ctx context.Context, guildID model.GuildID, matchID model.MatchID, reservationID *model.ReservationID) (*model.Game, error)
	JoinMatch(ctx context.Context, guildID model.GuildID, matchID model.MatchID, connect *model.ConnectInfo) (*model.Game, error)

	GetGame(ctx context.Context, guildID model.GuildID, startsAt time.Time) (*model.Game, error)
	ListUpcomingGames(ctx context.Context, guildID model.GuildID, kind *model.GameKind) ([]*model.Game, error)
	// CancelGame removes the game from the schedule. A booked
	// reservation is left alone; cancel it on the booking service.
	CancelGame(ctx context.Context, guildID model.GuildID, startsAt time.Time) (*model.Game, error)

	// Facet edits. Games are addressed by start time; scrim-only facets
	// return db.ErrGameNotFound for a match.
	EditGameTime(ctx context.Context, guildID model.GuildID, startsAt, newStartsAt time.Time) (*model.Game, error)
	EditScrimOpponent(ctx context.Context, guildID model.GuildID, startsAt time.Time, opponent model.UserID) (*model.Game, error)
	EditScrimFormat(ctx context.Context, guildID model.GuildID, startsAt time.Time, format model.GameFormat) (*model.Game, error)
	EditScrimMaps(ctx context.Context, guildID model.GuildID, startsAt time.Time, maps model.MapList) (*model.Game, error)
	// EditGameReservation switches the game to a hosted server (or to
	// undecided with nil) and syncs the reservation's window and map.
	EditGameReservation(ctx context.Context, guildID model.GuildID, startsAt time.Time, reservationID *model.ReservationID) (*model.Game, error)
	// EditGameConnectInfo switches the game to the opponent's server
	// (or to undecided with nil).
	EditGameConnectInfo(ctx context.Context, guildID model.GuildID, startsAt time.Time, connect *model.ConnectInfo) (*model.Game, error)

	// Rcon runs a console command on a reservation, defaulting to the
	// closest active game's server.
	Rcon(ctx context.Context, guildID model.GuildID, reservationID *model.ReservationID, command string) (string, error)
	// Changelevel sets the first map (and matching config) of a game's
	// reservation without touching the stored game.
	Changelevel(ctx context.Context, guildID model.GuildID, gameStartsAt *time.Time, m model.Map) error

	// RefreshSchedule re-renders the schedule message in the team's
	// schedule channel, editing in place when possible.
	RefreshSchedule(ctx context.Context, guildID model.GuildID) error
	// LFSMessage builds a "looking for scrim" text from the team's
	// opponentless scrims.
	LFSMessage(ctx context.Context, guildID model.GuildID, format *model.GameFormat, division *string) (string, error)

	// Suggestions for partially typed command arguments.
	SuggestGameTimes(ctx context.Context, guildID model.GuildID, query string) ([]time.Time, error)
	SuggestGames(ctx context.Context, guildID model.GuildID, kind *model.GameKind, query string) ([]*model.Game, error)
	SuggestReservations(ctx context.Context, guildID model.GuildID, readyOnly bool, query string) ([]autocomplete.ReservationGroup, error)
	SuggestMaps(ctx context.Context, guildID model.GuildID, gameStartsAt *time.Time, query string) ([]model.MapList, error)
}

type controller struct {
	clock     clock.Clock
	db        db.DB
	serveme   serveme.Client
	rgl       rgl.Client
	messenger publish.Messenger
}

func New(clock clock.Clock, db db.DB, serveme serveme.Client, rgl rgl.Client, messenger publish.Messenger) (C, error) {
	c := &controller{
		clock:     clock,
		db:        db,
		serveme:   serveme,
		rgl:       rgl,
		messenger: messenger,
	}
	return c, nil
}

func (c *controller) servemeKey(team *model.TeamConfig) (string, error) {
	if team.ServemeKey == nil {
		return "", ErrNoServemeKey
	}
	return *team.ServemeKey, nil
}

// resolveFormat applies the explicit format if given, falling back to
// the team default.
func resolveFormat(team *model.TeamConfig, format *model.GameFormat) (model.GameFormat, error) {
	if format != nil {
		return *format, nil
	}
	if f, ok := team.DefaultFormat(); ok {
		return f, nil
	}
	return model.FormatUnknown, ErrNoGameFormat
}

// ensureTimeOpen fails fast with db.ErrTimeSlotTaken before any
// external calls are made. Occupancy is exact-slot only: a slot in the
// past may still be booked. The insert's primary key is the real
// guarantee under concurrency.
func (c *controller) ensureTimeOpen(ctx context.Context, guildID model.GuildID, startsAt time.Time) error {
	_, err := c.db.GetGame(ctx, guildID, startsAt.UTC())
	if err == nil {
		return db.ErrTimeSlotTaken
	}
	if errors.Is(err, db.ErrGameNotFound) {
		return nil
	}
	return err
}
