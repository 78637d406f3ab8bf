package controller

import (
	"context"
	"time"

	"github.com/vidhanio/scheduletf/db"
	"github.com/vidhanio/scheduletf/model"
)

func (c *controller) GetGame(ctx context.Context, guildID model.GuildID, startsAt time.Time) (*model.Game, error) {
	return c.db.GetGame(ctx, guildID, startsAt)
}

func (c *controller) ListUpcomingGames(ctx context.Context, guildID model.GuildID, kind *model.GameKind) ([]*model.Game, error) {
	after := c.clock.Now().Add(-upcomingGrace)
	return c.db.ListUpcomingGames(ctx, guildID, after, kind)
}

func (c *controller) CancelGame(ctx context.Context, guildID model.GuildID, startsAt time.Time) (*model.Game, error) {
	team, err := c.db.GetTeam(ctx, guildID)
	if err != nil {
		return nil, err
	}

	g, err := c.db.GetGame(ctx, guildID, startsAt)
	if err != nil {
		return nil, err
	}

	// The reservation is deliberately left standing; other games may
	// share it, and cancelling on the booking service is a separate
	// decision.
	if err := c.db.DeleteGame(ctx, guildID, startsAt); err != nil {
		return nil, err
	}

	if err := c.maybeRefreshSchedule(ctx, team); err != nil {
		return nil, err
	}
	return g, nil
}

// editGame loads the game at startsAt, applies mutate, and saves it
// back under its (possibly changed) start time.
func (c *controller) editGame(ctx context.Context, guildID model.GuildID, startsAt time.Time, mutate func(team *model.TeamConfig, g *model.Game) error) (*model.Game, error) {
	team, err := c.db.GetTeam(ctx, guildID)
	if err != nil {
		return nil, err
	}

	g, err := c.db.GetGame(ctx, guildID, startsAt)
	if err != nil {
		return nil, err
	}

	if err := mutate(team, g); err != nil {
		return nil, err
	}

	if err := c.db.UpdateGame(ctx, startsAt, g); err != nil {
		return nil, err
	}

	if err := c.maybeRefreshSchedule(ctx, team); err != nil {
		return nil, err
	}
	return g, nil
}

// editScrim is editGame for scrim-only facets. Matches are treated as
// absent, the same as a typed lookup missing.
func (c *controller) editScrim(ctx context.Context, guildID model.GuildID, startsAt time.Time, mutate func(team *model.TeamConfig, g *model.Game, d *model.ScrimDetails) error) (*model.Game, error) {
	return c.editGame(ctx, guildID, startsAt, func(team *model.TeamConfig, g *model.Game) error {
		d, ok := g.Details.(model.ScrimDetails)
		if !ok {
			return db.ErrGameNotFound
		}
		if err := mutate(team, g, &d); err != nil {
			return err
		}
		g.Details = d
		return nil
	})
}

// EditGameTime moves the game to a new slot. The reservation is not
// re-synced; its window already covers the old slot and a later edit
// of any hosted facet will grow it.
func (c *controller) EditGameTime(ctx context.Context, guildID model.GuildID, startsAt, newStartsAt time.Time) (*model.Game, error) {
	return c.editGame(ctx, guildID, startsAt, func(_ *model.TeamConfig, g *model.Game) error {
		g.StartsAt = newStartsAt.UTC()
		return nil
	})
}

func (c *controller) EditScrimOpponent(ctx context.Context, guildID model.GuildID, startsAt time.Time, opponent model.UserID) (*model.Game, error) {
	return c.editScrim(ctx, guildID, startsAt, func(_ *model.TeamConfig, _ *model.Game, d *model.ScrimDetails) error {
		d.Opponent = opponent
		return nil
	})
}

func (c *controller) EditScrimFormat(ctx context.Context, guildID model.GuildID, startsAt time.Time, format model.GameFormat) (*model.Game, error) {
	return c.editScrim(ctx, guildID, startsAt, func(_ *model.TeamConfig, _ *model.Game, d *model.ScrimDetails) error {
		d.Format = format
		return nil
	})
}

func (c *controller) EditScrimMaps(ctx context.Context, guildID model.GuildID, startsAt time.Time, maps model.MapList) (*model.Game, error) {
	return c.editScrim(ctx, guildID, startsAt, func(team *model.TeamConfig, g *model.Game, d *model.ScrimDetails) error {
		d.Maps = maps

		if g.Server.IsHosted() {
			key, err := c.servemeKey(team)
			if err != nil {
				return err
			}

			g.Details = *d
			if _, err := c.editReservation(key, g); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c *controller) EditGameReservation(ctx context.Context, guildID model.GuildID, startsAt time.Time, reservationID *model.ReservationID) (*model.Game, error) {
	return c.editGame(ctx, guildID, startsAt, func(team *model.TeamConfig, g *model.Game) error {
		// Clearing resets the server outright, whatever kind it was.
		if reservationID == nil {
			g.Server = model.GameServer{}
			return nil
		}

		// Switching to a reservation replaces any joined connect info.
		g.Server = model.HostedServer(*reservationID)

		key, err := c.servemeKey(team)
		if err != nil {
			return err
		}

		_, err = c.editReservation(key, g)
		return err
	})
}

func (c *controller) EditGameConnectInfo(ctx context.Context, guildID model.GuildID, startsAt time.Time, connect *model.ConnectInfo) (*model.Game, error) {
	return c.editGame(ctx, guildID, startsAt, func(_ *model.TeamConfig, g *model.Game) error {
		// Clearing resets the server outright, whatever kind it was.
		if connect == nil {
			g.Server = model.GameServer{}
			return nil
		}
		g.Server = model.JoinedServer(*connect)
		return nil
	})
}
