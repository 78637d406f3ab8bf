package controller

import (
	"context"
	"time"

	"github.com/vidhanio/scheduletf/model"
)

func (c *controller) HostScrim(ctx context.Context, guildID model.GuildID, startsAt time.Time, opponent model.UserID, format *model.GameFormat, maps model.MapList, reservationID *model.ReservationID) (*model.Game, error) {
	team, err := c.db.GetTeam(ctx, guildID)
	if err != nil {
		return nil, err
	}

	key, err := c.servemeKey(team)
	if err != nil {
		return nil, err
	}

	f, err := resolveFormat(team, format)
	if err != nil {
		return nil, err
	}

	if err := c.ensureTimeOpen(ctx, guildID, startsAt); err != nil {
		return nil, err
	}

	g := &model.Game{
		GuildID:  guildID,
		StartsAt: startsAt.UTC(),
		Details:  model.ScrimDetails{Opponent: opponent, Format: f, Maps: maps},
	}

	if reservationID != nil {
		g.Server = model.HostedServer(*reservationID)
		if _, err := c.editReservation(key, g); err != nil {
			return nil, err
		}
	} else {
		res, err := c.createReservation(key, g)
		if err != nil {
			return nil, err
		}
		g.Server = model.HostedServer(res.ID)
	}

	if err := c.db.InsertGame(ctx, g); err != nil {
		return nil, err
	}

	if err := c.maybeRefreshSchedule(ctx, team); err != nil {
		return nil, err
	}
	return g, nil
}

func (c *controller) JoinScrim(ctx context.Context, guildID model.GuildID, startsAt time.Time, opponent model.UserID, format *model.GameFormat, maps model.MapList, connect *model.ConnectInfo) (*model.Game, error) {
	team, err := c.db.GetTeam(ctx, guildID)
	if err != nil {
		return nil, err
	}

	f, err := resolveFormat(team, format)
	if err != nil {
		return nil, err
	}

	if err := c.ensureTimeOpen(ctx, guildID, startsAt); err != nil {
		return nil, err
	}

	g := &model.Game{
		GuildID:  guildID,
		StartsAt: startsAt.UTC(),
		Details:  model.ScrimDetails{Opponent: opponent, Format: f, Maps: maps},
	}
	if connect != nil {
		g.Server = model.JoinedServer(*connect)
	}

	if err := c.db.InsertGame(ctx, g); err != nil {
		return nil, err
	}

	if err := c.maybeRefreshSchedule(ctx, team); err != nil {
		return nil, err
	}
	return g, nil
}
