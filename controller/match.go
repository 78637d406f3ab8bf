package controller

import (
	"context"

	"github.com/vidhanio/scheduletf/model"
)

func (c *controller) HostMatch(ctx context.Context, guildID model.GuildID, matchID model.MatchID, reservationID *model.ReservationID) (*model.Game, error) {
	team, err := c.db.GetTeam(ctx, guildID)
	if err != nil {
		return nil, err
	}

	key, err := c.servemeKey(team)
	if err != nil {
		return nil, err
	}

	m, err := c.rgl.GetMatch(matchID)
	if err != nil {
		return nil, err
	}

	if err := c.ensureTimeOpen(ctx, guildID, m.Date); err != nil {
		return nil, err
	}

	g := &model.Game{
		GuildID:  guildID,
		StartsAt: m.Date.UTC(),
		Details:  model.MatchDetails{MatchID: matchID},
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

func (c *controller) JoinMatch(ctx context.Context, guildID model.GuildID, matchID model.MatchID, connect *model.ConnectInfo) (*model.Game, error) {
	team, err := c.db.GetTeam(ctx, guildID)
	if err != nil {
		return nil, err
	}

	m, err := c.rgl.GetMatch(matchID)
	if err != nil {
		return nil, err
	}

	if err := c.ensureTimeOpen(ctx, guildID, m.Date); err != nil {
		return nil, err
	}

	g := &model.Game{
		GuildID:  guildID,
		StartsAt: m.Date.UTC(),
		Details:  model.MatchDetails{MatchID: matchID},
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
