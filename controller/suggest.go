package controller

import (
	"context"
	"time"

	"github.com/vidhanio/scheduletf/autocomplete"
	"github.com/vidhanio/scheduletf/model"
)

func (c *controller) SuggestGameTimes(ctx context.Context, guildID model.GuildID, query string) ([]time.Time, error) {
	now := c.clock.Now()

	candidates := autocomplete.CandidateTimes(now, query)
	if len(candidates) == 0 {
		return nil, nil
	}

	taken, err := c.db.TakenTimes(ctx, guildID, candidates)
	if err != nil {
		return nil, err
	}

	return autocomplete.SuggestTimes(now, taken, query), nil
}

func (c *controller) SuggestGames(ctx context.Context, guildID model.GuildID, kind *model.GameKind, query string) ([]*model.Game, error) {
	games, err := c.ListUpcomingGames(ctx, guildID, kind)
	if err != nil {
		return nil, err
	}
	return autocomplete.FilterGames(c.clock.Now(), games, query), nil
}

// SuggestReservations offers the reservations backing upcoming hosted
// games. readyOnly restricts to joinable servers, for commands that
// talk to a running server; otherwise any non-finished reservation
// qualifies.
func (c *controller) SuggestReservations(ctx context.Context, guildID model.GuildID, readyOnly bool, query string) ([]autocomplete.ReservationGroup, error) {
	team, err := c.db.GetTeam(ctx, guildID)
	if err != nil {
		return nil, err
	}

	key, err := c.servemeKey(team)
	if err != nil {
		return nil, err
	}

	reservations, err := c.serveme.ListReservations(key)
	if err != nil {
		return nil, err
	}

	live := make(map[model.ReservationID]bool)
	for _, r := range reservations {
		if readyOnly {
			live[r.ID] = r.Status.IsReady()
		} else {
			live[r.ID] = !r.Status.IsTerminal()
		}
	}

	games, err := c.ListUpcomingGames(ctx, guildID, nil)
	if err != nil {
		return nil, err
	}

	groups := autocomplete.GroupReservations(games, live)
	return autocomplete.FilterReservations(c.clock.Now(), groups, query), nil
}

// SuggestMaps completes a partially typed map list against the booking
// service's map pool, scoped to the format of the named game or the
// team default.
func (c *controller) SuggestMaps(ctx context.Context, guildID model.GuildID, gameStartsAt *time.Time, query string) ([]model.MapList, error) {
	team, err := c.db.GetTeam(ctx, guildID)
	if err != nil {
		return nil, err
	}

	key, err := c.servemeKey(team)
	if err != nil {
		return nil, err
	}

	format := model.FormatUnknown
	if gameStartsAt != nil {
		g, err := c.db.GetGame(ctx, guildID, *gameStartsAt)
		if err != nil {
			return nil, err
		}
		if format, err = c.gameFormat(g.Details); err != nil {
			return nil, err
		}
	} else if f, ok := team.DefaultFormat(); ok {
		format = f
	}

	catalog, err := c.serveme.Maps(key, format)
	if err != nil {
		return nil, err
	}

	return autocomplete.SuggestMapLists(catalog, format, query), nil
}
