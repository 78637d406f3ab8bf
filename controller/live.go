package controller

import (
	"context"
	"sort"
	"time"

	"github.com/vidhanio/scheduletf/db"
	"github.com/vidhanio/scheduletf/model"
	"github.com/vidhanio/scheduletf/serveme"
)

// closestActiveGame picks the hosted game whose reservation is live
// and whose start time is nearest to now. On equal distance the game
// already underway wins over one yet to start.
func (c *controller) closestActiveGame(ctx context.Context, team *model.TeamConfig, key string) (*model.Game, error) {
	reservations, err := c.serveme.ListReservations(key)
	if err != nil {
		return nil, err
	}

	live := make(map[model.ReservationID]bool)
	for _, r := range reservations {
		if r.Status.IsReady() {
			live[r.ID] = true
		}
	}

	now := c.clock.Now()

	games, err := c.db.ListUpcomingGames(ctx, team.GuildID, now.Add(-upcomingGrace), nil)
	if err != nil {
		return nil, err
	}

	var active []*model.Game
	for _, g := range games {
		if g.Server.IsHosted() && live[g.Server.ReservationID] {
			active = append(active, g)
		}
	}
	if len(active) == 0 {
		return nil, ErrNoActiveGames
	}

	sort.SliceStable(active, func(i, j int) bool {
		di, dj := now.Sub(active[i].StartsAt).Abs(), now.Sub(active[j].StartsAt).Abs()
		if di != dj {
			return di < dj
		}
		return active[i].StartsAt.Before(now)
	})
	return active[0], nil
}

func (c *controller) Rcon(ctx context.Context, guildID model.GuildID, reservationID *model.ReservationID, command string) (string, error) {
	team, err := c.db.GetTeam(ctx, guildID)
	if err != nil {
		return "", err
	}

	key, err := c.servemeKey(team)
	if err != nil {
		return "", err
	}

	var id model.ReservationID
	if reservationID != nil {
		id = *reservationID
	} else {
		g, err := c.closestActiveGame(ctx, team, key)
		if err != nil {
			return "", err
		}
		if id, err = g.Server.HostedReservationID(); err != nil {
			return "", err
		}
	}

	return c.serveme.RunCommand(key, id, command)
}

func (c *controller) Changelevel(ctx context.Context, guildID model.GuildID, gameStartsAt *time.Time, m model.Map) error {
	team, err := c.db.GetTeam(ctx, guildID)
	if err != nil {
		return err
	}

	key, err := c.servemeKey(team)
	if err != nil {
		return err
	}

	g, err := c.changelevelTarget(ctx, guildID, gameStartsAt)
	if err != nil {
		return err
	}

	id, err := g.Server.HostedReservationID()
	if err != nil {
		return err
	}

	format, err := c.gameFormat(g.Details)
	if err != nil {
		return err
	}

	var configID *int32
	if cfg, ok := m.ServerConfigFor(g.Details.Kind(), format); ok {
		configID = &cfg.ID
	}

	_, err = c.serveme.EditReservation(key, id, &serveme.EditRequest{
		FirstMap: &m,
		ConfigID: configID,
	})
	return err
}

// changelevelTarget resolves an explicit game or falls back to the
// most recently started one.
func (c *controller) changelevelTarget(ctx context.Context, guildID model.GuildID, gameStartsAt *time.Time) (*model.Game, error) {
	if gameStartsAt != nil {
		return c.db.GetGame(ctx, guildID, *gameStartsAt)
	}

	now := c.clock.Now()

	games, err := c.db.ListUpcomingGames(ctx, guildID, now.Add(-upcomingGrace), nil)
	if err != nil {
		return nil, err
	}

	var latest *model.Game
	for _, g := range games {
		if !g.StartsAt.After(now) {
			latest = g
		}
	}
	if latest == nil {
		return nil, db.ErrGameNotFound
	}
	return latest, nil
}

// gameFormat is the format a game is played in: stored for scrims,
// derived from the league season for officials.
func (c *controller) gameFormat(details model.Details) (model.GameFormat, error) {
	switch d := details.(type) {
	case model.ScrimDetails:
		return d.Format, nil
	case model.MatchDetails:
		m, err := c.rgl.GetMatch(d.MatchID)
		if err != nil {
			return model.FormatUnknown, err
		}
		s, err := c.rgl.GetSeason(m.SeasonID)
		if err != nil {
			return model.FormatUnknown, err
		}
		return s.Format()
	default:
		return model.FormatUnknown, model.ErrInvalidGameDetails
	}
}
