package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/vidhanio/scheduletf/model"
	"github.com/vidhanio/scheduletf/publish"
)

const maxScheduleGames = 25

func (c *controller) RefreshSchedule(ctx context.Context, guildID model.GuildID) error {
	team, err := c.db.GetTeam(ctx, guildID)
	if err != nil {
		return err
	}
	return c.refreshSchedule(ctx, team)
}

// maybeRefreshSchedule is the implicit refresh run after every
// scheduling mutation. Teams without a schedule channel simply don't
// get a schedule message; everything else is still an error.
func (c *controller) maybeRefreshSchedule(ctx context.Context, team *model.TeamConfig) error {
	err := c.refreshSchedule(ctx, team)
	if errors.Is(err, ErrNoScheduleChannel) {
		return nil
	}
	return err
}

func (c *controller) refreshSchedule(ctx context.Context, team *model.TeamConfig) error {
	if team.ScheduleChannelID == nil {
		return ErrNoScheduleChannel
	}

	games, err := c.db.ListUpcomingGames(ctx, team.GuildID, c.clock.Now().Add(-upcomingGrace), nil)
	if err != nil {
		return err
	}
	if len(games) > maxScheduleGames {
		games = games[:maxScheduleGames]
	}

	entries := make([]publish.ScheduleEntry, 0, len(games))
	for _, g := range games {
		e := publish.ScheduleEntry{Game: g}

		if e.Opponent, err = c.opponentLabel(team, g); err != nil {
			return err
		}
		if e.Connect, err = c.scheduleConnect(team, g); err != nil {
			return err
		}
		entries = append(entries, e)
	}

	embed := publish.ScheduleEmbed(entries)

	if team.ScheduleMessageID != nil {
		err := c.messenger.Edit(*team.ScheduleChannelID, *team.ScheduleMessageID, embed)
		if err == nil {
			return nil
		}
		if !errors.Is(err, publish.ErrMessageDeleted) {
			return err
		}
	}

	id, err := c.messenger.Send(*team.ScheduleChannelID, embed)
	if err != nil {
		return err
	}

	team.ScheduleMessageID = &id
	return c.db.SaveTeam(ctx, team)
}

func (c *controller) opponentLabel(team *model.TeamConfig, g *model.Game) (string, error) {
	switch d := g.Details.(type) {
	case model.ScrimDetails:
		if d.Opponent == 0 {
			return "TBD", nil
		}
		return fmt.Sprintf("<@%d>", d.Opponent), nil
	case model.MatchDetails:
		if team.LeagueTeamID == nil {
			return "TBD", nil
		}
		m, err := c.rgl.GetMatch(d.MatchID)
		if err != nil {
			return "", err
		}
		opp, ok := m.Opponent(*team.LeagueTeamID)
		if !ok {
			return "TBD", nil
		}
		return opp.Name, nil
	default:
		return "", model.ErrInvalidGameDetails
	}
}

func (c *controller) scheduleConnect(team *model.TeamConfig, g *model.Game) (*model.ConnectInfo, error) {
	switch g.Server.Kind {
	case model.ServerHosted:
		key, err := c.servemeKey(team)
		if err != nil {
			return nil, err
		}
		res, err := c.serveme.GetReservation(key, g.Server.ReservationID)
		if err != nil {
			return nil, err
		}
		info := res.ConnectInfo()
		return &info, nil
	case model.ServerJoined:
		info := g.Server.Connect
		return &info, nil
	default:
		return nil, nil
	}
}
