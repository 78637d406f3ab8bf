package controller

import (
	"context"

	"github.com/vidhanio/scheduletf/model"
)

func (c *controller) GetTeam(ctx context.Context, guildID model.GuildID) (*model.TeamConfig, error) {
	return c.db.GetTeam(ctx, guildID)
}

func (c *controller) saveTeam(ctx context.Context, guildID model.GuildID, mutate func(team *model.TeamConfig) error) (*model.TeamConfig, error) {
	team, err := c.db.GetTeam(ctx, guildID)
	if err != nil {
		return nil, err
	}

	if err := mutate(team); err != nil {
		return nil, err
	}

	if err := c.db.SaveTeam(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (c *controller) SetServemeKey(ctx context.Context, guildID model.GuildID, key *string) (*model.TeamConfig, error) {
	return c.saveTeam(ctx, guildID, func(team *model.TeamConfig) error {
		team.ServemeKey = key
		return nil
	})
}

// SetLeagueTeam points the guild at its league team and derives the
// default game format from the team's season. Clearing the team also
// clears the derived format.
func (c *controller) SetLeagueTeam(ctx context.Context, guildID model.GuildID, teamID *model.TeamID) (*model.TeamConfig, error) {
	return c.saveTeam(ctx, guildID, func(team *model.TeamConfig) error {
		if teamID == nil {
			team.LeagueTeamID = nil
			team.GameFormat = nil
			return nil
		}

		t, err := c.rgl.GetTeam(*teamID)
		if err != nil {
			return err
		}
		s, err := c.rgl.GetSeason(t.SeasonID)
		if err != nil {
			return err
		}
		f, err := s.Format()
		if err != nil {
			return err
		}

		team.LeagueTeamID = teamID
		team.GameFormat = &f
		return nil
	})
}

func (c *controller) SetGameFormat(ctx context.Context, guildID model.GuildID, format *model.GameFormat) (*model.TeamConfig, error) {
	return c.saveTeam(ctx, guildID, func(team *model.TeamConfig) error {
		team.GameFormat = format
		return nil
	})
}

func (c *controller) SetDivision(ctx context.Context, guildID model.GuildID, division *string) (*model.TeamConfig, error) {
	return c.saveTeam(ctx, guildID, func(team *model.TeamConfig) error {
		team.Division = division
		return nil
	})
}

func (c *controller) SetScheduleChannel(ctx context.Context, guildID model.GuildID, channelID *int64) (*model.TeamConfig, error) {
	return c.saveTeam(ctx, guildID, func(team *model.TeamConfig) error {
		team.ScheduleChannelID = channelID
		team.ScheduleMessageID = nil
		return nil
	})
}
