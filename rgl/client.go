// Package rgl is a read-only client for the RGL.gg public API.
package rgl

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vidhanio/scheduletf/cache"
	"github.com/vidhanio/scheduletf/model"
)

const RGLURL = "https://api.rgl.gg"

// The RGL API is slow and rate limited, so every lookup goes through a
// short cache.
const rglTTL = 10 * time.Second

type Client interface {
	GetMatch(id model.MatchID) (*model.Match, error)
	GetTeam(id model.TeamID) (*model.Team, error)
	GetSeason(id model.SeasonID) (*model.Season, error)
	GetProfile(id model.SteamID) (*model.Profile, error)
}

type client struct {
	url        string
	httpClient *http.Client

	matches  *cache.TTL[model.MatchID, *model.Match]
	teams    *cache.TTL[model.TeamID, *model.Team]
	seasons  *cache.TTL[model.SeasonID, *model.Season]
	profiles *cache.TTL[model.SteamID, *model.Profile]
}

func New() (Client, error) {
	return NewForTest(RGLURL), nil
}

func NewForTest(url string) Client {
	return &client{
		url: url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		matches:  cache.New[model.MatchID, *model.Match](rglTTL),
		teams:    cache.New[model.TeamID, *model.Team](rglTTL),
		seasons:  cache.New[model.SeasonID, *model.Season](rglTTL),
		profiles: cache.New[model.SteamID, *model.Profile](rglTTL),
	}
}

func (c *client) GetMatch(id model.MatchID) (*model.Match, error) {
	return c.matches.GetOrFetch(id, func() (*model.Match, error) {
		var parsed struct {
			MatchID   int32  `json:"matchId"`
			SeasonID  int32  `json:"seasonId"`
			MatchDate string `json:"matchDate"`
			MatchName string `json:"matchName"`
			Teams     []struct {
				TeamName string `json:"teamName"`
				TeamID   int32  `json:"teamId"`
			} `json:"teams"`
			Maps []struct {
				MapName string `json:"mapName"`
			} `json:"maps"`
		}
		if err := c.get(fmt.Sprintf("/v0/matches/%d", id), &parsed); err != nil {
			return nil, err
		}

		if len(parsed.Teams) != 2 {
			return nil, fmt.Errorf("expected 2 teams in match %d, got %d", id, len(parsed.Teams))
		}

		date, err := time.Parse(time.RFC3339, parsed.MatchDate)
		if err != nil {
			return nil, fmt.Errorf("error parsing match date: %w", err)
		}

		maps := make(model.MapList, 0, len(parsed.Maps))
		for _, m := range parsed.Maps {
			maps = append(maps, model.Map(m.MapName))
		}

		return &model.Match{
			ID:       model.MatchID(parsed.MatchID),
			SeasonID: model.SeasonID(parsed.SeasonID),
			Date:     date,
			Name:     parsed.MatchName,
			Teams: [2]model.MatchTeam{
				{ID: model.TeamID(parsed.Teams[0].TeamID), Name: parsed.Teams[0].TeamName},
				{ID: model.TeamID(parsed.Teams[1].TeamID), Name: parsed.Teams[1].TeamName},
			},
			Maps: maps,
		}, nil
	})
}

func (c *client) GetTeam(id model.TeamID) (*model.Team, error) {
	return c.teams.GetOrFetch(id, func() (*model.Team, error) {
		var parsed struct {
			TeamID   int32  `json:"teamId"`
			TeamName string `json:"teamName"`
			SeasonID int32  `json:"seasonId"`
		}
		if err := c.get(fmt.Sprintf("/v0/teams/%d", id), &parsed); err != nil {
			return nil, err
		}

		return &model.Team{
			ID:       id,
			Name:     parsed.TeamName,
			SeasonID: model.SeasonID(parsed.SeasonID),
		}, nil
	})
}

func (c *client) GetSeason(id model.SeasonID) (*model.Season, error) {
	return c.seasons.GetOrFetch(id, func() (*model.Season, error) {
		var parsed struct {
			FormatName string `json:"formatName"`
		}
		if err := c.get(fmt.Sprintf("/v0/seasons/%d", id), &parsed); err != nil {
			return nil, err
		}

		return &model.Season{
			ID:         id,
			FormatName: parsed.FormatName,
		}, nil
	})
}

func (c *client) GetProfile(id model.SteamID) (*model.Profile, error) {
	return c.profiles.GetOrFetch(id, func() (*model.Profile, error) {
		var parsed struct {
			SteamID      json.Number `json:"steamId"`
			Avatar       string      `json:"avatar"`
			Name         string      `json:"name"`
			CurrentTeams struct {
				Sixes      *profileTeamJSON `json:"sixes"`
				Highlander *profileTeamJSON `json:"highlander"`
			} `json:"currentTeams"`
		}
		if err := c.get(fmt.Sprintf("/v0/profile/%d", id), &parsed); err != nil {
			return nil, err
		}

		// RGL serves steam ids as either a number or a string
		// depending on the endpoint.
		steamID, err := strconv.ParseUint(parsed.SteamID.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("error parsing steam id: %w", err)
		}

		return &model.Profile{
			SteamID: model.SteamID(steamID),
			Name:    parsed.Name,
			Avatar:  parsed.Avatar,
			Teams: model.ProfileTeams{
				Sixes:      parsed.CurrentTeams.Sixes.toProfileTeam(),
				Highlander: parsed.CurrentTeams.Highlander.toProfileTeam(),
			},
		}, nil
	})
}

type profileTeamJSON struct {
	ID           int32  `json:"id"`
	Name         string `json:"name"`
	DivisionName string `json:"divisionName"`
}

func (j *profileTeamJSON) toProfileTeam() *model.ProfileTeam {
	if j == nil {
		return nil
	}
	return &model.ProfileTeam{
		ID:           model.TeamID(j.ID),
		Name:         j.Name,
		DivisionName: j.DivisionName,
	}
}

func (c *client) get(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.url+path, nil)
	if err != nil {
		return fmt.Errorf("error creating http request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error parsing response from rgl: %w", err)
	}
	return nil
}
