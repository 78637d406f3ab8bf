package model

import "time"

// TeamID identifies a team on the league API. SeasonID identifies a
// season. SteamID identifies a player.
type TeamID int32

type SeasonID int32

type SteamID uint64

// Match is the league API's record of an official match.
type Match struct {
	ID       MatchID
	SeasonID SeasonID
	Date     time.Time
	Name     string
	Teams    [2]MatchTeam
	Maps     MapList
}

type MatchTeam struct {
	ID   TeamID
	Name string
}

// Opponent returns the other team in the match, or false if the given
// team is not in the match at all.
func (m *Match) Opponent(id TeamID) (MatchTeam, bool) {
	switch {
	case m.Teams[0].ID == id:
		return m.Teams[1], true
	case m.Teams[1].ID == id:
		return m.Teams[0], true
	default:
		return MatchTeam{}, false
	}
}

// Team is the league API's record of a team.
type Team struct {
	ID       TeamID
	Name     string
	SeasonID SeasonID
}

// Season carries the format a season is played in.
type Season struct {
	ID         SeasonID
	FormatName string
}

func (s *Season) Format() (GameFormat, error) {
	return ParseGameFormat(s.FormatName)
}

// Profile is a player profile on the league API.
type Profile struct {
	SteamID SteamID
	Name    string
	Avatar  string
	Teams   ProfileTeams
}

type ProfileTeams struct {
	Sixes      *ProfileTeam
	Highlander *ProfileTeam
}

type ProfileTeam struct {
	ID           TeamID
	Name         string
	DivisionName string
}
