package model

// TeamConfig is the per-guild settings row. It is created lazily on a
// team's first interaction and never deleted.
type TeamConfig struct {
	GuildID           GuildID
	LeagueTeamID      *TeamID
	GameFormat        *GameFormat
	ScheduleChannelID *int64
	ScheduleMessageID *int64
	ServemeKey        *string
	Division          *string
}

// DefaultFormat returns the configured default game format, if any.
func (t *TeamConfig) DefaultFormat() (GameFormat, bool) {
	if t.GameFormat == nil {
		return FormatUnknown, false
	}
	return *t.GameFormat, true
}
