package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidhanio/scheduletf/model"
)

var (
	ErrGameNotFound  error = errors.New("game not found")
	ErrTimeSlotTaken error = errors.New("another game already starts at that time")
)

func New(ctx context.Context, connString string) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool}, nil
}

type postgresDB struct {
	pool *pgxpool.Pool
}

func (db *postgresDB) GetTeam(ctx context.Context, id model.GuildID) (*model.TeamConfig, error) {
	const query = `SELECT guild_id, league_team_id, game_format, schedule_channel_id,
						schedule_message_id, serveme_key, division
					FROM teams WHERE guild_id=@guildID`

	const insert = `INSERT INTO teams (guild_id) VALUES (@guildID)
					ON CONFLICT (guild_id) DO NOTHING`

	args := pgx.NamedArgs{"guildID": int64(id)}

	t, err := scanTeam(db.pool.QueryRow(ctx, query, args))
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error reading team %d: %w", id, err)
	}

	// First interaction from this guild, create its settings row.
	if _, err := db.pool.Exec(ctx, insert, args); err != nil {
		return nil, fmt.Errorf("error creating team %d: %w", id, err)
	}
	return &model.TeamConfig{GuildID: id}, nil
}

func (db *postgresDB) SaveTeam(ctx context.Context, t *model.TeamConfig) error {
	const query = `UPDATE teams
		SET league_team_id=@leagueTeamID,
			game_format=@gameFormat,
			schedule_channel_id=@scheduleChannelID,
			schedule_message_id=@scheduleMessageID,
			serveme_key=@servemeKey,
			division=@division
		WHERE guild_id=@guildID`

	args := pgx.NamedArgs{
		"guildID":           int64(t.GuildID),
		"leagueTeamID":      t.LeagueTeamID,
		"gameFormat":        t.GameFormat,
		"scheduleChannelID": t.ScheduleChannelID,
		"scheduleMessageID": t.ScheduleMessageID,
		"servemeKey":        t.ServemeKey,
		"division":          t.Division,
	}

	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error saving team %d: %w", t.GuildID, err)
	}
	if tag.RowsAffected() == 0 {
		// The row is created lazily by GetTeam, but a fresh save can
		// race it.
		const insert = `INSERT INTO teams (
			guild_id, league_team_id, game_format, schedule_channel_id,
			schedule_message_id, serveme_key, division
		) VALUES (
			@guildID, @leagueTeamID, @gameFormat, @scheduleChannelID,
			@scheduleMessageID, @servemeKey, @division
		)`
		if _, err := db.pool.Exec(ctx, insert, args); err != nil {
			return fmt.Errorf("error inserting team %d: %w", t.GuildID, err)
		}
	}
	return nil
}

func scanTeam(row pgx.Row) (*model.TeamConfig, error) {
	var t model.TeamConfig
	var guildID int64
	err := row.Scan(
		&guildID,
		&t.LeagueTeamID,
		&t.GameFormat,
		&t.ScheduleChannelID,
		&t.ScheduleMessageID,
		&t.ServemeKey,
		&t.Division)
	if err != nil {
		return nil, err
	}
	t.GuildID = model.GuildID(guildID)
	return &t, nil
}

// isUniqueViolation reports whether the error is the (guild, start
// time) primary key rejecting a duplicate slot.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
