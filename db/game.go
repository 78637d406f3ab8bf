package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vidhanio/scheduletf/model"
)

const gameColumns = `guild_id, starts_at, reservation_id, connect_address,
	connect_password, opponent_user_id, game_format, maps, league_match_id`

func (db *postgresDB) GetGame(ctx context.Context, id model.GuildID, startsAt time.Time) (*model.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games
				WHERE guild_id=@guildID AND starts_at=@startsAt`

	args := pgx.NamedArgs{
		"guildID":  int64(id),
		"startsAt": timestamptz(startsAt),
	}

	g, err := scanGame(db.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("error reading game: %w", err)
	}
	return g, nil
}

func (db *postgresDB) InsertGame(ctx context.Context, g *model.Game) error {
	const query = `INSERT INTO games (
		guild_id,
		starts_at,
		reservation_id,
		connect_address,
		connect_password,
		opponent_user_id,
		game_format,
		maps,
		league_match_id
	) VALUES (
		@guildID,
		@startsAt,
		@reservationID,
		@connectAddress,
		@connectPassword,
		@opponent,
		@gameFormat,
		@maps,
		@leagueMatchID
	)`

	_, err := db.pool.Exec(ctx, query, namedArgsForGame(g))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrTimeSlotTaken
		}
		return fmt.Errorf("error inserting game: %w", err)
	}
	return nil
}

func (db *postgresDB) UpdateGame(ctx context.Context, oldStartsAt time.Time, g *model.Game) error {
	const query = `UPDATE games
		SET starts_at=@startsAt,
			reservation_id=@reservationID,
			connect_address=@connectAddress,
			connect_password=@connectPassword,
			opponent_user_id=@opponent,
			game_format=@gameFormat,
			maps=@maps,
			league_match_id=@leagueMatchID
		WHERE guild_id=@guildID AND starts_at=@oldStartsAt`

	args := namedArgsForGame(g)
	args["oldStartsAt"] = timestamptz(oldStartsAt)

	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrTimeSlotTaken
		}
		return fmt.Errorf("error updating game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGameNotFound
	}
	return nil
}

func (db *postgresDB) DeleteGame(ctx context.Context, id model.GuildID, startsAt time.Time) error {
	const query = `DELETE FROM games WHERE guild_id=@guildID AND starts_at=@startsAt`

	args := pgx.NamedArgs{
		"guildID":  int64(id),
		"startsAt": timestamptz(startsAt),
	}

	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error deleting game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGameNotFound
	}
	return nil
}

func (db *postgresDB) ListUpcomingGames(ctx context.Context, id model.GuildID, after time.Time, kind *model.GameKind) ([]*model.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games
				WHERE guild_id=@guildID AND starts_at >= @after
				ORDER BY starts_at ASC`

	args := pgx.NamedArgs{
		"guildID": int64(id),
		"after":   timestamptz(after),
	}

	if kind != nil {
		// Scrims are the rows with scrim detail columns, matches the
		// rows with a league match id.
		if *kind == model.KindMatch {
			query = `SELECT ` + gameColumns + ` FROM games
						WHERE guild_id=@guildID AND starts_at >= @after
							AND league_match_id IS NOT NULL
						ORDER BY starts_at ASC`
		} else {
			query = `SELECT ` + gameColumns + ` FROM games
						WHERE guild_id=@guildID AND starts_at >= @after
							AND league_match_id IS NULL
						ORDER BY starts_at ASC`
		}
	}

	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing games: %w", err)
	}

	games := make([]*model.Game, 0, 8)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (db *postgresDB) TakenTimes(ctx context.Context, id model.GuildID, times []time.Time) (map[time.Time]bool, error) {
	const query = `SELECT starts_at FROM games
					WHERE guild_id=@guildID AND starts_at = ANY(@times)`

	candidates := make([]pgtype.Timestamptz, len(times))
	for i, t := range times {
		candidates[i] = timestamptz(t)
	}

	args := pgx.NamedArgs{
		"guildID": int64(id),
		"times":   candidates,
	}

	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error checking taken times: %w", err)
	}

	taken := make(map[time.Time]bool, len(times))
	for rows.Next() {
		var t pgtype.Timestamptz
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("error scanning taken time: %w", err)
		}
		taken[t.Time.UTC()] = true
	}
	return taken, rows.Err()
}

func scanGame(row pgx.Row) (*model.Game, error) {
	var r model.GameRow
	var startsAt pgtype.Timestamptz
	err := row.Scan(
		&r.GuildID,
		&startsAt,
		&r.ReservationID,
		&r.ConnectAddress,
		&r.ConnectPassword,
		&r.Opponent,
		&r.GameFormat,
		&r.Maps,
		&r.LeagueMatchID)
	if err != nil {
		return nil, err
	}
	r.StartsAt = startsAt.Time.UTC()

	return r.Decode()
}

func namedArgsForGame(g *model.Game) pgx.NamedArgs {
	r := g.Row()
	return pgx.NamedArgs{
		"guildID":         r.GuildID,
		"startsAt":        timestamptz(r.StartsAt),
		"reservationID":   r.ReservationID,
		"connectAddress":  r.ConnectAddress,
		"connectPassword": r.ConnectPassword,
		"opponent":        r.Opponent,
		"gameFormat":      r.GameFormat,
		"maps":            r.Maps,
		"leagueMatchID":   r.LeagueMatchID,
	}
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:             t.UTC(),
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
}
