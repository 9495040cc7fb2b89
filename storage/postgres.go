// Package storage persists lifetime player statistics. The game core only
// sees the StatsRecorder interface; everything here is the postgres
// implementation behind it.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrStatsNotFound        = errors.New("stats not found")
	UnexpectedDatabaseError = errors.New("unexpected database error")
)

// PlayerStats mirrors one row of the player_stats table.
type PlayerStats struct {
	PlayerId      string
	TotalGames    int
	Wins          int
	GamesAdvanced int
}

type PostgresStatsRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresStatsRepo(ctx context.Context, connString string) (*PostgresStatsRepo, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &PostgresStatsRepo{pool: pool}, nil
}

// RecordResult counts one finished game for the player, plus a win and an
// advanced-mode game where they apply.
func (repo *PostgresStatsRepo) RecordResult(ctx context.Context, playerId string, won, advanced bool) error {
	winInc, advancedInc := 0, 0
	if won {
		winInc = 1
	}
	if advanced {
		advancedInc = 1
	}

	_, err := repo.pool.Exec(ctx, `
		INSERT INTO player_stats(player_id, total_games, wins, games_advanced)
		VALUES($1, 1, $2, $3)
		ON CONFLICT (player_id) DO UPDATE SET
			total_games = player_stats.total_games + 1,
			wins = player_stats.wins + $2,
			games_advanced = player_stats.games_advanced + $3`,
		playerId, winInc, advancedInc)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", UnexpectedDatabaseError, err)
	}
	return nil
}

// RecordAbandon counts a game against a player who left it running.
func (repo *PostgresStatsRepo) RecordAbandon(ctx context.Context, playerId string) error {
	_, err := repo.pool.Exec(ctx, `
		INSERT INTO player_stats(player_id, total_games)
		VALUES($1, 1)
		ON CONFLICT (player_id) DO UPDATE SET
			total_games = player_stats.total_games + 1`,
		playerId)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", UnexpectedDatabaseError, err)
	}
	return nil
}

// GetStats returns the stored lifetime stats for one player.
func (repo *PostgresStatsRepo) GetStats(ctx context.Context, playerId string) (PlayerStats, error) {
	stats := PlayerStats{PlayerId: playerId}

	row := repo.pool.QueryRow(ctx,
		"SELECT total_games, wins, games_advanced FROM player_stats WHERE player_id = $1", playerId)

	err := row.Scan(&stats.TotalGames, &stats.Wins, &stats.GamesAdvanced)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return PlayerStats{}, ErrStatsNotFound
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return PlayerStats{}, err
		default:
			return PlayerStats{}, fmt.Errorf("%w: %w", UnexpectedDatabaseError, err)
		}
	}

	return stats, nil
}

func (repo *PostgresStatsRepo) Close() {
	repo.pool.Close()
}
