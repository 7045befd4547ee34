package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type ResultRepo struct {
	DB *sql.DB
}

func NewResultRepo(db *sql.DB) *ResultRepo {
	return &ResultRepo{DB: db}
}

// GameRecord is one finished game as persisted.
type GameRecord struct {
	Player1         string
	Player2         string
	Winner          string
	Reason          string
	TotalMoves      int
	DurationSeconds int
	FinishedAt      time.Time
}

// Stats aggregates persisted game results.
type Stats struct {
	AverageDurationSeconds int     `json:"averageDurationSeconds"`
	TotalGamesPlayed       int     `json:"totalGamesPlayed"`
	GamesInLast24Hours     int     `json:"gamesInLast24Hours"`
	GamesPerHour           float64 `json:"gamesPerHour"`
}

// PlayerStanding is one leaderboard row.
type PlayerStanding struct {
	Username    string `json:"username"`
	Wins        int    `json:"wins"`
	GamesPlayed int    `json:"gamesPlayed"`
}

func (r *ResultRepo) RecordGameResult(ctx context.Context, rec GameRecord) error {
	query := `
	INSERT INTO game_results (player1, player2, winner, reason, total_moves, duration_seconds, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.DB.ExecContext(ctx, query,
		rec.Player1, rec.Player2, rec.Winner, rec.Reason,
		rec.TotalMoves, rec.DurationSeconds, rec.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to insert game result: %v", err)
	}
	return nil
}

// UpsertPlayerStats adds the deltas to a player's tallies, creating the
// row on first sight.
func (r *ResultRepo) UpsertPlayerStats(ctx context.Context, username string, winsDelta, playedDelta int) error {
	query := `
	INSERT INTO player_stats (username, wins, games_played)
	VALUES ($1, $2, $3)
	ON CONFLICT (username) DO UPDATE SET
		wins = player_stats.wins + EXCLUDED.wins,
		games_played = player_stats.games_played + EXCLUDED.games_played;
	`
	_, err := r.DB.ExecContext(ctx, query, username, winsDelta, playedDelta)
	if err != nil {
		return fmt.Errorf("failed to upsert stats for %s: %v", username, err)
	}
	return nil
}

func (r *ResultRepo) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	var avg sql.NullFloat64

	query := `SELECT COALESCE(AVG(duration_seconds), 0), COUNT(*) FROM game_results;`
	if err := r.DB.QueryRowContext(ctx, query).Scan(&avg, &stats.TotalGamesPlayed); err != nil {
		return nil, fmt.Errorf("failed to aggregate game results: %v", err)
	}
	stats.AverageDurationSeconds = int(avg.Float64 + 0.5)

	query = `SELECT COUNT(*) FROM game_results WHERE created_at >= now() - INTERVAL '24 hours';`
	if err := r.DB.QueryRowContext(ctx, query).Scan(&stats.GamesInLast24Hours); err != nil {
		return nil, fmt.Errorf("failed to count recent games: %v", err)
	}
	stats.GamesPerHour = float64(stats.GamesInLast24Hours) / 24.0

	return &stats, nil
}

func (r *ResultRepo) GetLeaderboard(ctx context.Context, limit int) ([]PlayerStanding, error) {
	query := `
	SELECT username, wins, games_played
	FROM player_stats
	ORDER BY wins DESC, games_played ASC
	LIMIT $1;
	`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %v", err)
	}
	defer rows.Close()

	standings := []PlayerStanding{}
	for rows.Next() {
		var s PlayerStanding
		if err := rows.Scan(&s.Username, &s.Wins, &s.GamesPlayed); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %v", err)
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}
