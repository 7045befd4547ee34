package postgres

import (
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS game_results (
	id               BIGSERIAL PRIMARY KEY,
	player1          TEXT NOT NULL,
	player2          TEXT NOT NULL,
	winner           TEXT NOT NULL,
	reason           TEXT NOT NULL,
	total_moves      INT NOT NULL,
	duration_seconds INT NOT NULL,
	finished_at      TIMESTAMPTZ NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_game_results_created_at ON game_results (created_at);

CREATE TABLE IF NOT EXISTS player_stats (
	username     TEXT PRIMARY KEY,
	wins         INT NOT NULL DEFAULT 0,
	games_played INT NOT NULL DEFAULT 0
);
`

// RunMigrations initializes the schema. Statements are idempotent so the
// migration can run on every startup.
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %v", err)
	}
	return nil
}
