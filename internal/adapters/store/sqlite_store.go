package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

var sqliteDialect = dialect{
	name: "sqlite",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS saved_spots (
			id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			place_id TEXT NOT NULL,
			name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			latitude REAL NOT NULL DEFAULT 0,
			longitude REAL NOT NULL DEFAULT 0,
			opening_hours TEXT NOT NULL DEFAULT '',
			raw_opening_hours TEXT NOT NULL DEFAULT '',
			saved_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, id),
			UNIQUE (user_id, place_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_saved_spots_user ON saved_spots(user_id, saved_at)`,
	},
}

// NewSQLiteStore opens a SQLite spot store at dbPath (":memory:" for a throwaway store)
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// SQLite serializes writers, and an in-memory database exists per connection
	db.SetMaxOpenConns(1)

	return newSQLStore(db, sqliteDialect, logger)
}
