package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

var postgresDialect = dialect{
	name:        "postgres",
	dollarBinds: true,
	schema: []string{
		`CREATE TABLE IF NOT EXISTS saved_spots (
			id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			place_id TEXT NOT NULL,
			name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			opening_hours TEXT NOT NULL DEFAULT '',
			raw_opening_hours TEXT NOT NULL DEFAULT '',
			saved_at BIGINT NOT NULL,
			PRIMARY KEY (user_id, id),
			UNIQUE (user_id, place_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_saved_spots_user ON saved_spots(user_id, saved_at)`,
	},
}

// NewPostgresStore connects to a PostgreSQL spot store
func NewPostgresStore(dsn string, logger *zap.Logger) (*SQLStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(15 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	return newSQLStore(db, postgresDialect, logger)
}
