package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

var mysqlDialect = dialect{
	name: "mysql",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS saved_spots (
			id VARCHAR(64) NOT NULL,
			user_id VARCHAR(255) NOT NULL,
			place_id VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			address VARCHAR(512) NOT NULL DEFAULT '',
			latitude DOUBLE NOT NULL DEFAULT 0,
			longitude DOUBLE NOT NULL DEFAULT 0,
			opening_hours TEXT NOT NULL,
			raw_opening_hours TEXT NOT NULL,
			saved_at BIGINT NOT NULL,
			PRIMARY KEY (user_id, id),
			UNIQUE KEY uq_user_place (user_id, place_id),
			INDEX idx_user_saved (user_id, saved_at)
		)`,
	},
}

// NewMySQLStore connects to a MySQL spot store
func NewMySQLStore(dsn string, logger *zap.Logger) (*SQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}
	db.SetConnMaxLifetime(time.Hour)

	return newSQLStore(db, mysqlDialect, logger)
}
