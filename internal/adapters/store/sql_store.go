package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mikey/cafe-hours/internal/core"
	"go.uber.org/zap"
)

const spotColumns = `id, user_id, place_id, name, address, latitude, longitude, opening_hours, raw_opening_hours, saved_at`

// dialect captures what differs between the SQL backends
type dialect struct {
	name        string
	schema      []string
	dollarBinds bool
}

// SQLStore is a database/sql implementation of the SpotRepository interface
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	logger  *zap.Logger
}

func newSQLStore(db *sql.DB, d dialect, logger *zap.Logger) (*SQLStore, error) {
	for _, stmt := range d.schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create %s schema: %w", d.name, err)
		}
	}
	return &SQLStore{
		db:      db,
		dialect: d,
		logger:  logger,
	}, nil
}

// bind rewrites ? placeholders for drivers that use $n
func (s *SQLStore) bind(query string) string {
	if !s.dialect.dollarBinds {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Save inserts a spot, replacing any row with the same id or the same place for that user
func (s *SQLStore) Save(ctx context.Context, spot *core.Spot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.bind(`
		DELETE FROM saved_spots
		WHERE user_id = ? AND (id = ? OR place_id = ?)
	`), spot.UserID, spot.ID, spot.PlaceID)
	if err != nil {
		return fmt.Errorf("failed to replace spot: %w", err)
	}

	_, err = tx.ExecContext(ctx, s.bind(`
		INSERT INTO saved_spots (`+spotColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), spot.ID, spot.UserID, spot.PlaceID, spot.Name, spot.Address,
		spot.Latitude, spot.Longitude, spot.OpeningHours, spot.RawOpeningHours,
		spot.SavedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert spot: %w", err)
	}

	return tx.Commit()
}

// Get retrieves one spot of a user
func (s *SQLStore) Get(ctx context.Context, userID, spotID string) (*core.Spot, error) {
	row := s.db.QueryRowContext(ctx, s.bind(`
		SELECT `+spotColumns+`
		FROM saved_spots
		WHERE user_id = ? AND id = ?
	`), userID, spotID)

	spot, err := scanSpot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrSpotNotFound
		}
		return nil, fmt.Errorf("failed to query spot: %w", err)
	}
	return spot, nil
}

// List returns all spots of a user, oldest first
func (s *SQLStore) List(ctx context.Context, userID string) ([]*core.Spot, error) {
	rows, err := s.db.QueryContext(ctx, s.bind(`
		SELECT `+spotColumns+`
		FROM saved_spots
		WHERE user_id = ?
		ORDER BY saved_at, id
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query spots: %w", err)
	}
	defer rows.Close()

	var spots []*core.Spot
	for rows.Next() {
		spot, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan spot: %w", err)
		}
		spots = append(spots, spot)
	}
	return spots, rows.Err()
}

// Delete removes a spot
func (s *SQLStore) Delete(ctx context.Context, userID, spotID string) error {
	result, err := s.db.ExecContext(ctx, s.bind(`
		DELETE FROM saved_spots
		WHERE user_id = ? AND id = ?
	`), userID, spotID)
	if err != nil {
		return fmt.Errorf("failed to delete spot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		s.logger.Warn("Failed to get rows affected during delete", zap.Error(err))
		return nil
	}
	if rowsAffected == 0 {
		return core.ErrSpotNotFound
	}
	return nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close %s database: %w", s.dialect.name, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpot(row rowScanner) (*core.Spot, error) {
	var (
		spot    core.Spot
		savedAt int64
	)
	err := row.Scan(&spot.ID, &spot.UserID, &spot.PlaceID, &spot.Name, &spot.Address,
		&spot.Latitude, &spot.Longitude, &spot.OpeningHours, &spot.RawOpeningHours, &savedAt)
	if err != nil {
		return nil, err
	}
	spot.SavedAt = time.UnixMilli(savedAt)
	return &spot, nil
}
