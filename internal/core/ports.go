package core

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrSpotNotFound is returned when a saved spot does not exist
	ErrSpotNotFound = errors.New("spot not found")
	// ErrInvalidSpot is returned when a spot is missing required fields
	ErrInvalidSpot = errors.New("invalid spot")
	// ErrNotNormalized is returned when opening hours could not be rewritten
	ErrNotNormalized = errors.New("opening hours could not be normalized")
)

// Clock supplies the current wall-clock time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock
type SystemClock struct{}

// Now returns the current local time
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time { return c.At }

// ScheduleCache memoizes parsed schedules keyed by the raw schedule string
type ScheduleCache interface {
	// Get returns the schedule for key if it has not expired
	Get(key string) (Schedule, bool)

	// Set stores a schedule until expiresAt
	Set(key string, schedule Schedule, expiresAt time.Time)

	// Clear drops every entry
	Clear()

	// Stats reports the live entries
	Stats() CacheStats
}

// SpotRepository persists saved spots
type SpotRepository interface {
	// Save inserts or replaces a spot
	Save(ctx context.Context, spot *Spot) error

	// Get retrieves one spot of a user
	Get(ctx context.Context, userID, spotID string) (*Spot, error)

	// List returns all spots of a user, oldest first
	List(ctx context.Context, userID string) ([]*Spot, error)

	// Delete removes a spot
	Delete(ctx context.Context, userID, spotID string) error

	// Close releases the underlying storage
	Close() error
}

// HoursNormalizer rewrites free-form opening hours into the supported syntax
type HoursNormalizer interface {
	NormalizeHours(ctx context.Context, text string) (string, error)
}
