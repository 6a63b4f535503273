package core

import (
	"time"
)

// Status is the three-valued outcome of an opening-hours evaluation
type Status string

const (
	StatusOpen    Status = "open"
	StatusClosed  Status = "closed"
	StatusUnknown Status = "unknown"
)

// Interval is an opening range in HHMM encoding (18:30 is 1830).
// End is above 2400 when the range runs past midnight.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether the HHMM time falls inside the interval
func (i Interval) Contains(hhmm int) bool {
	if i.End > 2400 {
		return hhmm >= i.Start || hhmm <= i.End-2400
	}
	return hhmm >= i.Start && hhmm <= i.End
}

// Schedule maps a weekday to the intervals the place is open on that day
type Schedule map[time.Weekday][]Interval

// EvaluationResult represents the answer to "is this place open now"
type EvaluationResult struct {
	IsOpen     bool   `json:"is_open"`
	Status     Status `json:"status"`
	StatusText string `json:"status_text"`
}

// StatusTexts holds the display string for each status
type StatusTexts map[Status]string

// DefaultStatusTexts are the English display strings
var DefaultStatusTexts = StatusTexts{
	StatusOpen:    "Open now",
	StatusClosed:  "Closed",
	StatusUnknown: "Hours unavailable",
}

// CacheEntry is a parsed schedule held by a ScheduleCache
type CacheEntry struct {
	Key       string
	Schedule  Schedule
	ExpiresAt time.Time
}

// CacheStats describes the schedule cache contents for diagnostics
type CacheStats struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}

// Spot is a café a user saved as a favorite
type Spot struct {
	ID              string    `json:"id" yaml:"id"`
	UserID          string    `json:"user_id" yaml:"user_id"`
	PlaceID         string    `json:"place_id" yaml:"place_id"`
	Name            string    `json:"name" yaml:"name"`
	Address         string    `json:"address,omitempty" yaml:"address"`
	Latitude        float64   `json:"latitude" yaml:"latitude"`
	Longitude       float64   `json:"longitude" yaml:"longitude"`
	OpeningHours    string    `json:"opening_hours,omitempty" yaml:"opening_hours"`
	RawOpeningHours string    `json:"raw_opening_hours,omitempty" yaml:"-"`
	SavedAt         time.Time `json:"saved_at" yaml:"-"`
}

// SpotStatus pairs a saved spot with its current opening status
type SpotStatus struct {
	Spot  *Spot            `json:"spot"`
	Hours EvaluationResult `json:"hours"`
}
