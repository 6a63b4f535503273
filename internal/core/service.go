package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SpotService manages a user's saved cafés and their opening status
type SpotService struct {
	evaluator  *Evaluator
	repo       SpotRepository
	normalizer HoursNormalizer
	clock      Clock
	logger     *zap.Logger
}

// NewSpotService creates a new spot service. normalizer may be nil.
func NewSpotService(
	evaluator *Evaluator,
	repo SpotRepository,
	normalizer HoursNormalizer,
	clock Clock,
	logger *zap.Logger,
) *SpotService {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpotService{
		evaluator:  evaluator,
		repo:       repo,
		normalizer: normalizer,
		clock:      clock,
		logger:     logger,
	}
}

// Evaluator returns the opening-hours evaluator the service uses
func (s *SpotService) Evaluator() *Evaluator {
	return s.evaluator
}

// SaveSpot validates and stores a spot, normalizing its hours when they do not parse
func (s *SpotService) SaveSpot(ctx context.Context, spot *Spot) (*Spot, error) {
	spot.UserID = strings.TrimSpace(spot.UserID)
	spot.PlaceID = strings.TrimSpace(spot.PlaceID)
	spot.Name = strings.TrimSpace(spot.Name)
	if spot.UserID == "" || spot.PlaceID == "" || spot.Name == "" {
		return nil, fmt.Errorf("%w: user_id, place_id and name are required", ErrInvalidSpot)
	}

	if spot.ID == "" {
		spot.ID = uuid.NewString()
	}
	spot.SavedAt = s.clock.Now()

	if s.needsNormalizing(spot.OpeningHours) {
		s.normalizeHours(ctx, spot)
	}

	if err := s.repo.Save(ctx, spot); err != nil {
		return nil, fmt.Errorf("failed to save spot: %w", err)
	}

	s.logger.Info("Saved spot",
		zap.String("user", spot.UserID),
		zap.String("spot", spot.ID),
		zap.String("place", spot.PlaceID))
	return spot, nil
}

// GetSpot returns one saved spot with its current status
func (s *SpotService) GetSpot(ctx context.Context, userID, spotID string) (*SpotStatus, error) {
	spot, err := s.repo.Get(ctx, userID, spotID)
	if err != nil {
		return nil, err
	}
	return &SpotStatus{Spot: spot, Hours: s.evaluator.Evaluate(spot.OpeningHours)}, nil
}

// ListSpots returns all spots of a user with their current status
func (s *SpotService) ListSpots(ctx context.Context, userID string) ([]SpotStatus, error) {
	spots, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list spots: %w", err)
	}

	statuses := make([]SpotStatus, 0, len(spots))
	for _, spot := range spots {
		statuses = append(statuses, SpotStatus{
			Spot:  spot,
			Hours: s.evaluator.Evaluate(spot.OpeningHours),
		})
	}
	return statuses, nil
}

// DeleteSpot removes a saved spot
func (s *SpotService) DeleteSpot(ctx context.Context, userID, spotID string) error {
	if err := s.repo.Delete(ctx, userID, spotID); err != nil {
		return err
	}
	s.logger.Info("Deleted spot", zap.String("user", userID), zap.String("spot", spotID))
	return nil
}

// ImportSpots saves every spot of a YAML list for userID and returns how many were saved
func (s *SpotService) ImportSpots(ctx context.Context, userID string, r io.Reader) (int, error) {
	var spots []*Spot
	if err := yaml.NewDecoder(r).Decode(&spots); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to decode spots: %w", err)
	}

	saved := 0
	for _, spot := range spots {
		if spot == nil {
			continue
		}
		spot.UserID = userID
		if _, err := s.SaveSpot(ctx, spot); err != nil {
			return saved, fmt.Errorf("failed to import spot %q: %w", spot.Name, err)
		}
		saved++
	}
	return saved, nil
}

// CanNormalize reports whether a normalizer is configured
func (s *SpotService) CanNormalize() bool {
	return s.normalizer != nil
}

// NormalizeHours rewrites free-form hours into the supported syntax
func (s *SpotService) NormalizeHours(ctx context.Context, text string) (string, error) {
	if s.normalizer == nil {
		return "", fmt.Errorf("%w: no normalizer configured", ErrNotNormalized)
	}
	normalized, err := s.normalizer.NormalizeHours(ctx, text)
	if err != nil {
		return "", err
	}
	if !s.yieldsSchedule(normalized) {
		return "", fmt.Errorf("%w: %q does not parse", ErrNotNormalized, normalized)
	}
	return normalized, nil
}

// needsNormalizing reports whether hours are present but yield no schedule
func (s *SpotService) needsNormalizing(hours string) bool {
	return s.normalizer != nil && strings.TrimSpace(hours) != "" && !s.yieldsSchedule(hours)
}

func (s *SpotService) yieldsSchedule(hours string) bool {
	if IsAlwaysOpen(hours) {
		return true
	}
	schedule, err := s.evaluator.Parse(hours)
	if err != nil {
		return false
	}
	// month-qualified hours are legitimately empty outside their season
	return len(schedule) > 0 || monthTokenPattern.MatchString(hours)
}

func (s *SpotService) normalizeHours(ctx context.Context, spot *Spot) {
	normalized, err := s.NormalizeHours(ctx, spot.OpeningHours)
	if err != nil {
		s.logger.Warn("Keeping opening hours as given",
			zap.String("place", spot.PlaceID),
			zap.String("hours", spot.OpeningHours),
			zap.Error(err))
		return
	}

	s.logger.Debug("Normalized opening hours",
		zap.String("place", spot.PlaceID),
		zap.String("from", spot.OpeningHours),
		zap.String("to", normalized))
	spot.RawOpeningHours = spot.OpeningHours
	spot.OpeningHours = normalized
}
