package store

import (
	"context"
	"sort"
	"sync"

	"github.com/mikey/cafe-hours/internal/core"
)

// MemoryStore keeps saved spots in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	spots map[string]map[string]*core.Spot // user -> id -> spot
}

// NewMemoryStore creates an empty in-memory spot store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{spots: make(map[string]map[string]*core.Spot)}
}

// Save inserts a spot, replacing any spot with the same id or place for that user
func (s *MemoryStore) Save(_ context.Context, spot *core.Spot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userSpots, ok := s.spots[spot.UserID]
	if !ok {
		userSpots = make(map[string]*core.Spot)
		s.spots[spot.UserID] = userSpots
	}
	for id, existing := range userSpots {
		if existing.PlaceID == spot.PlaceID {
			delete(userSpots, id)
		}
	}
	stored := *spot
	userSpots[spot.ID] = &stored
	return nil
}

// Get retrieves one spot of a user
func (s *MemoryStore) Get(_ context.Context, userID, spotID string) (*core.Spot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	spot, ok := s.spots[userID][spotID]
	if !ok {
		return nil, core.ErrSpotNotFound
	}
	tmp := *spot
	return &tmp, nil
}

// List returns all spots of a user, oldest first
func (s *MemoryStore) List(_ context.Context, userID string) ([]*core.Spot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	spots := make([]*core.Spot, 0, len(s.spots[userID]))
	for _, spot := range s.spots[userID] {
		tmp := *spot
		spots = append(spots, &tmp)
	}
	sort.Slice(spots, func(i, j int) bool {
		if spots[i].SavedAt.Equal(spots[j].SavedAt) {
			return spots[i].ID < spots[j].ID
		}
		return spots[i].SavedAt.Before(spots[j].SavedAt)
	})
	return spots, nil
}

// Delete removes a spot
func (s *MemoryStore) Delete(_ context.Context, userID, spotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.spots[userID][spotID]; !ok {
		return core.ErrSpotNotFound
	}
	delete(s.spots[userID], spotID)
	return nil
}

// Close is a no-op for the memory store
func (s *MemoryStore) Close() error {
	return nil
}
