package core_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mikey/cafe-hours/internal/adapters/store"
	"github.com/mikey/cafe-hours/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNormalizer struct {
	answers map[string]string
	err     error
	calls   []string
}

func (n *fakeNormalizer) NormalizeHours(_ context.Context, text string) (string, error) {
	n.calls = append(n.calls, text)
	if n.err != nil {
		return "", n.err
	}
	return n.answers[text], nil
}

func newTestService(normalizer core.HoursNormalizer) (*core.SpotService, *fakeClock) {
	clock := &fakeClock{now: day(16, 10, 0)}
	evaluator := core.NewEvaluator(nil, clock, 0, nil, nil)
	return core.NewSpotService(evaluator, store.NewMemoryStore(), normalizer, clock, nil), clock
}

func TestSaveSpot(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(nil)

	saved, err := service.SaveSpot(ctx, &core.Spot{
		UserID:       " alice ",
		PlaceID:      "osm:1",
		Name:         "Kaffeehaus",
		OpeningHours: "Mo-Fr 08:00-18:00",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "alice", saved.UserID)
	assert.Equal(t, day(16, 10, 0), saved.SavedAt)

	status, err := service.GetSpot(ctx, "alice", saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kaffeehaus", status.Spot.Name)
	assert.Equal(t, core.StatusOpen, status.Hours.Status)
}

func TestSaveSpotValidation(t *testing.T) {
	service, _ := newTestService(nil)

	tests := []struct {
		name string
		spot core.Spot
	}{
		{"missing user", core.Spot{PlaceID: "osm:1", Name: "A"}},
		{"missing place", core.Spot{UserID: "alice", Name: "A"}},
		{"blank name", core.Spot{UserID: "alice", PlaceID: "osm:1", Name: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.SaveSpot(context.Background(), &tt.spot)
			assert.ErrorIs(t, err, core.ErrInvalidSpot)
		})
	}
}

func TestListSpotsEvaluatesEach(t *testing.T) {
	ctx := context.Background()
	service, clock := newTestService(nil)

	_, err := service.SaveSpot(ctx, &core.Spot{UserID: "alice", PlaceID: "osm:1", Name: "Early", OpeningHours: "Mo-Fr 06:00-09:00"})
	require.NoError(t, err)
	clock.Advance(time.Second)
	_, err = service.SaveSpot(ctx, &core.Spot{UserID: "alice", PlaceID: "osm:2", Name: "Day", OpeningHours: "Mo-Fr 08:00-18:00"})
	require.NoError(t, err)
	clock.Advance(time.Second)
	_, err = service.SaveSpot(ctx, &core.Spot{UserID: "alice", PlaceID: "osm:3", Name: "Unknown"})
	require.NoError(t, err)
	_, err = service.SaveSpot(ctx, &core.Spot{UserID: "bob", PlaceID: "osm:4", Name: "Other"})
	require.NoError(t, err)

	statuses, err := service.ListSpots(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	assert.Equal(t, "Early", statuses[0].Spot.Name)
	assert.Equal(t, core.StatusClosed, statuses[0].Hours.Status)
	assert.Equal(t, core.StatusOpen, statuses[1].Hours.Status)
	assert.Equal(t, core.StatusUnknown, statuses[2].Hours.Status)
}

func TestDeleteSpot(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(nil)

	saved, err := service.SaveSpot(ctx, &core.Spot{UserID: "alice", PlaceID: "osm:1", Name: "A"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteSpot(ctx, "alice", saved.ID))
	_, err = service.GetSpot(ctx, "alice", saved.ID)
	assert.ErrorIs(t, err, core.ErrSpotNotFound)
	assert.ErrorIs(t, service.DeleteSpot(ctx, "alice", saved.ID), core.ErrSpotNotFound)
}

func TestSaveSpotNormalizesUnparsableHours(t *testing.T) {
	ctx := context.Background()
	normalizer := &fakeNormalizer{answers: map[string]string{
		"weekdays 8am to 6pm": "Mo-Fr 08:00-18:00",
	}}
	service, _ := newTestService(normalizer)

	saved, err := service.SaveSpot(ctx, &core.Spot{UserID: "alice", PlaceID: "osm:1", Name: "A", OpeningHours: "weekdays 8am to 6pm"})
	require.NoError(t, err)
	assert.Equal(t, "Mo-Fr 08:00-18:00", saved.OpeningHours)
	assert.Equal(t, "weekdays 8am to 6pm", saved.RawOpeningHours)

	t.Run("parsable hours are kept", func(t *testing.T) {
		normalizer.calls = nil
		for _, hours := range []string{"Sa 09:00-13:00", "24/7", "Jun-Aug: Mo-Su 10:00-18:00", ""} {
			saved, err := service.SaveSpot(ctx, &core.Spot{UserID: "alice", PlaceID: "osm:2", Name: "B", OpeningHours: hours})
			require.NoError(t, err)
			assert.Equal(t, hours, saved.OpeningHours)
			assert.Empty(t, saved.RawOpeningHours)
		}
		assert.Empty(t, normalizer.calls)
	})

	t.Run("failed normalization keeps the original", func(t *testing.T) {
		normalizer.err = errors.New("provider down")
		saved, err := service.SaveSpot(ctx, &core.Spot{UserID: "alice", PlaceID: "osm:3", Name: "C", OpeningHours: "ask the barista"})
		require.NoError(t, err)
		assert.Equal(t, "ask the barista", saved.OpeningHours)
		assert.Empty(t, saved.RawOpeningHours)
	})
}

func TestNormalizeHours(t *testing.T) {
	ctx := context.Background()

	t.Run("without normalizer", func(t *testing.T) {
		service, _ := newTestService(nil)
		assert.False(t, service.CanNormalize())
		_, err := service.NormalizeHours(ctx, "weekdays")
		assert.ErrorIs(t, err, core.ErrNotNormalized)
	})

	t.Run("rejects answers that do not parse", func(t *testing.T) {
		service, _ := newTestService(&fakeNormalizer{answers: map[string]string{"weekdays": "whenever"}})
		assert.True(t, service.CanNormalize())
		_, err := service.NormalizeHours(ctx, "weekdays")
		assert.ErrorIs(t, err, core.ErrNotNormalized)
	})

	t.Run("passes provider errors through", func(t *testing.T) {
		providerErr := errors.New("quota exceeded")
		service, _ := newTestService(&fakeNormalizer{err: providerErr})
		_, err := service.NormalizeHours(ctx, "weekdays")
		assert.ErrorIs(t, err, providerErr)
	})
}

func TestImportSpots(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(nil)

	input := `
- place_id: osm:1
  name: Kaffeehaus
  address: Ringstraße 1
  latitude: 48.2
  longitude: 16.37
  opening_hours: Mo-Fr 08:00-18:00
- place_id: osm:2
  name: Night Owl
  opening_hours: Fr 22:00-02:00
`
	n, err := service.ImportSpots(ctx, "alice", strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	statuses, err := service.ListSpots(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	names := []string{statuses[0].Spot.Name, statuses[1].Spot.Name}
	assert.ElementsMatch(t, []string{"Kaffeehaus", "Night Owl"}, names)

	t.Run("empty input", func(t *testing.T) {
		n, err := service.ImportSpots(ctx, "alice", strings.NewReader(""))
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("invalid spot stops the import", func(t *testing.T) {
		n, err := service.ImportSpots(ctx, "bob", strings.NewReader("- place_id: osm:9\n  name: ok\n- name: no place\n"))
		assert.ErrorIs(t, err, core.ErrInvalidSpot)
		assert.Equal(t, 1, n)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := service.ImportSpots(ctx, "bob", strings.NewReader("name: [unterminated"))
		assert.Error(t, err)
	})
}
