package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mikey/cafe-hours/internal/core"
	"github.com/mikey/cafe-hours/internal/locale"
	"go.uber.org/zap"
)

// DayIntervals lists the opening intervals of one weekday
type DayIntervals struct {
	Day       string          `json:"day"`
	Intervals []core.Interval `json:"intervals"`
}

// ScheduleResponse is the parsed form of an opening-hours string
type ScheduleResponse struct {
	AlwaysOpen bool           `json:"always_open"`
	Days       []DayIntervals `json:"days"`
}

type normalizeRequest struct {
	Text string `json:"text"`
}

type normalizeResponse struct {
	OpeningHours string `json:"opening_hours"`
}

// GetHoursStatus evaluates an opening-hours string against the current time
// GET /api/v1/hours/status?hours=...&lang=...
func (s *Server) GetHoursStatus(c echo.Context) error {
	result := s.service.Evaluator().Evaluate(c.QueryParam("hours"))
	return c.JSON(http.StatusOK, s.localize(c, result))
}

// GetSchedule returns the parsed weekly schedule of an opening-hours string
// GET /api/v1/hours/schedule?hours=...
func (s *Server) GetSchedule(c echo.Context) error {
	hours := c.QueryParam("hours")
	if core.IsAlwaysOpen(hours) {
		return c.JSON(http.StatusOK, ScheduleResponse{AlwaysOpen: true, Days: []DayIntervals{}})
	}

	schedule, err := s.service.Evaluator().Parse(hours)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp := ScheduleResponse{Days: []DayIntervals{}}
	for day := time.Sunday; day <= time.Saturday; day++ {
		if intervals, ok := schedule[day]; ok {
			resp.Days = append(resp.Days, DayIntervals{Day: day.String(), Intervals: intervals})
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// NormalizeHours rewrites free-form hours into the supported syntax
// POST /api/v1/hours/normalize
func (s *Server) NormalizeHours(c echo.Context) error {
	if !s.service.CanNormalize() {
		return echo.NewHTTPError(http.StatusNotImplemented, "hours normalizer is not configured")
	}

	var req normalizeRequest
	if err := c.Bind(&req); err != nil || req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}

	normalized, err := s.service.NormalizeHours(c.Request().Context(), req.Text)
	if err != nil {
		if errors.Is(err, core.ErrNotNormalized) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		s.logger.Error("Failed to normalize hours", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadGateway, "normalizer unavailable")
	}
	return c.JSON(http.StatusOK, normalizeResponse{OpeningHours: normalized})
}

// GetCacheStats reports the schedule cache contents
// GET /api/v1/hours/cache
func (s *Server) GetCacheStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.service.Evaluator().CacheStats())
}

// ClearCache drops every cached schedule
// DELETE /api/v1/hours/cache
func (s *Server) ClearCache(c echo.Context) error {
	s.service.Evaluator().ClearCache()
	return c.NoContent(http.StatusNoContent)
}

// ListSpots returns a user's saved spots with their status
// GET /api/v1/users/:user/spots
func (s *Server) ListSpots(c echo.Context) error {
	statuses, err := s.service.ListSpots(c.Request().Context(), c.Param("user"))
	if err != nil {
		s.logger.Error("Failed to list spots", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list spots")
	}
	for i := range statuses {
		statuses[i].Hours = s.localize(c, statuses[i].Hours)
	}
	return c.JSON(http.StatusOK, statuses)
}

// SaveSpot saves a spot for a user
// POST /api/v1/users/:user/spots
func (s *Server) SaveSpot(c echo.Context) error {
	var spot core.Spot
	if err := c.Bind(&spot); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid spot payload")
	}
	spot.UserID = c.Param("user")
	spot.RawOpeningHours = ""

	saved, err := s.service.SaveSpot(c.Request().Context(), &spot)
	if err != nil {
		if errors.Is(err, core.ErrInvalidSpot) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		s.logger.Error("Failed to save spot", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save spot")
	}

	result := s.service.Evaluator().Evaluate(saved.OpeningHours)
	return c.JSON(http.StatusCreated, core.SpotStatus{Spot: saved, Hours: s.localize(c, result)})
}

// GetSpot returns one saved spot with its status
// GET /api/v1/users/:user/spots/:id
func (s *Server) GetSpot(c echo.Context) error {
	status, err := s.service.GetSpot(c.Request().Context(), c.Param("user"), c.Param("id"))
	if err != nil {
		return s.spotError(err)
	}
	status.Hours = s.localize(c, status.Hours)
	return c.JSON(http.StatusOK, status)
}

// DeleteSpot removes a saved spot
// DELETE /api/v1/users/:user/spots/:id
func (s *Server) DeleteSpot(c echo.Context) error {
	if err := s.service.DeleteSpot(c.Request().Context(), c.Param("user"), c.Param("id")); err != nil {
		return s.spotError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) spotError(err error) error {
	if errors.Is(err, core.ErrSpotNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	s.logger.Error("Spot request failed", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, "spot request failed")
}

// localize relabels result when the request names a language
func (s *Server) localize(c echo.Context, result core.EvaluationResult) core.EvaluationResult {
	lang := c.QueryParam("lang")
	accept := c.Request().Header.Get("Accept-Language")
	if lang == "" && accept == "" {
		return result
	}
	return locale.Relabel(result, s.catalog.Lookup(lang, accept))
}
