package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mikey/cafe-hours/internal/core"
	"github.com/mikey/cafe-hours/internal/locale"
	"go.uber.org/zap"
)

// Server exposes opening-hours evaluation and saved spots over HTTP
type Server struct {
	echo            *echo.Echo
	service         *core.SpotService
	catalog         *locale.Catalog
	logger          *zap.Logger
	listenAddr      string
	shutdownTimeout time.Duration
	errCh           chan error
}

// NewServer creates a new HTTP API server
func NewServer(
	service *core.SpotService,
	catalog *locale.Catalog,
	logger *zap.Logger,
	listenAddr string,
	shutdownTimeout time.Duration,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:            e,
		service:         service,
		catalog:         catalog,
		logger:          logger,
		listenAddr:      listenAddr,
		shutdownTimeout: shutdownTimeout,
		errCh:           make(chan error, 1),
	}

	e.Use(middleware.Recover())
	e.Use(s.requestLogger)
	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	v1 := s.echo.Group("/api/v1")

	hours := v1.Group("/hours")
	hours.GET("/status", s.GetHoursStatus)
	hours.GET("/schedule", s.GetSchedule)
	hours.POST("/normalize", s.NormalizeHours)
	hours.GET("/cache", s.GetCacheStats)
	hours.DELETE("/cache", s.ClearCache)

	spots := v1.Group("/users/:user/spots")
	spots.GET("", s.ListSpots)
	spots.POST("", s.SaveSpot)
	spots.GET("/:id", s.GetSpot)
	spots.DELETE("/:id", s.DeleteSpot)
}

// Start starts listening in the background
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP API", zap.String("address", s.listenAddr))

	go func() {
		if err := s.echo.Start(s.listenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP API stopped unexpectedly", zap.Error(err))
			s.errCh <- err
		}
	}()
	return nil
}

// Errors reports a failure of the background listener
func (s *Server) Errors() <-chan error {
	return s.errCh
}

// Stop gracefully shuts the server down
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.logger.Info("Stopping HTTP API")
	return s.echo.Shutdown(ctx)
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		s.logger.Debug("Handled request",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().Status),
			zap.Duration("duration", time.Since(start)))
		return nil
	}
}
