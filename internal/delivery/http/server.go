package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/subway-admin/internal/config"
	"github.com/subway-admin/internal/delivery/http/handler"
	"github.com/subway-admin/internal/delivery/http/middleware"
	"github.com/subway-admin/internal/pkg/errors"
	"github.com/subway-admin/internal/pkg/utils"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// HealthChecker is satisfied by the database and cache connections.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	lineHandler    *handler.LineHandler
	stationHandler *handler.StationHandler
	checks         map[string]HealthChecker
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	lineHandler *handler.LineHandler,
	stationHandler *handler.StationHandler,
	checks map[string]HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Subway Admin",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		lineHandler:    lineHandler,
		stationHandler: stationHandler,
		checks:         checks,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.health)

	// Lines; /lines/detail must precede /lines/:id
	lines := api.Group("/lines")
	lines.Post("/", s.lineHandler.CreateLine)
	lines.Get("/", s.lineHandler.ShowLines)
	lines.Get("/detail", s.lineHandler.WholeLines)
	lines.Get("/:id", s.lineHandler.GetLine)
	lines.Put("/:id", s.lineHandler.UpdateLine)
	lines.Delete("/:id", s.lineHandler.DeleteLine)
	lines.Post("/:id/stations", s.lineHandler.AddLineStation)
	lines.Delete("/:id/stations/:stationId", s.lineHandler.RemoveLineStation)

	// Stations
	stations := api.Group("/stations")
	stations.Post("/", s.stationHandler.CreateStation)
	stations.Get("/", s.stationHandler.ListStations)
	stations.Get("/search", s.stationHandler.FindStationByName)
	stations.Delete("/:id", s.stationHandler.DeleteStation)
}

func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	components := make(fiber.Map, len(s.checks))
	for name, check := range s.checks {
		if err := check.Health(ctx); err != nil {
			s.logger.Warn("Health check failed", zap.String("component", name), zap.Error(err))
			components[name] = "unhealthy"
			status = fiber.StatusServiceUnavailable
			continue
		}
		components[name] = "healthy"
	}

	overall := "healthy"
	if status != fiber.StatusOK {
		overall = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status":     overall,
		"components": components,
		"time":       time.Now(),
	})
}

// App exposes the fiber application, mainly for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler renders errors that escaped the handlers, e.g. unknown routes.
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if stderrors.As(err, &fe) {
			code := errors.CodeInternalServer
			switch {
			case fe.Code == fiber.StatusNotFound:
				code = errors.CodeNotFound
			case fe.Code < fiber.StatusInternalServerError:
				code = errors.CodeInvalidRequest
			}
			return utils.SendError(c, errors.New(code, fe.Message, fe.Code))
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}
