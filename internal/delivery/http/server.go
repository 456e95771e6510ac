package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/location-quest/internal/config"
	"github.com/location-quest/internal/delivery/http/handler"
	"github.com/location-quest/internal/delivery/http/middleware"
	"github.com/location-quest/internal/pkg/errors"
	"github.com/location-quest/internal/pkg/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server is the Fiber HTTP server exposing the game API.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	activityHandler *handler.ActivityHandler
	badgeHandler    *handler.BadgeHandler
	locationHandler *handler.LocationHandler
	userHandler     *handler.UserHandler
	nfcHandler      *handler.NFCHandler
	healthHandler   *handler.HealthHandler
	docsHandler     *handler.DocsHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	activityHandler *handler.ActivityHandler,
	badgeHandler *handler.BadgeHandler,
	locationHandler *handler.LocationHandler,
	userHandler *handler.UserHandler,
	nfcHandler *handler.NFCHandler,
	healthHandler *handler.HealthHandler,
	docsHandler *handler.DocsHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Location Quest API",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		activityHandler: activityHandler,
		badgeHandler:    badgeHandler,
		locationHandler: locationHandler,
		userHandler:     userHandler,
		nfcHandler:      nfcHandler,
		healthHandler:   healthHandler,
		docsHandler:     docsHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.AllowedOrigins()))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api")

	api.Get("/health", s.healthHandler.Health)
	api.Get("/docs", s.docsHandler.Docs)

	api.Get("/nfc", s.nfcHandler.Tap)
	api.Post("/nfc", s.nfcHandler.Read)
	api.Post("/nfc/read", s.nfcHandler.Read)

	api.Get("/locations", s.locationHandler.List)
	api.Post("/locations", s.locationHandler.Create)
	api.Patch("/locations/:locationId", s.locationHandler.Update)
	api.Delete("/locations/:locationId", s.locationHandler.Delete)
	api.Post("/locations/:locationId/enable-nfc", s.locationHandler.EnableNFC)

	api.Get("/badges", s.badgeHandler.List)
	api.Post("/badges", s.badgeHandler.Create)
	api.Patch("/badges/:badgeId", s.badgeHandler.Update)
	api.Delete("/badges/:badgeId", s.badgeHandler.Delete)

	api.Get("/users", s.userHandler.List)

	users := api.Group("/users/:userId")
	users.Get("/profile", s.userHandler.Profile)
	users.Get("/map", s.locationHandler.UserMap)
	users.Get("/badges", s.badgeHandler.UserBadges)
	users.Get("/badges/:badgeId", s.badgeHandler.UserBadgeDetail)

	users.Get("/activities", s.activityHandler.List)
	users.Post("/activities/start", s.activityHandler.Start)
	users.Get("/activities/:activityId", s.activityHandler.Detail)
	users.Post("/activities/:activityId/track", s.activityHandler.Track)
	users.Post("/activities/:activityId/end", s.activityHandler.End)
	users.Post("/activities/:activityId/collect/nfc", s.activityHandler.CollectNFC)

	s.app.Use(func(c *fiber.Ctx) error {
		return utils.SendError(c, errors.ErrRouteNotFound)
	})
}

// App exposes the underlying Fiber app, mainly for app.Test in tests.
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

// customErrorHandler renders errors that escape handlers in the API envelope.
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if stderrors.As(err, &fe) {
			switch {
			case fe.Code == fiber.StatusNotFound:
				return utils.SendError(c, errors.ErrRouteNotFound)
			case fe.Code < fiber.StatusInternalServerError:
				return utils.SendError(c, errors.New(errors.CodeInvalidRequest, fe.Message, fe.Code))
			}
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.String("trace_id", middleware.TraceID(c)),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}
