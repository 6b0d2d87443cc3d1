package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/campfirehq/youthorg-api/config"
	"github.com/campfirehq/youthorg-api/internal/handler"
	authHandler "github.com/campfirehq/youthorg-api/internal/handler/auth"
	eventHandler "github.com/campfirehq/youthorg-api/internal/handler/event"
	galleryHandler "github.com/campfirehq/youthorg-api/internal/handler/gallery"
	instructorHandler "github.com/campfirehq/youthorg-api/internal/handler/instructor"
	kidHandler "github.com/campfirehq/youthorg-api/internal/handler/kid"
	reportHandler "github.com/campfirehq/youthorg-api/internal/handler/report"
	teamHandler "github.com/campfirehq/youthorg-api/internal/handler/team"
	userHandler "github.com/campfirehq/youthorg-api/internal/handler/user"
	vehicleHandler "github.com/campfirehq/youthorg-api/internal/handler/vehicle"
	"github.com/campfirehq/youthorg-api/internal/middleware"
	"github.com/campfirehq/youthorg-api/internal/repository/postgres"
	"github.com/campfirehq/youthorg-api/internal/router"
	authService "github.com/campfirehq/youthorg-api/internal/service/auth"
	conflictService "github.com/campfirehq/youthorg-api/internal/service/conflict"
	eventService "github.com/campfirehq/youthorg-api/internal/service/event"
	galleryService "github.com/campfirehq/youthorg-api/internal/service/gallery"
	historyService "github.com/campfirehq/youthorg-api/internal/service/history"
	instructorService "github.com/campfirehq/youthorg-api/internal/service/instructor"
	kidService "github.com/campfirehq/youthorg-api/internal/service/kid"
	reportService "github.com/campfirehq/youthorg-api/internal/service/report"
	teamService "github.com/campfirehq/youthorg-api/internal/service/team"
	userService "github.com/campfirehq/youthorg-api/internal/service/user"
	"github.com/campfirehq/youthorg-api/internal/service/vehicle"
	"github.com/campfirehq/youthorg-api/internal/service/vehicleswap"
	"github.com/campfirehq/youthorg-api/internal/storage"
	"github.com/campfirehq/youthorg-api/pkg/auth"
	"github.com/campfirehq/youthorg-api/pkg/logger"
	"github.com/campfirehq/youthorg-api/pkg/validator"
)

func main() {
	appLogger := logger.NewLogger(nil)
	log.Logger = appLogger.ZL

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := validator.RegisterCustom(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validations")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	mediaStore, err := storage.NewFSStore(cfg.Storage.MediaRoot)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open media storage")
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	kidRepo := postgres.NewKidRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	instructorRepo := postgres.NewInstructorRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	historyRepo := postgres.NewHistoryRepository(db)
	galleryRepo := postgres.NewGalleryRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryHours:        cfg.JWT.ExpiryHours,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})
	authSvc := authService.NewService(userRepo, jwtSvc)
	userSvc := userService.NewService(userRepo)
	kidSvc := kidService.NewService(kidRepo)
	instructorSvc := instructorService.NewService(instructorRepo)
	vehicleSvc := vehicle.NewService(vehicleRepo)
	eventSvc := eventService.NewService(eventRepo)
	historySvc := historyService.NewService(historyRepo)
	conflictSvc := conflictService.NewService(teamRepo, kidRepo, conflictService.Config{
		FailClosed: cfg.Conflict.FailClosed,
	})
	swapSvc := vehicleswap.NewService(kidRepo, historyRepo)
	teamSvc := teamService.NewService(teamRepo, kidRepo, instructorRepo, historyRepo, conflictSvc)
	gallerySvc := galleryService.NewService(galleryRepo, mediaStore)
	reportSvc := reportService.NewService(reportRepo, kidRepo, teamRepo, vehicleRepo, eventRepo)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	handlers := router.Handlers{
		Auth:       authHandler.NewHandler(authSvc),
		User:       userHandler.NewHandler(userSvc),
		Kid:        kidHandler.NewHandler(kidSvc),
		Team:       teamHandler.NewHandler(teamSvc, conflictSvc, swapSvc, kidSvc),
		Vehicle:    vehicleHandler.NewHandler(vehicleSvc, historySvc),
		Instructor: instructorHandler.NewHandler(instructorSvc),
		Event:      eventHandler.NewHandler(eventSvc),
		Gallery:    galleryHandler.NewHandler(gallerySvc),
		Report:     reportHandler.NewHandler(reportSvc),
		Ops:        handler.NewHandler(),
	}

	r := router.NewRouter(authMiddleware, handlers, router.RouterConfig{
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:        cfg.RateLimit.Burst,
		RequestTimeout:   cfg.Server.RequestTimeout,
		CORSConfig: middleware.CORSConfig{
			AllowOrigins: cfg.Security.AllowedOrigins,
			AllowMethods: cfg.Security.AllowedMethods,
			AllowHeaders: cfg.Security.AllowedHeaders,
			MaxAge:       3600,
		},
		MetricsPrefix: "youthorg_api",
	})
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
