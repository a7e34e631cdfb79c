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

	"github.com/nirban/hms-api/config"
	adminHandler "github.com/nirban/hms-api/internal/handler/admin"
	ambulanceHandler "github.com/nirban/hms-api/internal/handler/ambulance"
	authHandler "github.com/nirban/hms-api/internal/handler/auth"
	bloodHandler "github.com/nirban/hms-api/internal/handler/blood"
	donorHandler "github.com/nirban/hms-api/internal/handler/donor"
	driverHandler "github.com/nirban/hms-api/internal/handler/driver"
	healthHandler "github.com/nirban/hms-api/internal/handler/health"
	receptionHandler "github.com/nirban/hms-api/internal/handler/reception"
	staffHandler "github.com/nirban/hms-api/internal/handler/staff"
	"github.com/nirban/hms-api/internal/email"
	"github.com/nirban/hms-api/internal/middleware"
	"github.com/nirban/hms-api/internal/repository/postgres"
	"github.com/nirban/hms-api/internal/router"
	adminService "github.com/nirban/hms-api/internal/service/admin"
	ambulanceService "github.com/nirban/hms-api/internal/service/ambulance"
	authService "github.com/nirban/hms-api/internal/service/auth"
	bloodService "github.com/nirban/hms-api/internal/service/blood"
	receptionService "github.com/nirban/hms-api/internal/service/reception"
	scheduleService "github.com/nirban/hms-api/internal/service/schedule"
	"github.com/nirban/hms-api/pkg/auth"
	"github.com/nirban/hms-api/pkg/logger"
	"github.com/nirban/hms-api/pkg/messaging"
	"github.com/nirban/hms-api/pkg/messaging/redis"
	"github.com/nirban/hms-api/pkg/metrics"
)

func main() {
	lgr := logger.NewLogger(nil)
	log.Logger = *lgr.Zerolog()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	bloodRepo := postgres.NewBloodRequestRepository(db)
	donorRepo := postgres.NewDonorRepository(db)
	ambulanceRepo := postgres.NewAmbulanceCallRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	bedRepo := postgres.NewBedRepository(db)
	reservationRepo := postgres.NewReservationRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)

	// Event broker; the API works without Redis, events are just dropped.
	var broker messaging.Broker = messaging.NopBroker{}
	if cfg.Redis.URL != "" {
		redisBroker, err := redis.NewRedisBroker(cfg.Redis.ToBrokerConfig(), lgr.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		broker = redisBroker
		defer broker.Close()
	}

	var emailSvc email.Service = email.NopService{}
	if cfg.Email.Enabled {
		emailSvc = email.NewService(email.Config{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
		})
	}

	m := metrics.NewMetrics("hms")

	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
		RefreshExpiry: time.Duration(cfg.JWT.RefreshExpiryHours) * time.Hour,
	})

	// Services
	authSvc := authService.NewService(userRepo, jwtSvc)
	bloodSvc := bloodService.NewService(bloodRepo, donorRepo, broker, m)
	ambulanceSvc := ambulanceService.NewService(ambulanceRepo, driverRepo, broker, m)
	receptionSvc := receptionService.NewService(bedRepo, reservationRepo, userRepo, broker, m)
	scheduleSvc := scheduleService.NewService(scheduleRepo, userRepo)
	adminSvc := adminService.NewService(userRepo, emailSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	handlers := router.Handlers{
		Auth:      authHandler.NewHandler(authSvc),
		Blood:     bloodHandler.NewHandler(bloodSvc),
		Donor:     donorHandler.NewHandler(bloodSvc),
		Ambulance: ambulanceHandler.NewHandler(ambulanceSvc),
		Driver:    driverHandler.NewHandler(ambulanceSvc),
		Reception: receptionHandler.NewHandler(receptionSvc),
		Admin:     adminHandler.NewHandler(adminSvc, scheduleSvc),
		Staff:     staffHandler.NewHandler(scheduleSvc),
		Health:    healthHandler.NewHandler(db, m),
	}

	r := router.NewRouter(authMiddleware, handlers, router.Config{
		RateLimitEnabled:  cfg.RateLimit.Enabled,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		RateBurst:         cfg.RateLimit.Burst,
		CORSConfig:        middleware.DefaultCORSConfig(),
		MetricsEnabled:    cfg.Monitoring.PrometheusEnabled,
		MetricsPath:       cfg.Monitoring.MetricsPath,
		MetricsPrefix:     "hms_http",
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
