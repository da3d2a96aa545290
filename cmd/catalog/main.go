package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/sd-store/catalog-service/internal/catalog"
	catalogHTTP "github.com/sd-store/catalog-service/internal/catalog/delivery/http"
	catalogdomain "github.com/sd-store/catalog-service/internal/catalog/domain"
	"github.com/sd-store/catalog-service/internal/catalog/usecase/query"
	"github.com/sd-store/catalog-service/internal/seed"
	userHTTP "github.com/sd-store/catalog-service/internal/user/delivery/http"
	userdomain "github.com/sd-store/catalog-service/internal/user/domain"
	userrepo "github.com/sd-store/catalog-service/internal/user/repository"
	"github.com/sd-store/catalog-service/kafka"
	"github.com/sd-store/catalog-service/pkg/auth"
	"github.com/sd-store/catalog-service/pkg/config"
	"github.com/sd-store/catalog-service/pkg/database"
	"github.com/sd-store/catalog-service/pkg/logger"
	"github.com/sd-store/catalog-service/pkg/tracing"
)

const serviceName = "catalog-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(serviceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)
	auth.Configure(cfg.JWT.Secret, cfg.JWT.TokenTTL)

	logger.Logger.Info().
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting catalog service")

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(serviceName, cfg.Tracing.JaegerEndpoint)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Warn().Err(err).Msg("Tracer shutdown failed")
			}
		}()
	}

	db, err := database.NewGormConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(&userdomain.User{}, &catalogdomain.Product{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Msg("Database initialized")

	var events *kafka.Publisher
	if cfg.Kafka.Enabled {
		events, err = kafka.NewPublisher(cfg.Kafka.Brokers)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize Kafka publisher")
		}
		defer events.Close()
	}

	userRepository := userrepo.NewGormUserRepository(db)

	thresholds := query.HealthThresholds{
		LowStock: cfg.Health.LowStockThreshold,
		Degraded: cfg.Health.DegradedThreshold,
		Down:     cfg.Health.DownThreshold,
	}
	productHandler, err := catalog.InitializeProductHandler(db, events, thresholds)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize product handler")
	}

	if cfg.Seed {
		if err := seed.Run(userRepository, catalog.ProvideProductRepository(db)); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to seed data")
		}
	}

	router := mux.NewRouter()
	userHTTP.NewUserHandler(userRepository).RegisterRoutes(router)
	productHandler.RegisterRoutes(router)
	productHandler.RegisterHealthCheck(router, sqlDB)
	router.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(catalogHTTP.TracingMiddleware(router))

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := http.ListenAndServe(":"+cfg.HTTPPort, handler); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}
