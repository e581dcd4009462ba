package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"broker/cmd"
	"broker/internal/adapters/out/postgres/deliveryrepo"
	"broker/internal/adapters/out/postgres/historyrepo"
	"broker/internal/adapters/out/postgres/offerrepo"
	"broker/internal/adapters/out/postgres/quoterepo"
	"broker/internal/core/domain/model/kernel"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs(logger)

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err = migrate(gormDB); err != nil {
		logger.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	root := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := root.CreateJobManager(time.Duration(configs.SweepIntervalSeconds) * time.Second)
	if err = jobManager.StartAll(); err != nil {
		logger.Error("job startup failed", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := buildEcho(&root)

	go func() {
		if serveErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); serveErr != nil &&
			!errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("server stopped", "error", serveErr)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

func buildEcho(root *cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	root.CreateHTTPServer().RegisterRoutes(e)

	gateway := root.CreateWSGateway()
	e.GET("/ws/:kind", gateway.Handle)
	e.GET("/ws/:kind/:id", gateway.Handle)

	return e
}

// openDatabase connects with gorm. TranslateError is required: the offer
// repository depends on gorm.ErrDuplicatedKey to detect the one pending
// offer per courier per quote constraint.
func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&quoterepo.QuoteDTO{},
		&offerrepo.OfferDTO{},
		&deliveryrepo.DeliveryDTO{},
		&historyrepo.EventDTO{},
	)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file found, relying on process environment")
	}

	return cmd.Config{
		HTTPPort:             envOr("HTTP_PORT", "8080"),
		DBHost:               envOr("DB_HOST", "localhost"),
		DBPort:               envOr("DB_PORT", "5432"),
		DBUser:               envOr("DB_USER", "postgres"),
		DBPassword:           envOr("DB_PASSWORD", "postgres"),
		DBName:               envOr("DB_NAME", "broker"),
		DBSslMode:            envOr("DB_SSLMODE", "disable"),
		QuoteTTLMinutes:      envIntOr("DELIVERIES_QUOTE_TTL_MINUTES", kernel.DefaultQuoteTTLMinutes),
		OfferTTLMinutes:      envIntOr("DELIVERIES_OFFER_TTL_MINUTES", kernel.DefaultOfferTTLMinutes),
		SweepIntervalSeconds: envIntOr("SWEEP_INTERVAL_SECONDS", 5),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
