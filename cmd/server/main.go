// Package main is the entry point for the makhzan API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"makhzan/internal/domain/catalogs/category"
	"makhzan/internal/domain/catalogs/item"
	"makhzan/internal/domain/catalogs/location"
	"makhzan/internal/domain/ledger"
	v1 "makhzan/internal/infrastructure/http/v1"
	"makhzan/internal/infrastructure/storage/postgres"
	"makhzan/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Info("starting makhzan server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	// --- Repositories ---
	categoryRepo := postgres.NewCategoryRepo(txm)
	subcategoryRepo := postgres.NewSubcategoryRepo(txm)
	locationRepo := postgres.NewLocationRepo(txm)
	itemRepo := postgres.NewItemRepo(txm)
	movementRepo := postgres.NewMovementRepo(txm)
	snapshotRepo := postgres.NewSnapshotRepo(txm)

	archive, err := postgres.NewArchiveStore(txm)
	if err != nil {
		log.Fatalw("failed to create archive store", "error", err)
	}

	// --- Services ---
	engine := ledger.NewEngine(txm, categoryRepo, subcategoryRepo, locationRepo, itemRepo, movementRepo, snapshotRepo)
	ledgerService := ledger.NewService(txm, movementRepo, snapshotRepo)
	categoryService := category.NewService(categoryRepo, subcategoryRepo)
	locationService := location.NewService(locationRepo, snapshotRepo)
	itemService := item.NewService(itemRepo)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:            pool,
		Logger:          log,
		Engine:          engine,
		Archive:         archive,
		LedgerService:   ledgerService,
		CategoryService: categoryService,
		LocationService: locationService,
		ItemService:     itemService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
