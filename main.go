package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"swiftaid/config"
	"swiftaid/database"
	"swiftaid/interfaces"
	"swiftaid/repositories"
	"swiftaid/repositories/memory"
	"swiftaid/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	// Initialize configuration
	cfg := config.Load()

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize logger
	setupLogger(cfg)

	// Initialize storage
	stores, health, shutdown, err := openStores(cfg)
	if err != nil {
		logrus.Fatal("Failed to initialize storage: ", err)
	}
	defer shutdown()

	// Initialize Redis
	redis := config.InitRedis(cfg)
	if redis != nil {
		defer redis.Close()
	}

	// Setup routes
	router, err := routes.SetupRoutes(routes.Dependencies{
		Config: cfg,
		Stores: stores,
		Health: health,
		Redis:  redis,
	})
	if err != nil {
		logrus.Fatal("Failed to set up routes: ", err)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Start server in goroutine
	go func() {
		logrus.WithFields(logrus.Fields{
			"port":    cfg.Port,
			"store":   cfg.StoreBackend,
			"env":     cfg.Environment,
			"limiter": redis != nil,
		}).Info("SwiftAid admin API starting")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("Failed to start server: ", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Error("Server forced to shutdown: ", err)
	}

	logrus.Info("Server shutdown complete")
}

// openStores selects the storage backend. The returned ping backs /health.
func openStores(cfg *config.Config) (interfaces.Stores, func(context.Context) error, func(), error) {
	if cfg.StoreBackend == config.StoreBackendMemory {
		logrus.Warn("Using in-memory store, data is lost on restart")
		store := memory.New()
		return store.Stores(), store.Ping, func() {}, nil
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return interfaces.Stores{}, nil, nil, err
	}
	shutdown := func() {
		if err := database.Disconnect(); err != nil {
			logrus.Error("Failed to disconnect from MongoDB: ", err)
		}
	}

	if cfg.RunMigrations {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		if err := database.RunMigrations(ctx, db); err != nil {
			shutdown()
			return interfaces.Stores{}, nil, nil, err
		}
	}

	return repositories.NewStores(db), database.HealthCheck, shutdown, nil
}

func setupLogger(cfg *config.Config) {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	if cfg.Environment == "development" {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}
