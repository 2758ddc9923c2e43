package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"savrepa-api/config"
	"savrepa-api/database"
	"savrepa-api/middleware"
	"savrepa-api/routes"
	"savrepa-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	// Seed the bootstrap admin account (no-op on a populated database)
	if err := database.SeedData(db); err != nil {
		logrus.WithError(err).Warn("failed to seed database")
	}

	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())

	notifier := services.NewNotifier(cfg)
	routes.SetupRoutes(router, db, cfg, notifier)

	logrus.WithField("port", cfg.Port).Info("starting Sav Repa API server")

	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("failed to start server")
	}
}
