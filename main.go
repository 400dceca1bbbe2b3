package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"go-restaurant-backoffice/config"
	"go-restaurant-backoffice/database"
	"go-restaurant-backoffice/logger"
	"go-restaurant-backoffice/routes"
	"go-restaurant-backoffice/ws"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		// A missing .env is fine; anything else is worth surfacing early.
		panic(err)
	}

	appLogger := logger.New(logger.Config{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
		Output: getEnv("LOG_OUTPUT", "stdout"),
	})

	cfg, err := config.Load(getEnv("CONFIG_FILE", "config/config.yaml"))
	if err != nil {
		appLogger.Error("loading configuration failed", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		appLogger.Error("connecting to database failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			appLogger.Error("closing database failed", "error", err)
		}
	}()
	appLogger.Info("database connection established",
		"host", cfg.Database.Host,
		"database", cfg.Database.Database)

	menuItemHub := ws.NewHub("menu-items", appLogger)
	orderHub := ws.NewHub("orders", appLogger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware(appLogger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Uploaded menu images are served straight from disk.
	router.Static(cfg.Upload.PublicPrefix, cfg.Upload.Dir)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Page not found"})
	})

	routes.MenuItemRoutes(router, db, menuItemHub, cfg.Upload)
	routes.OrderRoutes(router, db, orderHub)
	routes.DashboardRoutes(router, db)
	routes.WsRoutes(router, menuItemHub, orderHub)

	appLogger.Info("starting server", "port", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		appLogger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
