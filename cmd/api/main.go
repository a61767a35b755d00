package main

import (
	"fmt"
	"mensa/internal/config"
	"mensa/internal/database"
	"mensa/internal/handlers"
	"mensa/internal/logger"
	"mensa/internal/middleware"
	"mensa/internal/services"
	"mensa/internal/validator"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// @title           Mensa API
// @version         1.0
// @description     Mensa is a single-user meal planning service: pick items from a fixed cafeteria catalog or add your own, one plan per day, with a daily spend target.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Open the database and bring the schema to the current version
	dbManager, err := database.NewManager(appConfig.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	catalogService := services.NewCatalogService(db)
	planService := services.NewPlanService(db)
	lineResolver := services.NewLineResolver(db)

	// Seed the catalog on first run; a populated catalog is left untouched
	if err := catalogService.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	planHandler := handlers.NewPlanHandler(planService, lineResolver)

	// Custom binding validators
	validator.Register()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Read routes
	v1.GET("/catalog", catalogHandler.GetCatalog)
	v1.GET("/plans", planHandler.GetPlanDates)
	v1.GET("/plans/:date", planHandler.GetPlan)

	// Mutating routes, behind the API key when one is configured
	mutating := v1.Group("/")
	if appConfig.APIKey != "" {
		mutating.Use(middleware.APIKeyAuth(appConfig.APIKey))
	} else {
		log.Warn("API_KEY is not set; mutating endpoints are unauthenticated")
	}
	mutating.PUT("/plans/:date", planHandler.ReplacePlan)
	mutating.DELETE("/plans/:id", planHandler.DeletePlan)

	log.Infof("Starting Mensa backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
