package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/auth"
	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/handler"
	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/middleware"
	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/store"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/config"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/database"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/jwtutil"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/logger"
	"github.com/Jennifer-MM1/restaurante-web-sub000/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting directory service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Seed the out-of-band superadmin account if configured
	if err := database.SeedSuperAdmin(cfg); err != nil {
		log.Fatal("Failed to seed superadmin account", zap.Error(err))
	}

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Stores and ownership guard
	admins := store.NewAdminStore(database.GetDB())
	establishments := store.NewEstablishmentStore(database.GetDB())
	guard := auth.NewGuard(establishments)

	// Handlers
	authHandler := handler.NewAuthHandler(admins)
	estHandler := handler.NewEstablishmentHandler(establishments, guard)
	catalogHandler := handler.NewCatalogHandler(establishments)
	adminHandler := handler.NewAdminHandler(admins, establishments)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	authGroup := e.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Public catalog - read only, active records only
	catalog := e.Group("/catalogo")
	catalog.GET("/establecimientos", catalogHandler.List)
	catalog.GET("/establecimientos/:id", catalogHandler.Get)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware(admins))

	// Administrator profile
	api.GET("/profile", authHandler.GetProfile)
	api.PATCH("/profile", authHandler.UpdateProfile)
	api.POST("/change-password", authHandler.ChangePassword)

	// Establishment management - ownership guarded per request
	ests := api.Group("/establecimientos")
	ests.POST("", estHandler.Create)
	ests.GET("/mine", estHandler.Mine)
	ests.GET("/:id", estHandler.Get)
	ests.PATCH("/:id/info", estHandler.UpdateInfo)
	ests.PATCH("/:id/direccion", estHandler.UpdateAddress)
	ests.PATCH("/:id/horario", estHandler.UpdateSchedule)
	ests.PATCH("/:id/menu", estHandler.UpdateMenu)
	ests.PATCH("/:id/redes", estHandler.UpdateSocialLinks)
	ests.POST("/:id/imagenes", estHandler.AddImage)
	ests.DELETE("/:id/imagenes/:filename", estHandler.RemoveImage)
	ests.PATCH("/:id/toggle-active", estHandler.ToggleActive)

	// Superadmin surface
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RequireSuperAdmin)
	adminGroup.GET("/administradores", adminHandler.ListAdmins)
	adminGroup.PATCH("/administradores/:id/toggle-active", adminHandler.ToggleAdminActive)
	adminGroup.GET("/establecimientos", adminHandler.ListAllEstablishments)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
