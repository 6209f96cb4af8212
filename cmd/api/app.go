package main

import (
	"database/sql"
	"log/slog"

	"github.com/gin-gonic/gin"

	"smartroute/internal/config"
	"smartroute/internal/database"
	"smartroute/internal/middleware"
	"smartroute/internal/optimizer"
	"smartroute/internal/providers/ors"
	"smartroute/internal/repository"
	"smartroute/internal/tier"

	_ "smartroute/docs" // Ensure docs are imported
)

// App encapsulates application dependencies
type App struct {
	router      *gin.Engine
	logger      *slog.Logger
	cfg         *config.Config
	db          *sql.DB
	users       *repository.UserStore
	tierManager *tier.Manager
	optimizer   *optimizer.Service
	orsClient   *ors.Client
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	users := repository.NewUserStore(db)

	orsClient, err := ors.NewClient(cfg.Providers.ORSKey, cfg.Providers.ORSUseBearer)
	if err != nil {
		db.Close()
		return nil, err
	}

	app := &App{
		router:      router,
		logger:      logger,
		cfg:         cfg,
		db:          db,
		users:       users,
		tierManager: tier.NewManager(users, logger),
		orsClient:   orsClient,
	}

	// The optimizer only comes up when all premium provider keys are set.
	// Without it every route request takes the basic ORS path.
	if cfg.OptimizationAvailable() {
		opt, err := optimizer.NewService(
			cfg.Providers.TomTomKey, cfg.Providers.TomTomBearer,
			cfg.Providers.OpenWeatherKey,
			cfg.Providers.GroqKey, cfg.Providers.GroqModel,
			logger)
		if err != nil {
			db.Close()
			return nil, err
		}
		app.optimizer = opt
	} else {
		logger.Warn("premium provider keys missing, route optimization disabled")
	}

	// Register routes
	app.registerRoutes()

	return app, nil
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	return app.router.Run(addr)
}

// Close releases the database handle.
func (app *App) Close() error {
	return app.db.Close()
}

func (app *App) authMiddleware() gin.HandlerFunc {
	return middleware.JWTAuth(app.cfg.Auth.JWTSecret)
}
