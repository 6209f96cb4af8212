package main

//go:generate go run github.com/swaggo/swag/cmd/swag@latest init -g main.go -o ../../docs --parseDependency

import (
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"smartroute/internal/config"

	_ "smartroute/docs" // Import generated docs
)

// @title SmartRoute API
// @version 1.0
// @description Serviço de rotas com otimização por tráfego, clima e IA.
// @BasePath /
func main() {
	// Load .env before viper reads the environment. Missing file is fine.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	// Create app
	app, err := NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}
	defer app.Close()

	// Start server
	logger.Info("starting server", "addr", cfg.GetServerAddr(),
		"optimization_available", cfg.OptimizationAvailable())
	if err := app.Run(cfg.GetServerAddr()); err != nil {
		logger.Error("server failed", "error", err)
		log.Fatal(err)
	}
}
