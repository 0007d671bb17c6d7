// cmd/server/main.go
package main

import (
	"os"

	"github.com/asklytics/asklytics-backend/api"
	"github.com/asklytics/asklytics-backend/config"
	"github.com/asklytics/asklytics-backend/internal/llm"
	"github.com/asklytics/asklytics-backend/internal/logger"
	"github.com/asklytics/asklytics-backend/internal/storage"
)

var (
	customLog = logger.NewLogger()
)

func main() {
	customLog.Println("Starting Ask-Lytics Backend server...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		customLog.Fatalf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	// 2. Initialize Auth Database Connection
	authDB, err := storage.ConnectAuthDB(cfg)
	if err != nil {
		customLog.Fatalf("Failed to initialize auth database: %v", err)
		os.Exit(1)
	}
	defer func() {
		customLog.Println("Closing auth database connection...")
		if err := authDB.Close(); err != nil {
			customLog.Printf("Error closing auth database: %v", err)
		}
	}()

	// 3. Build the configured SQL generation backend
	backend, err := llm.NewBackend(cfg)
	if err != nil {
		customLog.Fatalf("Failed to initialize SQL backend: %v", err)
		os.Exit(1)
	}
	customLog.Printf("SQL backend: %s (%s)", backend.Name(), backend.Model())

	// 4. Setup Router (passing dependencies)
	router := api.SetupRouter(authDB, backend, cfg)

	// 5. Start Server
	customLog.Printf("Server listening on port %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		customLog.Fatalf("Failed to start server: %v", err)
	}
}
