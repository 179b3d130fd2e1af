package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/scholarbase/scholarbase/internal/pkg/logger"
	"github.com/scholarbase/scholarbase/internal/server"
)

// @title ScholarBase API
// @version 1.0
// @description Scholarship management API for scholars, tasks, goals, requests, announcements and invitations

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// A missing .env is fine; the environment may carry everything
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, relying on process environment")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}
}
