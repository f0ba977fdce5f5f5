package main

import (
	"context"
	"os"

	"github.com/yigit/crackgrid/internal/bootstrap"
	"github.com/yigit/crackgrid/internal/config"
	"github.com/yigit/crackgrid/internal/pkg/logger" // Still needed for initial error logging
	"github.com/yigit/crackgrid/internal/server"
)

// @title CrackGrid API
// @version 1.0
// @description Placement-drive interview documents, placed-student rosters and photo galleries, filtered by year and company.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	configPath := config.GetEnv("CONFIG_PATH", bootstrap.DefaultConfigPath)

	srv, err := server.NewServer(context.Background(), configPath)
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
