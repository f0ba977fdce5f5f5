package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/crackgrid/internal/app/controllers"
	appMigrations "github.com/yigit/crackgrid/internal/app/migrations"
	appRepos "github.com/yigit/crackgrid/internal/app/repositories"
	appRoutes "github.com/yigit/crackgrid/internal/app/routes"
	appServices "github.com/yigit/crackgrid/internal/app/services"
	"github.com/yigit/crackgrid/internal/config"
	"github.com/yigit/crackgrid/internal/db"
	appMiddleware "github.com/yigit/crackgrid/internal/middleware"
	"github.com/yigit/crackgrid/internal/pkg/helpers"
	"github.com/yigit/crackgrid/internal/pkg/logger"
	"github.com/yigit/crackgrid/internal/seed"
)

// DefaultConfigPath is where the binaries look for their configuration file
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

const defaultAnalyticsTimeout = 5 * time.Second

// Dependencies holds all the application dependencies
type Dependencies struct {
	CatalogService     appServices.CatalogService // Interface type
	ExportService      appServices.ExportService  // Interface type
	CatalogController  *appControllers.CatalogController
	ExportController   *appControllers.ExportController
	DocumentController *appControllers.DocumentController
	Repos              *appRepos.Repositories
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds sample data.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(ctx, database, lgr); err != nil {
			// Sample data is optional; the catalog still serves what exists
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)
	stores := appServices.StoresFromRepositories(deps.Repos)

	deps.CatalogService = appServices.NewCatalogService(stores, lgr)
	deps.ExportService = appServices.NewExportService(stores, lgr)

	analyticsTimeout := helpers.ParseDuration(cfg.Client.AnalyticsTimeout, defaultAnalyticsTimeout)

	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService)
	deps.ExportController = appControllers.NewExportController(deps.ExportService)
	deps.DocumentController = appControllers.NewDocumentController(deps.CatalogService, analyticsTimeout)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger())

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.CatalogController,
		deps.ExportController,
		deps.DocumentController,
	)

	return router
}
