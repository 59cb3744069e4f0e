// Package bootstrap wires configuration, database, repositories,
// services, controllers and routes into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/emre/schoolrecords/internal/app/controllers"
	appMigrations "github.com/emre/schoolrecords/internal/app/migrations"
	appRepos "github.com/emre/schoolrecords/internal/app/repositories"
	appRoutes "github.com/emre/schoolrecords/internal/app/routes"
	appServices "github.com/emre/schoolrecords/internal/app/services"
	"github.com/emre/schoolrecords/internal/config"
	"github.com/emre/schoolrecords/internal/db"
	appMiddleware "github.com/emre/schoolrecords/internal/middleware"
	pkgAuth "github.com/emre/schoolrecords/internal/pkg/auth"
	"github.com/emre/schoolrecords/internal/pkg/filestorage"
	"github.com/emre/schoolrecords/internal/pkg/helpers"
	"github.com/emre/schoolrecords/internal/pkg/logger"
	"github.com/emre/schoolrecords/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *appServices.AuthService
	StudentService    *appServices.StudentService
	ProfileService    *appServices.ProfileUpdateService
	StudentController *appControllers.StudentController
	AdminController   *appControllers.AdminController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	PasswordHasher    *pkgAuth.PasswordHasher
	FileStorage       *filestorage.LocalStorage
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
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

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations
// and provisions the configured admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(dbPool)
	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.PasswordHasher = pkgAuth.NewPasswordHasher(pkgAuth.BcryptCost)

	// Runs after SetupDatabase's migrations; shares the one bounded
	// hashing pool with the request path.
	if err := seed.CreateDefaultAdmin(context.Background(), cfg, deps.Repos.Admins, deps.PasswordHasher); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default admin, proceeding anyway...")
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 24*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.Accounts,
		deps.Repos.Students,
		deps.Repos.Admins,
		deps.PasswordHasher,
		deps.JWTService,
		lgr,
	)
	deps.StudentService = appServices.NewStudentService(deps.Repos.Accounts, deps.Repos.Students, deps.PasswordHasher, deps.FileStorage, lgr)
	deps.ProfileService = appServices.NewProfileUpdateService(deps.Repos.Accounts, deps.Repos.Students, deps.PasswordHasher, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.StudentController = appControllers.NewStudentController(deps.AuthService, deps.StudentService, deps.ProfileService, deps.FileStorage)
	deps.AdminController = appControllers.NewAdminController(deps.AuthService, deps.StudentService, deps.ProfileService, deps.FileStorage)

	return deps, nil
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

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	appRoutes.SetupRoutes(router,
		deps.StudentController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	// Health endpoint
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running...")
	})

	return router
}
