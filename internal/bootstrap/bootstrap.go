package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/qfddxs/Hospital/internal/app/controllers"
	appMigrations "github.com/qfddxs/Hospital/internal/app/migrations"
	appRepos "github.com/qfddxs/Hospital/internal/app/repositories"
	appRoutes "github.com/qfddxs/Hospital/internal/app/routes"
	appServices "github.com/qfddxs/Hospital/internal/app/services"
	"github.com/qfddxs/Hospital/internal/config"
	"github.com/qfddxs/Hospital/internal/db"
	appMiddleware "github.com/qfddxs/Hospital/internal/middleware"
	pkgAuth "github.com/qfddxs/Hospital/internal/pkg/auth"
	"github.com/qfddxs/Hospital/internal/pkg/helpers"
	"github.com/qfddxs/Hospital/internal/pkg/logger"
	"github.com/qfddxs/Hospital/internal/pkg/validation"
	"github.com/qfddxs/Hospital/internal/seed"
)

// DefaultConfigPath is used when no config file is given
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	AuthService           *appServices.AuthService
	TrainingCenterService appServices.TrainingCenterService
	StudentService        appServices.StudentService
	QuotaRequestService   appServices.QuotaRequestService
	ScheduleBlockService  appServices.ScheduleBlockService
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Controllers           appRoutes.Controllers
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.ConfigFromStrings(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to Postgres and, when enabled, applies pending
// migrations and seeds the bootstrap account.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if cfg.Database.AutoMigrate {
		if err := RunMigrations(ctx, cfg, database, lgr); err != nil {
			database.Close()
			return nil, err
		}
		if err := SeedDefaultData(ctx, cfg, database, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// RunMigrations applies the SQL files of the configured migrations directory
func RunMigrations(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); err != nil {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, database)
	if _, err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	return nil
}

// SeedDefaultData creates the configured bootstrap account
func SeedDefaultData(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(database.Pool)
	authService := appServices.NewAuthService(repos.UserRepository, repos.TokenRepository, newJWTService(cfg), database)
	return seed.CreateDefaultData(ctx, authService, seed.Options{
		AdminUsername: cfg.Auth.AdminUsername,
		AdminPassword: cfg.Auth.AdminPassword,
	}, lgr)
}

func newJWTService(cfg *config.Config) *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 5*time.Minute),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 24*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) (*Dependencies, error) {
	if err := validation.RegisterGinValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	deps := &Dependencies{}
	deps.Repos = appRepos.NewRepositories(database.Pool)
	deps.JWTService = newJWTService(cfg)

	// Initialize services
	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.Repos.TokenRepository, deps.JWTService, database)
	deps.TrainingCenterService = appServices.NewTrainingCenterService(deps.Repos.TrainingCenterRepository, database)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.Repos.TrainingCenterRepository, database)
	deps.QuotaRequestService = appServices.NewQuotaRequestService(deps.Repos.QuotaRequestRepository, deps.Repos.TrainingCenterRepository, database)
	deps.ScheduleBlockService = appServices.NewScheduleBlockService(
		deps.Repos.ScheduleBlockRepository,
		deps.Repos.StudentRepository,
		deps.Repos.TrainingCenterRepository,
		database,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:           appControllers.NewAuthController(deps.AuthService),
		Health:         appControllers.NewHealthController(database),
		TrainingCenter: appControllers.NewTrainingCenterController(deps.TrainingCenterService),
		Student:        appControllers.NewStudentController(deps.StudentService),
		QuotaRequest:   appControllers.NewQuotaRequestController(deps.QuotaRequestService),
		ScheduleBlock:  appControllers.NewScheduleBlockController(deps.ScheduleBlockService),
	}

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

	router := gin.New()
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(),
		appMiddleware.Recovery(),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
