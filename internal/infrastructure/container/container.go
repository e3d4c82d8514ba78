// Package container provides dependency injection using Uber FX
// This implements the Dependency Inversion Principle from SOLID
package container

import (
	"context"
	"fmt"

	"github.com/tasteai/v2/internal/application/recipe"
	"github.com/tasteai/v2/internal/application/recommendation"
	"github.com/tasteai/v2/internal/application/user"
	"github.com/tasteai/v2/internal/infrastructure/artifacts"
	"github.com/tasteai/v2/internal/infrastructure/config"
	"github.com/tasteai/v2/internal/infrastructure/email"
	"github.com/tasteai/v2/internal/infrastructure/http/server"
	gormRepo "github.com/tasteai/v2/internal/infrastructure/persistence/gorm"
	"github.com/tasteai/v2/internal/infrastructure/persistence/memory"
	redisRepo "github.com/tasteai/v2/internal/infrastructure/persistence/redis"
	"github.com/tasteai/v2/internal/infrastructure/persistence/sqlite"
	"github.com/tasteai/v2/internal/infrastructure/security"
	"github.com/tasteai/v2/internal/ports/outbound"
	"github.com/tasteai/v2/pkg/healthcheck"
	"github.com/tasteai/v2/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	// Infrastructure modules
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	EmailModule,
	SecurityModule,
	ArtifactsModule,

	// Repository modules
	RepositoryModule,

	// Service modules
	ServiceModule,

	// HTTP modules
	HealthModule,
	HTTPModule,

	// Lifecycle hooks
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides database connections
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		dbPath := cfg.Database.Database

		logLevel := gormLogger.Silent
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		db, err := sqlite.SetupDatabase(dbPath, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		log.Info("Connected to SQLite database",
			zap.String("path", dbPath),
			zap.Bool("in_memory", dbPath == ""),
		)

		return db, nil
	},
)

// CacheModule provides caching. Redis when configured, in-memory otherwise.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if cfg.Redis.Host == "" {
			log.Info("Using in-memory cache")
			return memory.NewCacheRepository(), nil
		}
		return redisRepo.NewCacheRepository(cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.Database, log)
	},
)

// EmailModule provides outbound email delivery
var EmailModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.EmailSender {
		if cfg.Email.SMTPHost == "" {
			log.Info("Using log-only email sender")
			return email.NewLogSender(log)
		}
		return email.NewSMTPSender(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUsername,
			cfg.Email.SMTPPassword,
			cfg.Email.FromAddress,
			log,
		)
	},
)

// SecurityModule provides token services
var SecurityModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) *security.TokenService {
		secret := cfg.Auth.JWTSecret
		if secret == "" {
			secret = "development-secret-key"
		}
		return security.NewTokenService(secret, cfg.Auth.JWTExpiration, cfg.Auth.RefreshExpiration, log)
	},
)

// ArtifactsModule loads the fitted model artifacts once at startup
var ArtifactsModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) *artifacts.Loader {
		return artifacts.NewLoader(cfg.Artifacts.Directory, log)
	},
	func(loader *artifacts.Loader) (*artifacts.CalorieBundle, error) {
		return loader.LoadCalorie()
	},
	func(loader *artifacts.Loader) (*artifacts.PaletteBundle, error) {
		return loader.LoadPalette()
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewRecipeRepository,
	gormRepo.NewUserRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	user.NewUserService,
	recipe.NewRecipeService,
	recommendation.NewCalorieEngine,
	recommendation.NewPaletteEngine,
	recommendation.NewService,
)

// HealthModule provides the health checker with dependency probes
var HealthModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger, db *gorm.DB, cache outbound.CacheRepository) *healthcheck.Checker {
		checker := healthcheck.New(cfg.App.Version, log)

		checker.Register("database", func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})

		checker.Register("cache", func(ctx context.Context) error {
			_, err := cache.Exists(ctx, "healthcheck:probe")
			return err
		})

		return checker
	},
)

// HTTPModule provides HTTP server and handlers
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting TasteAI application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down TasteAI application")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
