package main

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/abitur-registration/internal/handler"
	"github.com/noah-isme/abitur-registration/internal/repository"
	"github.com/noah-isme/abitur-registration/internal/server"
	"github.com/noah-isme/abitur-registration/internal/service"
	"github.com/noah-isme/abitur-registration/pkg/cache"
	"github.com/noah-isme/abitur-registration/pkg/config"
	"github.com/noah-isme/abitur-registration/pkg/database"
	"github.com/noah-isme/abitur-registration/pkg/logger"
	"github.com/noah-isme/abitur-registration/pkg/password"
)

// @title Abitur Registration API
// @version 1.0.0
// @description Cohort registration with an admin console for cohorts, accounts and exports.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Session.GeneratedSecret {
		logr.Warn("SESSION_SECRET not set; using a random secret, sessions will not survive a restart")
	}

	ctx := context.Background()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}

	hasher := password.New(password.Scheme(cfg.Password.Scheme), cfg.Password.BcryptCost)

	if cfg.AutoMigrate {
		if err := migrate(ctx, db, hasher, cfg.Bootstrap, logr); err != nil {
			logr.Fatal("database initialization failed", zap.Error(err))
		}
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, continuing without cache", zap.Error(err))
		redisClient = nil
	}

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	cohortRepo := repository.NewCohortRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cacheRepo.Enabled())
	authSvc := service.NewAuthService(adminRepo, sessionRepo, hasher, validate, logr, metricsSvc, service.AuthConfig{
		Secret:        cfg.Session.Secret,
		TTL:           cfg.Session.TTL,
		Issuer:        cfg.Session.Issuer,
		UpgradeLegacy: cfg.Password.UpgradeLegacy,
	})
	cohortSvc := service.NewCohortService(cohortRepo, cacheSvc, logr)
	registrationSvc := service.NewRegistrationService(studentRepo, cacheSvc, metricsSvc, validate, logr)
	dashboardSvc := service.NewDashboardService(studentRepo, cacheSvc, logr)
	adminSvc := service.NewAdminService(adminRepo, hasher, validate, logr)
	exportSvc := service.NewExportService(studentRepo, cohortRepo, metricsSvc, logr, nil, nil)

	handlers := server.Handlers{
		Public: handler.NewPublicHandler(cohortSvc, registrationSvc),
		Auth: handler.NewAuthHandler(authSvc, handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: cfg.Session.CookieSecure,
		}),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Cohorts:   handler.NewCohortHandler(cohortSvc),
		Admins:    handler.NewAdminUserHandler(adminSvc),
		Export:    handler.NewExportHandler(exportSvc),
		Metrics: handler.NewMetricsHandler(metricsSvc, map[string]handler.ReadinessCheck{
			"database": db.PingContext,
			"cache":    cacheRepo.Ping,
		}),
	}

	router := server.NewRouter(server.RouterConfig{
		Env:            cfg.Env,
		CookieName:     cfg.Session.CookieName,
		MetricsEnabled: cfg.Metrics.Enabled,
		Logger:         logr,
		Metrics:        metricsSvc,
		Sessions:       authSvc,
	}, handlers)

	srv := server.New(cfg.Port, router, logr, cacheRepo.Close, db.Close)
	if err := srv.Run(); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func migrate(ctx context.Context, db *sqlx.DB, hasher *password.Hasher, bootstrap config.BootstrapConfig, logr *zap.Logger) error {
	var admin database.BootstrapAdmin
	if bootstrap.Username != "" && bootstrap.Password != "" {
		hash, err := hasher.Hash(bootstrap.Password)
		if err != nil {
			return err
		}
		admin = database.BootstrapAdmin{Username: bootstrap.Username, PasswordHash: hash}
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := database.Migrate(ctx, db, admin)
	if err != nil {
		return err
	}
	logr.Info("database initialized", zap.Int("statements", res.Statements), zap.Bool("admin_seeded", res.AdminSeeded))
	if res.AdminSeeded {
		logr.Warn("bootstrap admin created with configured default password; change it after first login",
			zap.String("username", bootstrap.Username))
	}
	return nil
}
