package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/abitur-registration/pkg/config"
	"github.com/noah-isme/abitur-registration/pkg/database"
	"github.com/noah-isme/abitur-registration/pkg/logger"
	"github.com/noah-isme/abitur-registration/pkg/password"
)

// migrate initializes the schema and seeds the bootstrap admin without starting the HTTP server.
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

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var admin database.BootstrapAdmin
	if cfg.Bootstrap.Username != "" && cfg.Bootstrap.Password != "" {
		hasher := password.New(password.Scheme(cfg.Password.Scheme), cfg.Password.BcryptCost)
		hash, err := hasher.Hash(cfg.Bootstrap.Password)
		if err != nil {
			logr.Fatal("failed to hash bootstrap password", zap.Error(err))
		}
		admin = database.BootstrapAdmin{Username: cfg.Bootstrap.Username, PasswordHash: hash}
	}

	res, err := database.Migrate(ctx, db, admin)
	if err != nil {
		logr.Fatal("migration failed", zap.Error(err))
	}
	logr.Info("migration completed", zap.Int("statements", res.Statements), zap.Bool("admin_seeded", res.AdminSeeded))
}
