// Command shieldops-seed creates the users table and inserts the default
// admin, analyst and viewer accounts. Existing usernames are left untouched.
package main

import (
	"context"
	"log"

	"shieldops/internal/config"
	"shieldops/internal/db"
	"shieldops/internal/logging"
	"shieldops/internal/provision"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	conn, dialect, err := db.Open(ctx, db.Options{
		Driver:         cfg.DB.Driver,
		DSN:            cfg.DB.DSN(),
		MaxOpenConns:   cfg.DB.MaxOpenConns,
		ConnectTimeout: cfg.DB.ConnectTimeout,
	})
	if err != nil {
		logger.Fatalw("open db", "err", err)
	}
	defer conn.Close()

	created, err := provision.Run(ctx, conn, dialect, provision.Options{
		SeedFile:        cfg.SeedFile,
		DefaultPassword: cfg.SeedPassword,
		BcryptCost:      cfg.BcryptCost,
	}, logger)
	if err != nil {
		logger.Fatalw("seed", "err", err)
	}
	logger.Infow("seed complete", "created", created)
}
