package provision

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"shieldops/internal/auth"
	"shieldops/internal/db"
)

type Options struct {
	// SeedFile, when set, names a YAML file with a "users" list; otherwise
	// one account per role is created with DefaultPassword.
	SeedFile        string
	DefaultPassword string
	BcryptCost      int
}

// Run creates the users table if needed and inserts any missing seed
// accounts. It is safe to run repeatedly and concurrently.
func Run(ctx context.Context, conn *sql.DB, dialect db.Dialect, opts Options, logger *zap.SugaredLogger) (int, error) {
	if err := db.RunMigrations(ctx, conn, dialect); err != nil {
		return 0, fmt.Errorf("run migrations: %w", err)
	}

	accounts := auth.DefaultSeedAccounts(opts.DefaultPassword)
	if opts.SeedFile != "" {
		var err error
		accounts, err = auth.LoadSeedFile(opts.SeedFile)
		if err != nil {
			return 0, fmt.Errorf("load seed file: %w", err)
		}
	}

	store := auth.NewSQLStore(conn, dialect)
	created, err := store.Seed(ctx, accounts, opts.BcryptCost)
	if err != nil {
		return created, fmt.Errorf("seed users: %w", err)
	}
	logger.Infow("users seeded", "created", created, "accounts", len(accounts))
	return created, nil
}
