package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL flavour of a connection.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Rebind rewrites '?' placeholders to the dialect's positional form.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type Options struct {
	Driver         string
	DSN            string
	MaxOpenConns   int
	ConnectTimeout time.Duration
}

// Open opens the pool and pings it, retrying with exponential backoff until
// ConnectTimeout elapses.
func Open(ctx context.Context, opts Options) (*sql.DB, Dialect, error) {
	dialect := Dialect(opts.Driver)
	if dialect != Postgres && dialect != SQLite {
		return nil, "", fmt.Errorf("unsupported driver %q", opts.Driver)
	}
	db, err := sql.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, "", err
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
		db.SetMaxIdleConns(opts.MaxOpenConns / 2)
	}
	db.SetConnMaxLifetime(time.Hour)
	if dialect == SQLite {
		// a single writer avoids SQLITE_BUSY during seeding
		db.SetMaxOpenConns(1)
	}

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = timeout
	if err := backoff.Retry(func() error {
		return db.PingContext(pingCtx)
	}, backoff.WithContext(bo, pingCtx)); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("ping: %w", err)
	}
	return db, dialect, nil
}

//go:embed migrations/*/*.sql
var migrations embed.FS

// RunMigrations applies the embedded schema for the dialect. Every script is
// idempotent, so running it on an already provisioned database is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB, dialect Dialect) error {
	dir := "migrations/" + string(dialect)
	files, err := migrations.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := migrations.ReadFile(dir + "/" + f.Name())
		if err != nil {
			return fmt.Errorf("read %s: %w", f.Name(), err)
		}
		if _, err := db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply %s: %w", f.Name(), err)
		}
	}
	return nil
}
