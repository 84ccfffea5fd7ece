package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	q := `INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`
	assert.Equal(t, `INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3)`, Postgres.Rebind(q))
	assert.Equal(t, q, SQLite.Rebind(q))
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, _, err := Open(context.Background(), Options{Driver: "mysql", DSN: "x"})
	require.Error(t, err)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	conn, dialect, err := Open(ctx, Options{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "t.db")})
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, SQLite, dialect)

	require.NoError(t, RunMigrations(ctx, conn, dialect))
	require.NoError(t, RunMigrations(ctx, conn, dialect))

	_, err = conn.ExecContext(ctx, `INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`, "a", "h", "admin")
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, `INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`, "a", "h", "admin")
	require.Error(t, err, "username must be unique")
}

func TestPostgresMigrationEmbedded(t *testing.T) {
	data, err := migrations.ReadFile("migrations/postgres/001_users.sql")
	require.NoError(t, err)
	assert.Contains(t, string(data), "CREATE TABLE IF NOT EXISTS users")
}
