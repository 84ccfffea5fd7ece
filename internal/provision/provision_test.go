package provision

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shieldops/internal/auth"
	"shieldops/internal/db"
	"shieldops/internal/logging"
)

func TestRunTwice(t *testing.T) {
	ctx := context.Background()
	conn, dialect, err := db.Open(ctx, db.Options{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "p.db")})
	require.NoError(t, err)
	defer conn.Close()

	opts := Options{DefaultPassword: "shieldops", BcryptCost: bcrypt.MinCost}
	created, err := Run(ctx, conn, dialect, opts, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	created, err = Run(ctx, conn, dialect, opts, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	users, err := auth.NewSQLStore(conn, dialect).List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestRunWithSeedFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	conn, dialect, err := db.Open(ctx, db.Options{Driver: "sqlite", DSN: filepath.Join(dir, "p.db")})
	require.NoError(t, err)
	defer conn.Close()

	seed := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(seed, []byte(`users:
  - username: soc-lead
    password: s3cret
    role: admin
  - username: intern
    password: s3cret
    role: viewer
`), 0o600))

	created, err := Run(ctx, conn, dialect, Options{SeedFile: seed, BcryptCost: bcrypt.MinCost}, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	u, err := auth.NewSQLStore(conn, dialect).GetByUsername(ctx, "soc-lead")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, u.Role)

	_, err = Run(ctx, conn, dialect, Options{SeedFile: filepath.Join(dir, "missing.yaml")}, logging.Nop())
	require.Error(t, err)
}
