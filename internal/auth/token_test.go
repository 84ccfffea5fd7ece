package auth

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestSignedIssuerRoundTrip(t *testing.T) {
	iss := NewSignedIssuer("test-secret", time.Hour)
	for _, role := range AllRoles {
		tok, err := iss.Issue(&Identity{ID: int64Ptr(7), Username: string(role), Role: role})
		require.NoError(t, err)
		assert.Equal(t, TokenSigned, tok.Kind)

		claims, err := iss.Verify(tok.Value)
		require.NoError(t, err)
		assert.Equal(t, role, claims.Role)
		assert.Equal(t, string(role), claims.Username)
		require.NotNil(t, claims.UserID)
		assert.Equal(t, int64(7), *claims.UserID)
		assert.True(t, claims.Verified)
		assert.True(t, claims.ExpiresAt.After(claims.IssuedAt), "expiry must follow issuance")
	}
}

func TestSignedIssuerRejectsExpired(t *testing.T) {
	old := NewSignedIssuer("test-secret", time.Hour)
	old.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := old.Issue(&Identity{Username: "admin", Role: RoleAdmin})
	require.NoError(t, err)

	_, err = NewSignedIssuer("test-secret", time.Hour).Verify(tok.Value)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSignedIssuerRejectsWrongSecret(t *testing.T) {
	tok, err := NewSignedIssuer("secret-a", time.Hour).Issue(&Identity{Username: "admin", Role: RoleAdmin})
	require.NoError(t, err)

	_, err = NewSignedIssuer("secret-b", time.Hour).Verify(tok.Value)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSignedIssuerRejectsTampering(t *testing.T) {
	iss := NewSignedIssuer("test-secret", time.Hour)
	viewer, err := iss.Issue(&Identity{Username: "viewer", Role: RoleViewer})
	require.NoError(t, err)
	admin, err := iss.Issue(&Identity{Username: "viewer", Role: RoleAdmin})
	require.NoError(t, err)

	// admin payload with the viewer token's signature
	v := strings.Split(viewer.Value, ".")
	a := strings.Split(admin.Value, ".")
	forged := strings.Join([]string{a[0], a[1], v[2]}, ".")

	_, err = iss.Verify(forged)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSignedIssuerRejectsAlgNone(t *testing.T) {
	claims := jwtClaims{
		Username: "admin",
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewSignedIssuer("test-secret", time.Hour).Verify(unsigned)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSignedIssuerRejectsMissingExpiry(t *testing.T) {
	claims := jwtClaims{Username: "admin", Role: RoleAdmin}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewSignedIssuer("test-secret", time.Hour).Verify(raw)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

var placeholderShape = regexp.MustCompile(`^fake-jwt-(admin|analyst|viewer)-\d+$`)

func TestPlaceholderIssuerFormat(t *testing.T) {
	p := NewPlaceholderIssuer()
	p.now = func() time.Time { return time.UnixMilli(1700000000123) }

	tok, err := p.Issue(&Identity{Username: "viewer", Role: RoleViewer})
	require.NoError(t, err)
	assert.Equal(t, "fake-jwt-viewer-1700000000123", tok.Value)
	assert.Equal(t, TokenUnverified, tok.Kind)

	for _, role := range AllRoles {
		tok, err := NewPlaceholderIssuer().Issue(&Identity{Role: role})
		require.NoError(t, err)
		assert.Regexp(t, placeholderShape, tok.Value)
	}
}

func TestPlaceholderVerifyChecksPrefixOnly(t *testing.T) {
	p := NewPlaceholderIssuer()

	claims, err := p.Verify("fake-jwt-analyst-1700000000123")
	require.NoError(t, err)
	assert.Equal(t, RoleAnalyst, claims.Role)
	assert.False(t, claims.Verified)
	assert.Equal(t, int64(1700000000123), claims.IssuedAt.UnixMilli())
	assert.True(t, claims.ExpiresAt.IsZero(), "placeholder tokens never expire")

	// forged and malformed suffixes are still admitted
	claims, err = p.Verify("fake-jwt-root")
	require.NoError(t, err)
	assert.Equal(t, Role("root"), claims.Role)
	assert.False(t, claims.Verified)

	_, err = p.Verify("real-jwt-admin-1")
	require.ErrorIs(t, err, ErrUnauthenticated)
	_, err = p.Verify("")
	require.ErrorIs(t, err, ErrUnauthenticated)
}
