package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenKind int

const (
	// TokenSigned is an HS256 JWT whose signature and expiry are checked.
	TokenSigned TokenKind = iota + 1
	// TokenUnverified is a placeholder string; nothing about it can be verified.
	TokenUnverified
)

func (k TokenKind) String() string {
	switch k {
	case TokenSigned:
		return "signed"
	case TokenUnverified:
		return "unverified"
	}
	return "unknown"
}

// Token is the opaque bearer credential handed to clients.
type Token struct {
	Value string
	Kind  TokenKind
}

// Claims is what a verified (or, for placeholders, merely parsed) bearer
// credential says about its holder.
type Claims struct {
	UserID    *int64
	Username  string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
	Verified  bool
}

// Issuer mints tokens for identities and decodes them on later requests.
type Issuer interface {
	Issue(id *Identity) (Token, error)
	Verify(raw string) (*Claims, error)
}

type jwtClaims struct {
	UserID   *int64 `json:"uid,omitempty"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

// SignedIssuer issues HS256 JWTs with a fixed lifetime.
type SignedIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSignedIssuer(secret string, ttl time.Duration) *SignedIssuer {
	return &SignedIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *SignedIssuer) Issue(id *Identity) (Token, error) {
	now := s.now().UTC()
	claims := jwtClaims{
		UserID:   id.ID,
		Username: id.Username,
		Role:     id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, Kind: TokenSigned}, nil
}

func (s *SignedIssuer) Verify(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	c, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid || c.ExpiresAt == nil || !c.Role.Valid() {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}
	claims := &Claims{
		UserID:    c.UserID,
		Username:  c.Username,
		Role:      c.Role,
		ExpiresAt: c.ExpiresAt.Time,
		Verified:  true,
	}
	if c.IssuedAt != nil {
		claims.IssuedAt = c.IssuedAt.Time
	}
	return claims, nil
}

// PlaceholderPrefix starts every placeholder token.
const PlaceholderPrefix = "fake-jwt-"

// PlaceholderIssuer produces "fake-jwt-<role>-<epoch millis>" strings. They
// carry the role in cleartext, never expire and can be forged by anyone;
// Verify only checks the prefix.
type PlaceholderIssuer struct {
	now func() time.Time
}

func NewPlaceholderIssuer() *PlaceholderIssuer {
	return &PlaceholderIssuer{now: time.Now}
}

func (p *PlaceholderIssuer) Issue(id *Identity) (Token, error) {
	if id.Role == "" {
		return Token{}, errors.New("identity has no role")
	}
	v := PlaceholderPrefix + string(id.Role) + "-" + strconv.FormatInt(p.now().UnixMilli(), 10)
	return Token{Value: v, Kind: TokenUnverified}, nil
}

// Verify admits anything with the placeholder prefix. The role and timestamp
// are parsed best-effort and are only claims; an unparsable suffix leaves the
// role as the raw text after the prefix.
func (p *PlaceholderIssuer) Verify(raw string) (*Claims, error) {
	if !strings.HasPrefix(raw, PlaceholderPrefix) {
		return nil, fmt.Errorf("%w: not a placeholder token", ErrUnauthenticated)
	}
	rest := strings.TrimPrefix(raw, PlaceholderPrefix)
	claims := &Claims{Role: Role(rest)}
	if i := strings.LastIndexByte(rest, '-'); i >= 0 {
		if ms, err := strconv.ParseInt(rest[i+1:], 10, 64); err == nil {
			claims.Role = Role(rest[:i])
			claims.IssuedAt = time.UnixMilli(ms).UTC()
		}
	}
	return claims, nil
}
