package auth

import (
	"context"
	"fmt"
)

// Service ties the configured Authenticator to the configured Issuer.
type Service struct {
	authn  Authenticator
	issuer Issuer
}

func NewService(authn Authenticator, issuer Issuer) *Service {
	return &Service{authn: authn, issuer: issuer}
}

func (s *Service) Issuer() Issuer {
	return s.issuer
}

// Login verifies the credentials and mints a token for the resulting identity.
func (s *Service) Login(ctx context.Context, username, password string) (*Identity, Token, error) {
	if username == "" || password == "" {
		return nil, Token{}, ErrMalformedRequest
	}
	id, err := s.authn.Authenticate(ctx, username, password)
	if err != nil {
		return nil, Token{}, err
	}
	tok, err := s.issuer.Issue(id)
	if err != nil {
		return nil, Token{}, fmt.Errorf("issue token: %w", err)
	}
	return id, tok, nil
}

// Users lists provisioned accounts when the authenticator's store supports it.
func (s *Service) Users(ctx context.Context) ([]User, error) {
	l, ok := s.authn.(UserLister)
	if !ok {
		return nil, fmt.Errorf("user listing not supported")
	}
	return l.ListUsers(ctx)
}
