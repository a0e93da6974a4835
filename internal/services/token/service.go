package token

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mfreitas/storegate/internal/dependencies/clock"
	"github.com/mfreitas/storegate/internal/model"
)

// Errors
var (
	// ErrInvalidCredential covers every verification failure: malformed
	// token, bad signature, wrong algorithm, expiry, or a missing subject.
	// Callers cannot and must not distinguish between them.
	ErrInvalidCredential = errors.New("invalid credential")
)

// Config holds configuration for the token service
type Config struct {
	// Secret signs and verifies tokens (HS256). Required.
	Secret string
	// TokenDuration bounds a token's validity from its issue time.
	TokenDuration time.Duration
	// Issuer is stamped into and required of every token.
	Issuer string
}

// DefaultConfig returns default token configuration
func DefaultConfig() Config {
	return Config{
		TokenDuration: 2 * time.Hour,
		Issuer:        "storegate",
	}
}

// Service issues and verifies signed bearer credentials
type Service struct {
	cfg   Config
	clock clock.Clock
}

// New creates a new token service
func New(cfg Config, clk clock.Clock) (*Service, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = DefaultConfig().TokenDuration
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultConfig().Issuer
	}
	return &Service{cfg: cfg, clock: clk}, nil
}

// Issue signs a credential for the given user
func (s *Service) Issue(userID model.UserID) (string, error) {
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   string(userID),
		Issuer:    s.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenDuration)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}

// Verify validates a credential and returns the principal it was issued to.
func (s *Service) Verify(_ context.Context, credential string) (model.UserID, error) {
	if credential == "" {
		return "", ErrInvalidCredential
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(credential, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidCredential
			}
			return []byte(s.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidCredential
	}
	if claims.Subject == "" {
		return "", ErrInvalidCredential
	}
	return model.UserID(claims.Subject), nil
}
