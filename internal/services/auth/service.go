package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mfreitas/storegate/internal/dependencies/clock"
	"github.com/mfreitas/storegate/internal/model"
	"github.com/mfreitas/storegate/internal/services/token"
	"github.com/mfreitas/storegate/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already registered")
	ErrUserInactive       = errors.New("user is inactive")
)

// Identity is the result of a successful register or login: the user
// together with a bearer token for subsequent requests.
type Identity struct {
	User  *model.User
	Token string
}

// Service handles account registration and credential verification
type Service struct {
	storage storage.Storage
	tokens  *token.Service
	clock   clock.Clock
}

// New creates a new AuthService
func New(storage storage.Storage, tokens *token.Service, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		tokens:  tokens,
		clock:   clock,
	}
}

// Register creates a new user account and returns its identity
func (s *Service) Register(ctx context.Context, email, password, fullName string) (*Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	_, err := s.storage.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &model.User{
		ID:           model.UserID(GenerateID("u_")),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		IsActive:     true,
		Roles:        []string{model.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return s.identity(user)
}

// Login verifies credentials and returns a fresh identity
func (s *Service) Login(ctx context.Context, email, password string) (*Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return s.identity(user)
}

// Authenticate resolves a bearer token to its active user
func (s *Service) Authenticate(ctx context.Context, credential string) (*model.User, error) {
	userID, err := s.tokens.Verify(ctx, credential)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return user, nil
}

// RenewToken issues a fresh identity for an already-authenticated user
func (s *Service) RenewToken(ctx context.Context, user *model.User) (*Identity, error) {
	return s.identity(user)
}

func (s *Service) identity(user *model.User) (*Identity, error) {
	t, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &Identity{User: user, Token: t}, nil
}

// GenerateID generates a random ID with a prefix
func GenerateID(prefix string) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}
