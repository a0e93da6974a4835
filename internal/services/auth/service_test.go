package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mfreitas/storegate/internal/dependencies/mocks"
	"github.com/mfreitas/storegate/internal/model"
	"github.com/mfreitas/storegate/internal/services/token"
	"github.com/mfreitas/storegate/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	storage *memory.Storage
	clock   *mocks.MockClock
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	cfg := token.DefaultConfig()
	cfg.Secret = "test-secret"
	tokens, err := token.New(cfg, s.clock)
	s.Require().NoError(err)

	s.service = New(s.storage, tokens, s.clock)
	s.ctx = context.Background()
}

func (s *ServiceSuite) register(email string) *Identity {
	identity, err := s.service.Register(s.ctx, email, "correct horse", "Ada Lovelace")
	s.Require().NoError(err)
	return identity
}

func (s *ServiceSuite) TestRegister() {
	identity := s.register("ada@example.com")

	s.Equal("ada@example.com", identity.User.Email)
	s.Equal("Ada Lovelace", identity.User.FullName)
	s.True(identity.User.IsActive)
	s.Equal([]string{model.RoleUser}, identity.User.Roles)
	s.NotEmpty(identity.Token)
	s.NotEqual("correct horse", identity.User.PasswordHash)

	stored, err := s.storage.GetUserByEmail(s.ctx, "ada@example.com")
	s.Require().NoError(err)
	s.Equal(identity.User.ID, stored.ID)
}

func (s *ServiceSuite) TestRegisterNormalizesEmail() {
	s.register("  Ada@Example.COM ")

	_, err := s.storage.GetUserByEmail(s.ctx, "ada@example.com")
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestRegisterDuplicateEmailFails() {
	s.register("ada@example.com")

	_, err := s.service.Register(s.ctx, "ada@example.com", "other pass", "Other Ada")
	s.Require().ErrorIs(err, ErrEmailExists)
}

func (s *ServiceSuite) TestLogin() {
	s.register("ada@example.com")

	identity, err := s.service.Login(s.ctx, "ada@example.com", "correct horse")
	s.Require().NoError(err)
	s.Equal("ada@example.com", identity.User.Email)
	s.NotEmpty(identity.Token)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	s.register("ada@example.com")

	_, err := s.service.Login(s.ctx, "ada@example.com", "wrong")
	s.Require().ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownEmail() {
	_, err := s.service.Login(s.ctx, "nobody@example.com", "whatever")
	s.Require().ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginInactiveUser() {
	identity := s.register("ada@example.com")

	identity.User.IsActive = false
	s.Require().NoError(s.storage.SaveUser(s.ctx, identity.User))

	_, err := s.service.Login(s.ctx, "ada@example.com", "correct horse")
	s.Require().ErrorIs(err, ErrUserInactive)
}

func (s *ServiceSuite) TestAuthenticate() {
	identity := s.register("ada@example.com")

	user, err := s.service.Authenticate(s.ctx, identity.Token)
	s.Require().NoError(err)
	s.Equal(identity.User.ID, user.ID)
}

func (s *ServiceSuite) TestAuthenticateBadToken() {
	_, err := s.service.Authenticate(s.ctx, "not-a-token")
	s.Require().ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestAuthenticateExpiredToken() {
	identity := s.register("ada@example.com")

	s.clock.Advance(3 * time.Hour)

	_, err := s.service.Authenticate(s.ctx, identity.Token)
	s.Require().ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestAuthenticateDeletedUser() {
	identity := s.register("ada@example.com")

	s.Require().NoError(s.storage.DeleteAllUsers(s.ctx))

	_, err := s.service.Authenticate(s.ctx, identity.Token)
	s.Require().ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestAuthenticateInactiveUser() {
	identity := s.register("ada@example.com")

	identity.User.IsActive = false
	s.Require().NoError(s.storage.SaveUser(s.ctx, identity.User))

	_, err := s.service.Authenticate(s.ctx, identity.Token)
	s.Require().ErrorIs(err, ErrUserInactive)
}

func (s *ServiceSuite) TestRenewToken() {
	identity := s.register("ada@example.com")
	s.clock.Advance(time.Hour)

	renewed, err := s.service.RenewToken(s.ctx, identity.User)
	s.Require().NoError(err)
	s.NotEmpty(renewed.Token)

	user, err := s.service.Authenticate(s.ctx, renewed.Token)
	s.Require().NoError(err)
	s.Equal(identity.User.ID, user.ID)
}
