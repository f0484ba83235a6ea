package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"twofactor-vault/internal/config"
	"twofactor-vault/internal/database"
	"twofactor-vault/internal/models"
	"twofactor-vault/internal/repositories"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

type AuthServiceSuite struct {
	suite.Suite
	db       *database.DB
	service  AuthServiceInterface
	userRepo repositories.UserRepositoryInterface
	user     *models.User
}

func (s *AuthServiceSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())

	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	jwtConfig := &config.JWTConfig{
		AccessTokenDuration: time.Hour,
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "twofactor-vault",
	}

	s.userRepo = repositories.NewUserRepository(s.db.DB)
	auditRepo := repositories.NewAuditLogRepository(s.db.DB)
	passwordService := NewPasswordService(bcrypt.MinCost)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.service = NewAuthService(
		s.userRepo,
		passwordService,
		NewTokenService(jwtConfig),
		NewAuditService(auditRepo),
		NewNoopMetrics(),
		logger,
	)

	hash, err := passwordService.HashPassword("secret-password")
	s.Require().NoError(err)

	s.user = &models.User{
		Email:        "user@example.com",
		PasswordHash: hash,
		Name:         "Test User",
	}
	s.Require().NoError(s.userRepo.Create(s.user))
}

func (s *AuthServiceSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *AuthServiceSuite) TestLogin_Success() {
	user, token, expiresAt, err := s.service.Login("user@example.com", "secret-password", "127.0.0.1", "test-agent")
	s.NoError(err)
	s.Equal(s.user.ID, user.ID)
	s.NotEmpty(token)
	s.True(expiresAt.After(time.Now()))

	// Last login is recorded
	fresh, err := s.userRepo.GetByID(s.user.ID)
	s.NoError(err)
	s.NotNil(fresh.LastLoginAt)
}

func (s *AuthServiceSuite) TestLogin_WrongPassword() {
	_, _, _, err := s.service.Login("user@example.com", "wrong-password", "127.0.0.1", "test-agent")
	s.Equal(ErrInvalidCredentials, err)
}

func (s *AuthServiceSuite) TestLogin_UnknownEmail() {
	// Unknown email and wrong password must be indistinguishable
	_, _, _, err := s.service.Login("nobody@example.com", "secret-password", "127.0.0.1", "test-agent")
	s.Equal(ErrInvalidCredentials, err)
}

func (s *AuthServiceSuite) TestLogin_WritesAuditLog() {
	_, _, _, err := s.service.Login("user@example.com", "secret-password", "127.0.0.1", "test-agent")
	s.NoError(err)

	auditRepo := repositories.NewAuditLogRepository(s.db.DB)
	logs, total, err := auditRepo.GetUserActivity(s.user.ID, 0, 10)
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Equal(models.AuditActionLogin, logs[0].Action)
}
