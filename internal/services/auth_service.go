package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"twofactor-vault/internal/models"
	"twofactor-vault/internal/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// authService implements AuthServiceInterface
type authService struct {
	userRepo        repositories.UserRepositoryInterface
	passwordService PasswordServiceInterface
	tokenService    TokenServiceInterface
	auditService    AuditServiceInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewAuthService creates an authentication service
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	auditService AuditServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &authService{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		auditService:    auditService,
		metrics:         metrics,
		logger:          logger,
	}
}

// Login authenticates a user and issues an access token. A wrong email and a
// wrong password produce the same error so the response never confirms
// whether an email is registered.
func (s *authService) Login(email, password, ipAddress, userAgent string) (*models.User, string, time.Time, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.recordAuthEvent("failed")
			if auditErr := s.auditService.LogFailedLogin(email, ipAddress, userAgent); auditErr != nil {
				s.logger.Warn("failed to audit failed login", "error", auditErr)
			}
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.passwordService.VerifyPassword(user.PasswordHash, password); err != nil {
		s.recordAuthEvent("failed")
		if auditErr := s.auditService.LogFailedLogin(email, ipAddress, userAgent); auditErr != nil {
			s.logger.Warn("failed to audit failed login", "error", auditErr)
		}
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		s.logger.Warn("failed to update last login", "user_id", user.ID, "error", err)
	}

	if err := s.auditService.LogLogin(user.ID, ipAddress, userAgent); err != nil {
		s.logger.Warn("failed to audit login", "user_id", user.ID, "error", err)
	}

	s.recordAuthEvent("success")
	return user, token, expiresAt, nil
}

func (s *authService) recordAuthEvent(status string) {
	s.metrics.IncrementCounter("auth_event", map[string]string{"status": status})
}
