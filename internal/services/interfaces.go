package services

import (
	"time"

	"twofactor-vault/internal/models"

	"github.com/google/uuid"
)

// GroupServiceInterface defines domain operations over groups, independent
// of transport. Every operation except List and Create requires the actor
// to own the group.
type GroupServiceInterface interface {
	// List returns the user's groups with the synthetic "all" group
	// prepended, its name localized for the given locale.
	List(userID uuid.UUID, locale string) ([]models.Group, error)
	Create(userID uuid.UUID, name string) (*models.Group, error)
	View(groupID uint, actorID uuid.UUID) (*models.Group, error)
	Update(groupID uint, actorID uuid.UUID, name string) (*models.Group, error)
	// AssignAccounts moves the accounts into the group, replacing their
	// prior membership. Ids not owned by the actor are skipped.
	AssignAccounts(groupID uint, actorID uuid.UUID, accountIDs []uint) (*models.Group, error)
	AccountsOf(groupID uint, actorID uuid.UUID) ([]models.OtpAccount, error)
	// Delete removes the group; its accounts survive with their
	// membership cleared.
	Delete(groupID uint, actorID uuid.UUID) error
}

// GroupPolicyInterface is the capability check applied before every group
// operation: can this actor perform this action on this group?
type GroupPolicyInterface interface {
	Can(actorID uuid.UUID, action GroupAction, group *models.Group) bool
}

// AuthServiceInterface defines authentication operations
type AuthServiceInterface interface {
	Login(email, password, ipAddress, userAgent string) (*models.User, string, time.Time, error)
}

// TokenServiceInterface defines JWT token operations
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// PasswordServiceInterface defines password hashing operations
type PasswordServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) error
}

// AuditServiceInterface defines the contract for audit logging operations
type AuditServiceInterface interface {
	CreateAuditLog(log *models.AuditLog) error
	GetUserActivity(userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error)
	LogLogin(userID uuid.UUID, ipAddress, userAgent string) error
	LogFailedLogin(email, ipAddress, userAgent string) error
	LogGroupCreated(userID uuid.UUID, groupID uint, name string) error
	LogGroupRenamed(userID uuid.UUID, groupID uint, oldName, newName string) error
	LogGroupAssigned(userID uuid.UUID, groupID uint, accountIDs []uint, moved int64) error
	LogGroupDeleted(userID uuid.UUID, groupID uint, name string) error
}

// MetricsRecorderInterface abstracts metric recording so handlers and
// services do not depend on the Prometheus client directly
type MetricsRecorderInterface interface {
	IncrementCounter(name string, labels map[string]string)
	RecordProcessingTime(operation string, duration time.Duration)
}
