package repositories

import (
	"time"

	"twofactor-vault/internal/models"

	"github.com/google/uuid"
)

// GroupRepositoryInterface defines persistence operations for groups
type GroupRepositoryInterface interface {
	Create(group *models.Group) error
	GetByID(id uint) (*models.Group, error)
	GetByUserID(userID uuid.UUID) ([]models.Group, error)
	ExistsByName(userID uuid.UUID, name string, excludeID uint) (bool, error)
	Update(group *models.Group) error
	// Delete removes the group row and clears the membership of every
	// account that belonged to it, in a single transaction.
	Delete(id uint) error
}

// OtpAccountRepositoryInterface defines persistence operations for OTP accounts
type OtpAccountRepositoryInterface interface {
	Create(account *models.OtpAccount) error
	GetByID(id uint) (*models.OtpAccount, error)
	GetByUserID(userID uuid.UUID) ([]models.OtpAccount, error)
	GetByGroupID(groupID uint) ([]models.OtpAccount, error)
	CountByUserID(userID uuid.UUID) (int64, error)
	CountByGroupID(groupID uint) (int64, error)
	// AssignToGroup moves the given accounts into the group, replacing any
	// prior membership. Only accounts owned by ownerID are touched; foreign
	// ids are skipped. Returns the number of rows moved.
	AssignToGroup(accountIDs []uint, groupID uint, ownerID uuid.UUID) (int64, error)
}

// UserRepositoryInterface defines persistence operations for users
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdateLastLogin(id uuid.UUID, at time.Time) error
	UpdatePreference(id uuid.UUID, key string, value interface{}) error
}

// AuditLogRepositoryInterface defines persistence operations for audit logs
type AuditLogRepositoryInterface interface {
	Create(log *models.AuditLog) error
	GetUserActivity(userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error)
}
