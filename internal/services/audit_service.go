package services

import (
	"errors"
	"fmt"
	"strconv"

	"twofactor-vault/internal/models"
	"twofactor-vault/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrInvalidUserID   = errors.New("invalid user ID")
	ErrInvalidAuditLog = errors.New("invalid audit log")
)

// AuditService handles audit logging operations
type AuditService struct {
	repo repositories.AuditLogRepositoryInterface
}

// NewAuditService creates a new audit service
func NewAuditService(repo repositories.AuditLogRepositoryInterface) AuditServiceInterface {
	return &AuditService{
		repo: repo,
	}
}

// ValidateActivityType validates that the activity type is one of the allowed types
func ValidateActivityType(action string) error {
	validActions := map[string]bool{
		models.AuditActionLogin:         true,
		models.AuditActionFailedLogin:   true,
		models.AuditActionGroupCreated:  true,
		models.AuditActionGroupRenamed:  true,
		models.AuditActionGroupAssigned: true,
		models.AuditActionGroupDeleted:  true,
	}

	if !validActions[action] {
		return fmt.Errorf("invalid activity type: %s", action)
	}
	return nil
}

// CreateAuditLog creates a new audit log entry with validation
func (s *AuditService) CreateAuditLog(log *models.AuditLog) error {
	if log == nil {
		return ErrInvalidAuditLog
	}

	if err := ValidateActivityType(log.Action); err != nil {
		return err
	}

	if err := s.repo.Create(log); err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	return nil
}

// GetUserActivity retrieves activity logs for a user with pagination
func (s *AuditService) GetUserActivity(userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error) {
	if userID == uuid.Nil {
		return nil, 0, ErrInvalidUserID
	}

	return s.repo.GetUserActivity(userID, offset, limit)
}

// LogLogin records a successful login
func (s *AuditService) LogLogin(userID uuid.UUID, ipAddress, userAgent string) error {
	return s.CreateAuditLog(&models.AuditLog{
		UserID:    &userID,
		Action:    models.AuditActionLogin,
		Resource:  "user",
		IPAddress: ipAddress,
		UserAgent: userAgent,
	})
}

// LogFailedLogin records a failed login attempt. The user id is unknown by
// design; only the attempted email is kept in metadata.
func (s *AuditService) LogFailedLogin(email, ipAddress, userAgent string) error {
	log := &models.AuditLog{
		Action:    models.AuditActionFailedLogin,
		Resource:  "user",
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	log.SetMetadata("email", email)

	return s.CreateAuditLog(log)
}

// LogGroupCreated records a group creation
func (s *AuditService) LogGroupCreated(userID uuid.UUID, groupID uint, name string) error {
	log := s.groupLog(userID, groupID, models.AuditActionGroupCreated)
	log.SetMetadata("name", name)
	return s.CreateAuditLog(log)
}

// LogGroupRenamed records a group rename
func (s *AuditService) LogGroupRenamed(userID uuid.UUID, groupID uint, oldName, newName string) error {
	log := s.groupLog(userID, groupID, models.AuditActionGroupRenamed)
	log.SetMetadata("old_name", oldName)
	log.SetMetadata("new_name", newName)
	return s.CreateAuditLog(log)
}

// LogGroupAssigned records an account assignment batch
func (s *AuditService) LogGroupAssigned(userID uuid.UUID, groupID uint, accountIDs []uint, moved int64) error {
	log := s.groupLog(userID, groupID, models.AuditActionGroupAssigned)
	log.SetMetadata("requested", len(accountIDs))
	log.SetMetadata("moved", moved)
	return s.CreateAuditLog(log)
}

// LogGroupDeleted records a group deletion
func (s *AuditService) LogGroupDeleted(userID uuid.UUID, groupID uint, name string) error {
	log := s.groupLog(userID, groupID, models.AuditActionGroupDeleted)
	log.SetMetadata("name", name)
	return s.CreateAuditLog(log)
}

func (s *AuditService) groupLog(userID uuid.UUID, groupID uint, action string) *models.AuditLog {
	return &models.AuditLog{
		UserID:     &userID,
		Action:     action,
		Resource:   "group",
		ResourceID: strconv.FormatUint(uint64(groupID), 10),
	}
}
