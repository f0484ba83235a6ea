package repositories

import (
	"errors"
	"fmt"

	"twofactor-vault/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGroupNotFound = errors.New("group not found")
)

// groupRepository implements GroupRepositoryInterface
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) GroupRepositoryInterface {
	return &groupRepository{
		db: db,
	}
}

// Create creates a new group
func (r *groupRepository) Create(group *models.Group) error {
	if err := r.db.Create(group).Error; err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// GetByID retrieves a group by ID. The synthetic "all" group has no row, so
// id 0 always reports not found here.
func (r *groupRepository) GetByID(id uint) (*models.Group, error) {
	if id == models.AllGroupID {
		return nil, ErrGroupNotFound
	}

	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &group, nil
}

// GetByUserID retrieves all groups owned by a user in creation order
func (r *groupRepository) GetByUserID(userID uuid.UUID) ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.Where("user_id = ?", userID).Order("id").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to get groups for user: %w", err)
	}
	return groups, nil
}

// ExistsByName checks whether the user already owns a group with this name.
// excludeID lets a rename check skip the group being renamed.
func (r *groupRepository) ExistsByName(userID uuid.UUID, name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.Group{}).
		Where("user_id = ? AND name = ?", userID, name)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check group name: %w", err)
	}
	return count > 0, nil
}

// Update updates a group
func (r *groupRepository) Update(group *models.Group) error {
	if err := r.db.Save(group).Error; err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	return nil
}

// Delete removes the group and clears the group_id of its accounts. The two
// statements run in one transaction so either both apply or neither does.
// The accounts themselves are never deleted; they fall back to the implicit
// "all" group.
func (r *groupRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OtpAccount{}).
			Where("group_id = ?", id).
			Update("group_id", nil).Error; err != nil {
			return fmt.Errorf("failed to clear group membership: %w", err)
		}

		result := tx.Delete(&models.Group{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete group: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrGroupNotFound
		}

		return nil
	})
}
