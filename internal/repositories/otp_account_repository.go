package repositories

import (
	"errors"
	"fmt"

	"twofactor-vault/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrOtpAccountNotFound = errors.New("otp account not found")
)

// otpAccountRepository implements OtpAccountRepositoryInterface
type otpAccountRepository struct {
	db *gorm.DB
}

// NewOtpAccountRepository creates a new OTP account repository
func NewOtpAccountRepository(db *gorm.DB) OtpAccountRepositoryInterface {
	return &otpAccountRepository{
		db: db,
	}
}

// Create creates a new OTP account
func (r *otpAccountRepository) Create(account *models.OtpAccount) error {
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create otp account: %w", err)
	}
	return nil
}

// GetByID retrieves an OTP account by ID
func (r *otpAccountRepository) GetByID(id uint) (*models.OtpAccount, error) {
	var account models.OtpAccount
	if err := r.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOtpAccountNotFound
		}
		return nil, fmt.Errorf("failed to get otp account: %w", err)
	}
	return &account, nil
}

// GetByUserID retrieves every OTP account owned by a user
func (r *otpAccountRepository) GetByUserID(userID uuid.UUID) ([]models.OtpAccount, error) {
	var accounts []models.OtpAccount
	if err := r.db.Where("user_id = ?", userID).Order("id").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get otp accounts for user: %w", err)
	}
	return accounts, nil
}

// GetByGroupID retrieves the OTP accounts currently associated with a group
func (r *otpAccountRepository) GetByGroupID(groupID uint) ([]models.OtpAccount, error) {
	var accounts []models.OtpAccount
	if err := r.db.Where("group_id = ?", groupID).Order("id").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get otp accounts for group: %w", err)
	}
	return accounts, nil
}

// CountByUserID counts every OTP account owned by a user
func (r *otpAccountRepository) CountByUserID(userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.OtpAccount{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count otp accounts for user: %w", err)
	}
	return count, nil
}

// CountByGroupID counts the OTP accounts associated with a group
func (r *otpAccountRepository) CountByGroupID(groupID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.OtpAccount{}).
		Where("group_id = ?", groupID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count otp accounts for group: %w", err)
	}
	return count, nil
}

// AssignToGroup moves accounts into the group in a single transaction. The
// UPDATE is scoped to ownerID, so ids that do not belong to the owner are
// skipped silently rather than failing the batch.
func (r *otpAccountRepository) AssignToGroup(accountIDs []uint, groupID uint, ownerID uuid.UUID) (int64, error) {
	if len(accountIDs) == 0 {
		return 0, nil
	}

	var moved int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.OtpAccount{}).
			Where("id IN ? AND user_id = ?", accountIDs, ownerID).
			Update("group_id", groupID)
		if result.Error != nil {
			return fmt.Errorf("failed to assign otp accounts: %w", result.Error)
		}

		moved = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	return moved, nil
}
