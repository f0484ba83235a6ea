package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"twofactor-vault/internal/i18n"
	"twofactor-vault/internal/models"
	"twofactor-vault/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrGroupNotFound    = errors.New("group not found")
	ErrGroupNotOwned    = errors.New("actor does not own the group")
	ErrGroupNameTaken   = errors.New("group name already in use")
	ErrGroupNameInvalid = errors.New("invalid group name")
)

// groupService implements GroupServiceInterface
type groupService struct {
	groupRepo   repositories.GroupRepositoryInterface
	accountRepo repositories.OtpAccountRepositoryInterface
	policy      GroupPolicyInterface
	audit       AuditServiceInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewGroupService creates a group service
func NewGroupService(
	groupRepo repositories.GroupRepositoryInterface,
	accountRepo repositories.OtpAccountRepositoryInterface,
	policy GroupPolicyInterface,
	audit AuditServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) GroupServiceInterface {
	return &groupService{
		groupRepo:   groupRepo,
		accountRepo: accountRepo,
		policy:      policy,
		audit:       audit,
		metrics:     metrics,
		logger:      logger,
	}
}

// List returns the user's groups in creation order with the synthetic "all"
// group prepended. The pseudo-group carries the sentinel id 0, the localized
// "all" label and the user's total account count.
func (s *groupService) List(userID uuid.UUID, locale string) ([]models.Group, error) {
	start := time.Now()

	groups, err := s.groupRepo.GetByUserID(userID)
	if err != nil {
		s.recordOperation("list", "failed", start)
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	for i := range groups {
		count, err := s.accountRepo.CountByGroupID(groups[i].ID)
		if err != nil {
			s.recordOperation("list", "failed", start)
			return nil, fmt.Errorf("failed to count group accounts: %w", err)
		}
		groups[i].AccountCount = count
	}

	total, err := s.accountRepo.CountByUserID(userID)
	if err != nil {
		s.recordOperation("list", "failed", start)
		return nil, fmt.Errorf("failed to count user accounts: %w", err)
	}

	all := models.TheAllGroup(i18n.T(locale, i18n.KeyAllGroup), userID, total)
	result := make([]models.Group, 0, len(groups)+1)
	result = append(result, all)
	result = append(result, groups...)

	s.recordOperation("list", "success", start)
	return result, nil
}

// Create creates a new group owned by the user
func (s *groupService) Create(userID uuid.UUID, name string) (*models.Group, error) {
	start := time.Now()

	if !s.policy.Can(userID, GroupActionCreate, nil) {
		s.recordOperation("create", "denied", start)
		return nil, ErrGroupNotOwned
	}

	if err := models.ValidateGroupName(name); err != nil {
		s.recordOperation("create", "invalid", start)
		return nil, fmt.Errorf("%w: %v", ErrGroupNameInvalid, err)
	}

	taken, err := s.groupRepo.ExistsByName(userID, name, 0)
	if err != nil {
		s.recordOperation("create", "failed", start)
		return nil, fmt.Errorf("failed to check group name: %w", err)
	}
	if taken {
		s.recordOperation("create", "invalid", start)
		return nil, ErrGroupNameTaken
	}

	group := &models.Group{
		UserID: userID,
		Name:   name,
	}

	if err := s.groupRepo.Create(group); err != nil {
		s.recordOperation("create", "failed", start)
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	if err := s.audit.LogGroupCreated(userID, group.ID, group.Name); err != nil {
		s.logger.Warn("failed to audit group creation", "group_id", group.ID, "error", err)
	}

	s.logger.Info("group created", "group_id", group.ID, "user_id", userID)
	s.recordOperation("create", "success", start)
	return group, nil
}

// View returns the group if the actor owns it
func (s *groupService) View(groupID uint, actorID uuid.UUID) (*models.Group, error) {
	group, err := s.loadOwned(groupID, actorID, GroupActionView)
	if err != nil {
		return nil, err
	}

	count, err := s.accountRepo.CountByGroupID(group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count group accounts: %w", err)
	}
	group.AccountCount = count

	return group, nil
}

// Update renames the group. Renaming to the current name is a no-op that
// still succeeds, so repeated updates with the same name are idempotent.
func (s *groupService) Update(groupID uint, actorID uuid.UUID, name string) (*models.Group, error) {
	start := time.Now()

	group, err := s.loadOwned(groupID, actorID, GroupActionUpdate)
	if err != nil {
		s.recordOperation("update", "denied", start)
		return nil, err
	}

	if err := models.ValidateGroupName(name); err != nil {
		s.recordOperation("update", "invalid", start)
		return nil, fmt.Errorf("%w: %v", ErrGroupNameInvalid, err)
	}

	taken, err := s.groupRepo.ExistsByName(actorID, name, group.ID)
	if err != nil {
		s.recordOperation("update", "failed", start)
		return nil, fmt.Errorf("failed to check group name: %w", err)
	}
	if taken {
		s.recordOperation("update", "invalid", start)
		return nil, ErrGroupNameTaken
	}

	oldName := group.Name
	group.Name = name

	if err := s.groupRepo.Update(group); err != nil {
		s.recordOperation("update", "failed", start)
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	if oldName != name {
		if err := s.audit.LogGroupRenamed(actorID, group.ID, oldName, name); err != nil {
			s.logger.Warn("failed to audit group rename", "group_id", group.ID, "error", err)
		}
	}

	s.recordOperation("update", "success", start)
	return group, nil
}

// AssignAccounts moves the accounts into the group. Membership is exclusive:
// an account assigned here leaves whatever group it was in before. Account
// ids the actor does not own are skipped silently.
func (s *groupService) AssignAccounts(groupID uint, actorID uuid.UUID, accountIDs []uint) (*models.Group, error) {
	start := time.Now()

	group, err := s.loadOwned(groupID, actorID, GroupActionAssign)
	if err != nil {
		s.recordOperation("assign", "denied", start)
		return nil, err
	}

	moved, err := s.accountRepo.AssignToGroup(accountIDs, group.ID, actorID)
	if err != nil {
		s.recordOperation("assign", "failed", start)
		return nil, fmt.Errorf("failed to assign accounts: %w", err)
	}

	count, err := s.accountRepo.CountByGroupID(group.ID)
	if err != nil {
		s.recordOperation("assign", "failed", start)
		return nil, fmt.Errorf("failed to count group accounts: %w", err)
	}
	group.AccountCount = count

	if err := s.audit.LogGroupAssigned(actorID, group.ID, accountIDs, moved); err != nil {
		s.logger.Warn("failed to audit group assignment", "group_id", group.ID, "error", err)
	}

	s.logger.Info("accounts assigned to group",
		"group_id", group.ID, "requested", len(accountIDs), "moved", moved)
	s.recordOperation("assign", "success", start)
	return group, nil
}

// AccountsOf returns the accounts currently associated with the group
func (s *groupService) AccountsOf(groupID uint, actorID uuid.UUID) ([]models.OtpAccount, error) {
	group, err := s.loadOwned(groupID, actorID, GroupActionView)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.GetByGroupID(group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group accounts: %w", err)
	}

	return accounts, nil
}

// Delete removes the group record. The associated accounts are not deleted;
// their membership is cleared in the same transaction, so they fall back to
// the implicit "all" group.
func (s *groupService) Delete(groupID uint, actorID uuid.UUID) error {
	start := time.Now()

	group, err := s.loadOwned(groupID, actorID, GroupActionDelete)
	if err != nil {
		s.recordOperation("delete", "denied", start)
		return err
	}

	if err := s.groupRepo.Delete(group.ID); err != nil {
		s.recordOperation("delete", "failed", start)
		return fmt.Errorf("failed to delete group: %w", err)
	}

	if err := s.audit.LogGroupDeleted(actorID, group.ID, group.Name); err != nil {
		s.logger.Warn("failed to audit group deletion", "group_id", group.ID, "error", err)
	}

	s.logger.Info("group deleted", "group_id", group.ID, "user_id", actorID)
	s.recordOperation("delete", "success", start)
	return nil
}

// loadOwned fetches the group and applies the capability check. Not-found
// and not-owned remain distinct errors here; the HTTP layer collapses them
// into the same response.
func (s *groupService) loadOwned(groupID uint, actorID uuid.UUID, action GroupAction) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to load group: %w", err)
	}

	if !s.policy.Can(actorID, action, group) {
		return nil, ErrGroupNotOwned
	}

	return group, nil
}

func (s *groupService) recordOperation(operation, status string, start time.Time) {
	s.metrics.IncrementCounter("group_operation", map[string]string{
		"operation": operation,
		"status":    status,
	})
	s.metrics.RecordProcessingTime("group_"+operation, time.Since(start))
}
