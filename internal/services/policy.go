package services

import (
	"twofactor-vault/internal/models"

	"github.com/google/uuid"
)

// GroupAction identifies an operation checked by the group policy
type GroupAction string

const (
	GroupActionCreate GroupAction = "create"
	GroupActionView   GroupAction = "view"
	GroupActionUpdate GroupAction = "update"
	GroupActionAssign GroupAction = "assign"
	GroupActionDelete GroupAction = "delete"
)

// ownerPolicy grants create to any authenticated user and everything else
// to the group's owner only. The synthetic "all" group is never a valid
// target for mutation or direct access.
type ownerPolicy struct{}

// NewOwnerPolicy creates the default owner-based group policy
func NewOwnerPolicy() GroupPolicyInterface {
	return &ownerPolicy{}
}

func (p *ownerPolicy) Can(actorID uuid.UUID, action GroupAction, group *models.Group) bool {
	if actorID == uuid.Nil {
		return false
	}

	if action == GroupActionCreate {
		return true
	}

	if group == nil || group.IsSynthetic() {
		return false
	}

	return group.UserID == actorID
}
