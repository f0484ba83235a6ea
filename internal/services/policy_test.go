package services

import (
	"testing"

	"twofactor-vault/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOwnerPolicy(t *testing.T) {
	policy := NewOwnerPolicy()
	owner := uuid.New()
	stranger := uuid.New()
	group := &models.Group{ID: 1, UserID: owner, Name: "Work"}

	assert.True(t, policy.Can(owner, GroupActionCreate, nil))
	assert.True(t, policy.Can(owner, GroupActionView, group))
	assert.True(t, policy.Can(owner, GroupActionUpdate, group))
	assert.True(t, policy.Can(owner, GroupActionAssign, group))
	assert.True(t, policy.Can(owner, GroupActionDelete, group))

	assert.False(t, policy.Can(stranger, GroupActionView, group))
	assert.False(t, policy.Can(stranger, GroupActionDelete, group))
}

func TestOwnerPolicy_NilActor(t *testing.T) {
	policy := NewOwnerPolicy()
	group := &models.Group{ID: 1, UserID: uuid.New(), Name: "Work"}

	assert.False(t, policy.Can(uuid.Nil, GroupActionCreate, nil))
	assert.False(t, policy.Can(uuid.Nil, GroupActionView, group))
}

func TestOwnerPolicy_SyntheticGroup(t *testing.T) {
	policy := NewOwnerPolicy()
	owner := uuid.New()
	all := models.TheAllGroup("All", owner, 0)

	// Even the owner cannot mutate or address the synthetic group directly
	assert.False(t, policy.Can(owner, GroupActionView, &all))
	assert.False(t, policy.Can(owner, GroupActionDelete, &all))
	assert.False(t, policy.Can(owner, GroupActionView, nil))
}
