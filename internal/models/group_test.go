package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTheAllGroup(t *testing.T) {
	userID := uuid.New()
	group := TheAllGroup("All", userID, 7)

	assert.Equal(t, AllGroupID, group.ID)
	assert.Equal(t, "All", group.Name)
	assert.Equal(t, userID, group.UserID)
	assert.Equal(t, int64(7), group.AccountCount)
	assert.True(t, group.IsSynthetic())
}

func TestGroup_IsSynthetic(t *testing.T) {
	real := Group{ID: 1, Name: "Work"}
	assert.False(t, real.IsSynthetic())

	synthetic := Group{ID: AllGroupID, Name: "All"}
	assert.True(t, synthetic.IsSynthetic())
}

func TestValidateGroupName(t *testing.T) {
	testCases := []struct {
		name      string
		groupName string
		wantErr   error
	}{
		{"valid name", "My accounts", nil},
		{"single character", "G", nil},
		{"max length", strings.Repeat("a", MaxGroupNameLength), nil},
		{"multibyte at max length", strings.Repeat("é", MaxGroupNameLength), nil},
		{"empty", "", ErrGroupNameEmpty},
		{"whitespace only", "   ", ErrGroupNameEmpty},
		{"too long", strings.Repeat("a", MaxGroupNameLength+1), ErrGroupNameTooLong},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateGroupName(tc.groupName)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestGroup_Validate(t *testing.T) {
	group := Group{
		UserID: uuid.New(),
		Name:   "Work",
	}
	assert.NoError(t, group.Validate())

	noOwner := Group{Name: "Work"}
	assert.ErrorIs(t, noOwner.Validate(), ErrGroupOwnerEmpty)

	noName := Group{UserID: uuid.New()}
	assert.ErrorIs(t, noName.Validate(), ErrGroupNameEmpty)
}
