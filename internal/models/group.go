package models

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// AllGroupID is the sentinel id of the synthetic group that represents
	// every account of a user. It is never persisted.
	AllGroupID uint = 0

	MaxGroupNameLength = 32
)

var (
	ErrGroupNameEmpty   = errors.New("group name cannot be empty")
	ErrGroupNameTooLong = errors.New("group name exceeds maximum length")
	ErrGroupOwnerEmpty  = errors.New("group owner is required")
)

// Group is a named collection used to partition a user's OTP accounts.
type Group struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Name      string    `gorm:"type:varchar(32);not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`

	// AccountCount mirrors the twofaccounts_count attribute of the API
	// representation; it is computed at read time, never stored.
	AccountCount int64 `gorm:"-" json:"twofaccounts_count"`

	User     User         `gorm:"foreignKey:UserID" json:"-"`
	Accounts []OtpAccount `gorm:"foreignKey:GroupID" json:"-"`
}

// TheAllGroup builds the synthetic pseudo-group listed ahead of a user's
// real groups. Name is the localized "all accounts" label.
func TheAllGroup(name string, userID uuid.UUID, accountCount int64) Group {
	return Group{
		ID:           AllGroupID,
		UserID:       userID,
		Name:         name,
		AccountCount: accountCount,
	}
}

// IsSynthetic reports whether the group is the non-persisted "all" group.
func (g *Group) IsSynthetic() bool {
	return g.ID == AllGroupID
}

// BeforeCreate hook for Group
func (g *Group) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	if g.UpdatedAt.IsZero() {
		g.UpdatedAt = now
	}
	return g.Validate()
}

// BeforeUpdate hook for Group
func (g *Group) BeforeUpdate(tx *gorm.DB) error {
	g.UpdatedAt = time.Now()
	return g.Validate()
}

// Validate validates the group fields
func (g *Group) Validate() error {
	if g.UserID == uuid.Nil {
		return ErrGroupOwnerEmpty
	}

	if err := ValidateGroupName(g.Name); err != nil {
		return err
	}

	return nil
}

// TableName returns the table name for Group
func (g *Group) TableName() string {
	return "groups"
}

// ValidateGroupName checks the name constraints shared by create and rename.
func ValidateGroupName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrGroupNameEmpty
	}
	if utf8.RuneCountInString(name) > MaxGroupNameLength {
		return ErrGroupNameTooLong
	}
	return nil
}
