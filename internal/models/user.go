package models

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// PreferenceActiveGroup stores the id of the group the user last
	// selected for filtering, as a string. "0" or absence means the
	// synthetic "all" group.
	PreferenceActiveGroup = "activeGroup"

	PreferenceLocale = "locale"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	ErrUserEmailEmpty   = errors.New("email is required")
	ErrUserEmailInvalid = errors.New("invalid email format")
	ErrUserNameEmpty    = errors.New("name is required")
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Name         string         `gorm:"type:varchar(100);not null" json:"name"`
	Preferences  JSONBMap       `gorm:"type:text" json:"preferences,omitempty"`
	LastLoginAt  *time.Time     `gorm:"index" json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Groups      []Group      `gorm:"foreignKey:UserID" json:"-"`
	OtpAccounts []OtpAccount `gorm:"foreignKey:UserID" json:"-"`
	AuditLogs   []AuditLog   `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	return u.Validate()
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return u.Validate()
}

func (u *User) Validate() error {
	if u.Email == "" {
		return ErrUserEmailEmpty
	}
	if !emailRegex.MatchString(u.Email) {
		return ErrUserEmailInvalid
	}
	if u.Name == "" {
		return ErrUserNameEmpty
	}
	return nil
}

// ActiveGroupID returns the user's active group preference coerced to a
// group id. Unset, unparsable, or negative values fall back to the
// synthetic "all" group.
func (u *User) ActiveGroupID() uint {
	if u.Preferences == nil {
		return AllGroupID
	}

	raw, ok := u.Preferences[PreferenceActiveGroup]
	if !ok {
		return AllGroupID
	}

	switch v := raw.(type) {
	case string:
		if id, err := strconv.Atoi(v); err == nil && id >= 0 {
			return uint(id)
		}
	case float64:
		// JSON numbers decode as float64
		if v >= 0 {
			return uint(v)
		}
	case int:
		if v >= 0 {
			return uint(v)
		}
	}

	return AllGroupID
}

// SetPreference sets a single preference key
func (u *User) SetPreference(key string, value interface{}) {
	if u.Preferences == nil {
		u.Preferences = make(JSONBMap)
	}
	u.Preferences[key] = value
}

func (u *User) TableName() string {
	return "users"
}
