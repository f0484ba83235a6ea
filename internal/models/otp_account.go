package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OtpTypeTotp = "totp"
	OtpTypeHotp = "hotp"

	DefaultOtpDigits    = 6
	DefaultTotpPeriod   = 30
	DefaultOtpAlgorithm = "sha1"
)

var (
	ErrInvalidOtpType    = errors.New("invalid otp type")
	ErrInvalidOtpDigits  = errors.New("otp digits must be between 6 and 10")
	ErrInvalidTotpPeriod = errors.New("totp period must be positive")
	ErrAccountOwnerEmpty = errors.New("account owner is required")
)

// OtpAccount is a two-factor credential entry. An account belongs to at most
// one group at a time; GroupID is nil when the account is ungrouped and only
// reachable through the synthetic "all" group.
type OtpAccount struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	GroupID   *uint      `gorm:"index" json:"group_id"`
	Service   string     `gorm:"type:varchar(255)" json:"service"`
	Account   string     `gorm:"type:varchar(255);not null" json:"account"`
	OtpType   string     `gorm:"type:varchar(10);not null;default:'totp'" json:"otp_type"`
	Secret    string     `gorm:"type:text;not null" json:"-"`
	Digits    int        `gorm:"not null;default:6" json:"digits"`
	Period    int        `gorm:"not null;default:30" json:"period,omitempty"`
	Counter   *int64     `json:"counter,omitempty"`
	Algorithm string     `gorm:"type:varchar(20);not null;default:'sha1'" json:"algorithm"`
	CreatedAt time.Time  `gorm:"not null" json:"-"`
	UpdatedAt time.Time  `gorm:"not null" json:"-"`

	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Group *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"-"`
}

// BeforeCreate hook for OtpAccount
func (a *OtpAccount) BeforeCreate(tx *gorm.DB) error {
	if a.OtpType == "" {
		a.OtpType = OtpTypeTotp
	}
	if a.Digits == 0 {
		a.Digits = DefaultOtpDigits
	}
	if a.Period == 0 && a.OtpType == OtpTypeTotp {
		a.Period = DefaultTotpPeriod
	}
	if a.Algorithm == "" {
		a.Algorithm = DefaultOtpAlgorithm
	}

	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	return a.Validate()
}

// BeforeUpdate hook for OtpAccount
func (a *OtpAccount) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return a.Validate()
}

// Validate validates the account fields
func (a *OtpAccount) Validate() error {
	if a.UserID == uuid.Nil {
		return ErrAccountOwnerEmpty
	}

	if !IsValidOtpType(a.OtpType) {
		return ErrInvalidOtpType
	}

	if a.Digits < 6 || a.Digits > 10 {
		return ErrInvalidOtpDigits
	}

	if a.OtpType == OtpTypeTotp && a.Period <= 0 {
		return ErrInvalidTotpPeriod
	}

	return nil
}

// IsGrouped reports whether the account currently belongs to a real group.
func (a *OtpAccount) IsGrouped() bool {
	return a.GroupID != nil
}

// TableName returns the table name for OtpAccount
func (a *OtpAccount) TableName() string {
	return "otp_accounts"
}

// IsValidOtpType checks if the otp type is valid
func IsValidOtpType(otpType string) bool {
	switch otpType {
	case OtpTypeTotp, OtpTypeHotp:
		return true
	default:
		return false
	}
}
