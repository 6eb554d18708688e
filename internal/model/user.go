package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values assignable to a user.
const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// ValidRole reports whether role is one of the enumerated values.
// Comparison is case-insensitive; roles are stored lowercase.
func ValidRole(role string) bool {
	switch strings.ToLower(role) {
	case RoleUser, RoleAdmin, RoleSeller:
		return true
	}
	return false
}

// User is the identity and profile record. Accounts are keyed by a unique
// 10-digit phone number; the password hash is never serialized.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PhoneNumber  string         `gorm:"type:varchar(10);uniqueIndex;not null" json:"phone_number"`
	Password     string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         string         `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	FirstName    string         `gorm:"type:varchar(255)" json:"first_name"`
	LastName     string         `gorm:"type:varchar(255)" json:"last_name"`
	Address      string         `gorm:"type:varchar(255)" json:"address"`
	ImageProfile string         `gorm:"type:varchar(512)" json:"image_profile"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// AuthToken is one issued bearer credential. The row ID doubles as the token's
// jti claim; deleting the row revokes exactly that token, so a user can hold
// several live tokens across devices. Tokens carry no expiry and live until
// revoked.
type AuthToken struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User       User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name       string     `gorm:"type:varchar(100);not null" json:"name"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
