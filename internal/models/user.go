package models

import "time"

type UserRole string

const (
	RoleUnassigned UserRole = "UNASSIGNED"
	RoleDonor      UserRole = "DONOR"
	RoleAdmin      UserRole = "ADMIN"
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
)

type UserStatus string

const (
	StatusPending UserStatus = "PENDING"
	StatusActive  UserStatus = "ACTIVE"
	StatusDeleted UserStatus = "DELETED"
)

// User mirrors an identity-provider account. ID is the provider's subject id.
// DeletedAt is a plain nullable column rather than gorm.DeletedAt so that
// soft-deleted users are still returned by lookups.
type User struct {
	ID              string     `gorm:"size:64;primaryKey" json:"id"`
	Email           string     `gorm:"size:255;index" json:"email"`
	FirstName       string     `gorm:"size:100" json:"first_name"`
	LastName        string     `gorm:"size:100" json:"last_name"`
	PhoneNumber     *string    `gorm:"size:32" json:"phone_number,omitempty"`
	IsEmailVerified bool       `gorm:"default:false" json:"is_email_verified"`
	IsPhoneVerified bool       `gorm:"default:false" json:"is_phone_verified"`
	Role            UserRole   `gorm:"size:20;not null;default:'UNASSIGNED'" json:"role"`
	Status          UserStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	LastLoginAt     time.Time  `json:"last_login_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}
