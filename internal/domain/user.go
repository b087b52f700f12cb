package domain

import (
	"time"

	"gorm.io/gorm"
)

// User is an authentication identity. Sales persons may link to one.
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Username       string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Name           string     `gorm:"size:100" json:"name"`
	Email          *string    `gorm:"size:150;uniqueIndex" json:"email"`
	Phone          *string    `gorm:"size:20" json:"phone"`
	HashedPassword string     `gorm:"not null" json:"-"`
	Role           UserRole   `gorm:"size:16;not null" json:"role"`
	IsActive       bool       `gorm:"not null" json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	LastLogin      *time.Time `json:"lastLogin"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Role == "" {
		u.Role = RoleSales
	}
	return nil
}

// BeforeUpdate hook
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// IsAdmin reports whether the user holds one of the administrative roles.
func (u *User) IsAdmin() bool {
	return u.Role == RoleSuperAdmin || u.Role == RoleCRMAdmin
}
