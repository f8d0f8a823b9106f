package models

import "time"

// Roles a user can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered customer or administrator of the store.
type User struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email          string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	HashedPassword string    `json:"-" gorm:"type:varchar(255);not null"` // never serialized
	IsActive       bool      `json:"is_active" gorm:"not null;default:true"`
	Role           string    `json:"role" gorm:"type:varchar(20);not null;default:user"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
