package models

import "time"

// User roles
const (
	RoleAdmin  = "admin"
	RoleUser   = "user"
	RoleViewer = "viewer"
)

// Roles lists the valid user roles.
var Roles = []string{RoleAdmin, RoleUser, RoleViewer}

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FullName     string     `gorm:"not null" json:"full_name"`
	Role         string     `gorm:"not null;default:user" json:"role"` // admin, user, viewer
	Email        *string    `json:"email"`
	LastLogin    *time.Time `json:"last_login"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}
