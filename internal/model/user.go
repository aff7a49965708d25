package model

import "strings"

const (
	RoleMember = "MEMBER"
	RoleAdmin  = "ADMIN"
)

// User 用户模型
type User struct {
	Username string `gorm:"primaryKey;type:varchar(255)" json:"username"`
	Password string `gorm:"not null;type:varchar(255)" json:"-"`
	Role     string `gorm:"not null;type:varchar(16)" json:"role"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user's role grants admin authority.
// The compare is case-insensitive: legacy rows carry "admin".
func (u *User) IsAdmin() bool {
	return strings.EqualFold(u.Role, RoleAdmin)
}

// ValidRole reports whether role is one of the two roles a user may hold.
func ValidRole(role string) bool {
	return role == RoleMember || role == RoleAdmin
}
