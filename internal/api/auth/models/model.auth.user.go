// Package models - tài khoản quản trị (User) và claims của JWT thuộc domain auth.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Nguồn đăng nhập
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// Vai trò quản trị
const (
	RoleSuperAdmin = "super_admin"
	RoleEditor     = "editor"
)

// User tài khoản quản trị CMS.
// PasswordHash không bao giờ được trả về client.
type User struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email" index:"unique"`
	PasswordHash string             `json:"-" bson:"passwordHash,omitempty"`
	Provider     string             `json:"provider" bson:"provider" default:"local"`
	GoogleID     string             `json:"googleId,omitempty" bson:"googleId,omitempty" index:"unique,sparse"`
	Role         string             `json:"role" bson:"role" default:"super_admin"`
	IsActive     bool               `json:"isActive" bson:"isActive"`
	LastLoginAt  *time.Time         `json:"lastLoginAt,omitempty" bson:"lastLoginAt,omitempty"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}

// IsLocal tài khoản đăng nhập bằng email/mật khẩu.
// Bản ghi cũ không có provider được coi là local.
func (u *User) IsLocal() bool {
	return u.Provider == "" || u.Provider == ProviderLocal
}

// Profile thông tin trả về sau khi đăng nhập và ở /auth/me
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Profile rút gọn User
func (u *User) Profile() Profile {
	return Profile{
		ID:    u.ID.Hex(),
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}

// Principal người dùng đã xác thực, middleware gắn vào request
type Principal struct {
	ID    string
	Email string
	Role  string
}

// ValidRole role có nằm trong danh sách cho phép
func ValidRole(role string) bool {
	return role == RoleSuperAdmin || role == RoleEditor
}
