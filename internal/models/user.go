package models

import "time"

// Role is a profile's permission level inside its workspace.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleMember     Role = "member"
)

// CanInvite reports whether the role may create new workspace members.
func (r Role) CanInvite() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// User is the authentication identity.
type User struct {
	Base
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	IsActive            bool       `gorm:"default:true" json:"is_active"`
	RefreshTokenHash    string     `gorm:"size:64" json:"-"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`
}

// Profile holds the personal and workspace data of a User. Its ID is the
// owning user's ID.
type Profile struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"not null" json:"email"`
	FullName    string    `json:"full_name"`
	Role        Role      `gorm:"not null" json:"role"`
	WorkspaceID string    `gorm:"type:uuid;not null;index" json:"workspace_id"`
	InvitedBy   *string   `gorm:"type:uuid" json:"invited_by,omitempty"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	ZipCode     string    `json:"zip_code"`
	AvatarURL   string    `json:"avatar_url"`
	AvatarKey   string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
