package model

import "time"

// User roles.
const (
	RoleAdmin   = "admin"
	RoleFaculty = "faculty"
	RoleStudent = "student"
)

// User statuses.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User represents a platform account.
type User struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	InstitutionID string     `json:"institutionId,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Avatar        string     `json:"avatar,omitempty"`
	Status        string     `json:"status"`
	PasswordHash  string     `json:"-"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
}

// UserPatch carries a partial update. Nil fields are left untouched.
// PasswordHash is set by the handler after hashing, never taken from JSON.
type UserPatch struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Role          *string `json:"role,omitempty"`
	InstitutionID *string `json:"institutionId,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Avatar        *string `json:"avatar,omitempty"`
	Status        *string `json:"status,omitempty"`
	PasswordHash  *string `json:"-"`
}

// Apply merges the patch into the user, field by field.
func (p UserPatch) Apply(user *User) {
	if p.Name != nil {
		user.Name = *p.Name
	}
	if p.Email != nil {
		user.Email = *p.Email
	}
	if p.Role != nil {
		user.Role = *p.Role
	}
	if p.InstitutionID != nil {
		user.InstitutionID = *p.InstitutionID
	}
	if p.Phone != nil {
		user.Phone = *p.Phone
	}
	if p.Avatar != nil {
		user.Avatar = *p.Avatar
	}
	if p.Status != nil {
		user.Status = *p.Status
	}
	if p.PasswordHash != nil {
		user.PasswordHash = *p.PasswordHash
	}
}

// ValidRole reports whether role is one of the platform roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleFaculty || role == RoleStudent
}

// ValidUserStatus reports whether status is a known account status.
func ValidUserStatus(status string) bool {
	return status == UserStatusActive || status == UserStatusInactive || status == UserStatusSuspended
}
