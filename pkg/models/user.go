package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles known to the console.
const (
	RoleAdmin             = "admin"
	RoleBusinessUser      = "business_user"
	RoleContentSpecialist = "content_specialist"
)

// User is a console account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID             uuid.UUID `db:"id"              json:"id"`
	TenantID       uuid.UUID `db:"tenant_id"       json:"tenant_id"`
	Email          string    `db:"email"           json:"email"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	FullName       string    `db:"full_name"       json:"full_name"`
	Role           string    `db:"role"            json:"role"`
	IsActive       bool      `db:"is_active"       json:"is_active"`
	CreatedAt      time.Time `db:"created_at"      json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"      json:"updated_at"`
}

// CanEditVoices reports whether the user's role may create or update brand
// voices. Content specialists have read-only access.
func (u *User) CanEditVoices() bool {
	return u.Role == RoleAdmin || u.Role == RoleBusinessUser
}
