package user

import (
	"time"

	"github.com/nekogravitycat/gym-trial-backend/internal/authz"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/apperror"
)

var (
	ErrNotFound              = apperror.New(apperror.KindNotFound, "user not found")
	ErrEmailAlreadyUsed      = apperror.New(apperror.KindConflict, "email already registered")
	ErrInvalidCredentials    = apperror.New(apperror.KindUnauthorized, "invalid email or password")
	ErrInactiveUser          = apperror.New(apperror.KindUnauthorized, "invalid email or password")
	ErrEmailRequired         = apperror.New(apperror.KindBadRequest, "email is required")
	ErrNameRequired          = apperror.New(apperror.KindBadRequest, "name is required")
	ErrPasswordTooShort      = apperror.New(apperror.KindBadRequest, "password must be at least 8 characters")
	ErrAdminSelfRegistration = apperror.New(apperror.KindForbidden, "admin accounts cannot be self-registered")
	ErrBootstrapNotAdmin     = apperror.New(apperror.KindConflict, "bootstrap admin email belongs to a non-admin account")
)

// User is a registered account.
type User struct {
	ID           string // UUID
	Name         string
	Email        string
	PasswordHash string
	Role         authz.Role
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Identity returns the authorization view of the account.
func (u *User) Identity() authz.Identity {
	return authz.Identity{ID: u.ID, Role: u.Role}
}

// Filter defines filter options for listing users.
type Filter struct {
	Email    string
	Role     authz.Role
	IsActive *bool // nil means either
	Skip     int
	Limit    int
}
