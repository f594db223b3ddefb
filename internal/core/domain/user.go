package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// ValidRole reports whether r is one of the two known roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}

// User models an account in the system. PasswordHash never leaves the
// service layer; PublicUser is the projection returned to clients.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser is the client-facing view of a User.
type PublicUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Public strips the credential and audit fields from u.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// The login error is deliberately shared between the unknown-email and
// wrong-password paths so responses never reveal which check failed.
var ErrInvalidCredentials = errors.New("Invalid email or password")

var ErrInvalidRefreshToken = errors.New("Invalid refresh token")
var ErrMissingRefreshToken = errors.New("refresh token is required")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user with this email already exists")
var ErrInvalidRole = errors.New("invalid role")
