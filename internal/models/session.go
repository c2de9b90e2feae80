package models

import "github.com/golang-jwt/jwt/v5"

// LoginForm carries the login page credentials.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// ComplaintForm carries the complaint submission fields. Values are
// trimmed before validation so whitespace-only input is rejected.
type ComplaintForm struct {
	Title       string `form:"title" validate:"required,max=200"`
	Description string `form:"description" validate:"required"`
	Department  string `form:"department" validate:"required,max=100"`
}

// StatusForm carries the status-update field posted by staff.
type StatusForm struct {
	Status string `form:"status" validate:"required"`
}

// SessionClaims is the JWT payload stored in the session cookie. The
// role is resolved once at login; a changed group membership takes
// effect on the next login.
type SessionClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}
