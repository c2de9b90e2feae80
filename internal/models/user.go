package models

import "time"

// Role is the classification derived from a user's account flags and
// group memberships. It drives post-login redirection and page access.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStaff   Role = "STAFF"
	RoleStudent Role = "STUDENT"
)

// StaffGroupName is the group whose members classify as staff.
const StaffGroupName = "Staff"

// User represents an application user stored in the users table. The
// complaint workflow treats accounts as externally managed; only the
// identity layer and the adduser CLI write to this table.
type User struct {
	ID           string     `db:"id"`
	Username     string     `db:"username"`
	PasswordHash string     `db:"password_hash"`
	FullName     string     `db:"full_name"`
	IsSuperuser  bool       `db:"is_superuser"`
	Active       bool       `db:"active"`
	LastLogin    *time.Time `db:"last_login"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// Group is a named collection of users.
type Group struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}
