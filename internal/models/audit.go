package models

import "time"

// AuditAction labels identity events recorded in the audit log.
type AuditAction string

const (
	AuditActionLogin  AuditAction = "LOGIN"
	AuditActionLogout AuditAction = "LOGOUT"
)

// AuditLog records login and logout events. Complaint status changes
// are deliberately not audited.
type AuditLog struct {
	ID        string      `db:"id"`
	UserID    *string     `db:"user_id"`
	Action    AuditAction `db:"action"`
	IPAddress string      `db:"ip_address"`
	UserAgent string      `db:"user_agent"`
	CreatedAt time.Time   `db:"created_at"`
}
