package models

import "time"

// ComplaintStatus enumerates the review states of a complaint. Any
// status may move to any other; there is no enforced transition order.
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "Pending"
	StatusInProgress ComplaintStatus = "In Progress"
	StatusResolved   ComplaintStatus = "Resolved"
)

// ValidStatus reports whether the value belongs to the enumeration.
func ValidStatus(s ComplaintStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	default:
		return false
	}
}

// Statuses lists the enumeration in display order.
func Statuses() []ComplaintStatus {
	return []ComplaintStatus{StatusPending, StatusInProgress, StatusResolved}
}

// ComplaintPriority is assigned once at submission by keyword triage.
type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "Low"
	PriorityMedium ComplaintPriority = "Medium"
	PriorityHigh   ComplaintPriority = "High"
	PriorityUrgent ComplaintPriority = "Urgent"
)

// Complaint represents a persisted complaint row. The owning student,
// title, description, department and priority are fixed at creation;
// only status changes afterwards. Complaints are never deleted.
type Complaint struct {
	ID              string            `db:"id"`
	StudentID       string            `db:"student_id"`
	StudentUsername string            `db:"student_username"`
	Title           string            `db:"title"`
	Description     string            `db:"description"`
	Department      string            `db:"department"`
	Status          ComplaintStatus   `db:"status"`
	Priority        ComplaintPriority `db:"priority"`
	CreatedAt       time.Time         `db:"created_at"`
}

// ComplaintFilter narrows complaint listings. Listings are always
// ordered by created_at descending.
type ComplaintFilter struct {
	StudentID string
	Status    ComplaintStatus
}

// ComplaintStats summarises complaint volume for the admin console.
type ComplaintStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
}
