package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-complaint-portal/internal/models"
)

// ComplaintRepository manages persistence for complaint records.
type ComplaintRepository struct {
	db *sqlx.DB
}

// NewComplaintRepository constructs a ComplaintRepository.
func NewComplaintRepository(db *sqlx.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

const complaintColumns = `c.id, c.student_id, u.username AS student_username, c.title, c.description, c.department, c.status, c.priority, c.created_at`

// Create inserts a new complaint row.
func (r *ComplaintRepository) Create(ctx context.Context, complaint *models.Complaint) error {
	if complaint.ID == "" {
		complaint.ID = uuid.NewString()
	}
	if complaint.CreatedAt.IsZero() {
		complaint.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO complaints (id, student_id, title, description, department, status, priority, created_at) VALUES (:id, :student_id, :title, :description, :department, :status, :priority, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, complaint); err != nil {
		return fmt.Errorf("create complaint: %w", err)
	}
	return nil
}

// List returns complaints matching the filter, newest first.
func (r *ComplaintRepository) List(ctx context.Context, filter models.ComplaintFilter) ([]models.Complaint, error) {
	base := "FROM complaints c JOIN users u ON u.id = c.student_id"
	conditions := []string{"1=1"}
	var args []interface{}

	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("c.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("c.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	query := fmt.Sprintf("SELECT %s %s WHERE %s ORDER BY c.created_at DESC", complaintColumns, base, strings.Join(conditions, " AND "))

	var complaints []models.Complaint
	if err := r.db.SelectContext(ctx, &complaints, query, args...); err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	return complaints, nil
}

// FindByID fetches a single complaint. Callers map sql.ErrNoRows to the
// domain not-found error.
func (r *ComplaintRepository) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	query := fmt.Sprintf("SELECT %s FROM complaints c JOIN users u ON u.id = c.student_id WHERE c.id = $1", complaintColumns)
	var complaint models.Complaint
	if err := r.db.GetContext(ctx, &complaint, query, id); err != nil {
		return nil, err
	}
	return &complaint, nil
}

// UpdateStatus overwrites the status unconditionally and reports
// whether a row was touched. Last writer wins.
func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) (bool, error) {
	const query = `UPDATE complaints SET status = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return false, fmt.Errorf("update complaint status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update complaint status: %w", err)
	}
	return affected > 0, nil
}

// Stats aggregates complaint counts per status.
func (r *ComplaintRepository) Stats(ctx context.Context) (*models.ComplaintStats, error) {
	const query = `SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'Pending') AS pending,
		COUNT(*) FILTER (WHERE status = 'In Progress') AS in_progress,
		COUNT(*) FILTER (WHERE status = 'Resolved') AS resolved
	FROM complaints`

	var row struct {
		Total      int `db:"total"`
		Pending    int `db:"pending"`
		InProgress int `db:"in_progress"`
		Resolved   int `db:"resolved"`
	}
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return nil, fmt.Errorf("complaint stats: %w", err)
	}
	return &models.ComplaintStats{
		Total:      row.Total,
		Pending:    row.Pending,
		InProgress: row.InProgress,
		Resolved:   row.Resolved,
	}, nil
}
