package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-complaint-portal/internal/models"
	appErrors "github.com/noah-isme/campus-complaint-portal/pkg/errors"
)

type complaintRepository interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	List(ctx context.Context, filter models.ComplaintFilter) ([]models.Complaint, error)
	FindByID(ctx context.Context, id string) (*models.Complaint, error)
	UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) (bool, error)
	Stats(ctx context.Context) (*models.ComplaintStats, error)
}

// ComplaintService handles the complaint record workflows.
type ComplaintService struct {
	repo      complaintRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewComplaintService constructs the service.
func NewComplaintService(repo complaintRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *ComplaintService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplaintService{repo: repo, validator: validate, metrics: metrics, logger: logger}
}

// Submit validates the form, triages a priority and persists a new
// Pending complaint owned by the student.
func (s *ComplaintService) Submit(ctx context.Context, studentID string, form models.ComplaintForm) (*models.Complaint, error) {
	form.Title = strings.TrimSpace(form.Title)
	form.Description = strings.TrimSpace(form.Description)
	form.Department = strings.TrimSpace(form.Department)

	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "title, description and department are required")
	}

	complaint := &models.Complaint{
		StudentID:   studentID,
		Title:       form.Title,
		Description: form.Description,
		Department:  form.Department,
		Status:      models.StatusPending,
		Priority:    TriagePriority(form.Title, form.Description),
	}

	if err := s.repo.Create(ctx, complaint); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create complaint")
	}

	if s.metrics != nil {
		s.metrics.RecordComplaintSubmitted(string(complaint.Priority))
	}
	s.logger.Info("complaint submitted",
		zap.String("complaint_id", complaint.ID),
		zap.String("department", complaint.Department),
		zap.String("priority", string(complaint.Priority)),
	)

	return complaint, nil
}

// ListForStudent returns the student's own complaints, newest first.
func (s *ComplaintService) ListForStudent(ctx context.Context, studentID string) ([]models.Complaint, error) {
	complaints, err := s.repo.List(ctx, models.ComplaintFilter{StudentID: studentID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list complaints")
	}
	return complaints, nil
}

// ListAll returns every complaint, newest first, optionally narrowed to
// one status. An unknown status value is rejected rather than treated
// as an empty filter.
func (s *ComplaintService) ListAll(ctx context.Context, status models.ComplaintStatus) ([]models.Complaint, error) {
	if status != "" && !models.ValidStatus(status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown status filter")
	}
	complaints, err := s.repo.List(ctx, models.ComplaintFilter{Status: status})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list complaints")
	}
	return complaints, nil
}

// Get returns a complaint by id.
func (s *ComplaintService) Get(ctx context.Context, id string) (*models.Complaint, error) {
	complaint, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "complaint not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load complaint")
	}
	return complaint, nil
}

// SetStatus overwrites the status unconditionally and returns the
// updated record. There is no transition validation; concurrent writes
// are last-writer-wins.
func (s *ComplaintService) SetStatus(ctx context.Context, id string, status models.ComplaintStatus) (*models.Complaint, error) {
	if !models.ValidStatus(status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown complaint status")
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update status")
	}
	if !updated {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "complaint not found")
	}

	return s.Get(ctx, id)
}

// Stats aggregates per-status complaint counts.
func (s *ComplaintService) Stats(ctx context.Context) (*models.ComplaintStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate stats")
	}
	return stats, nil
}
