package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-complaint-portal/internal/models"
	appErrors "github.com/noah-isme/campus-complaint-portal/pkg/errors"
)

type mockComplaintRepo struct {
	complaints []models.Complaint
	createErr  error
	listErr    error
	stats      *models.ComplaintStats
}

func (m *mockComplaintRepo) Create(ctx context.Context, complaint *models.Complaint) error {
	if m.createErr != nil {
		return m.createErr
	}
	if complaint.ID == "" {
		complaint.ID = "generated"
	}
	if complaint.CreatedAt.IsZero() {
		complaint.CreatedAt = time.Now().UTC()
	}
	m.complaints = append(m.complaints, *complaint)
	return nil
}

func (m *mockComplaintRepo) List(ctx context.Context, filter models.ComplaintFilter) ([]models.Complaint, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.Complaint
	for _, c := range m.complaints {
		if filter.StudentID != "" && c.StudentID != filter.StudentID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *mockComplaintRepo) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	for i := range m.complaints {
		if m.complaints[i].ID == id {
			return &m.complaints[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockComplaintRepo) UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) (bool, error) {
	for i := range m.complaints {
		if m.complaints[i].ID == id {
			m.complaints[i].Status = status
			return true, nil
		}
	}
	return false, nil
}

func (m *mockComplaintRepo) Stats(ctx context.Context) (*models.ComplaintStats, error) {
	if m.stats != nil {
		return m.stats, nil
	}
	return &models.ComplaintStats{Total: len(m.complaints)}, nil
}

func newTestComplaintService(repo *mockComplaintRepo) *ComplaintService {
	return NewComplaintService(repo, validator.New(), nil, zap.NewNop())
}

func TestComplaintServiceSubmit(t *testing.T) {
	repo := &mockComplaintRepo{}
	svc := newTestComplaintService(repo)

	complaint, err := svc.Submit(context.Background(), "student-1", models.ComplaintForm{
		Title:       "Broken AC",
		Description: "The AC in room 204 has been broken for a week",
		Department:  "Facilities",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, complaint.Status)
	assert.Equal(t, "student-1", complaint.StudentID)
	assert.NotEmpty(t, complaint.ID)
	// "broken" alone lands in the high bucket.
	assert.Equal(t, models.PriorityHigh, complaint.Priority)
}

func TestComplaintServiceSubmitRejectsBlankFields(t *testing.T) {
	svc := newTestComplaintService(&mockComplaintRepo{})

	cases := []models.ComplaintForm{
		{Title: "", Description: "desc", Department: "IT"},
		{Title: "Title", Description: "   ", Department: "IT"},
		{Title: "Title", Description: "desc", Department: ""},
	}
	for _, form := range cases {
		_, err := svc.Submit(context.Background(), "student-1", form)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestComplaintServiceListForStudentFiltersOwner(t *testing.T) {
	repo := &mockComplaintRepo{complaints: []models.Complaint{
		{ID: "c1", StudentID: "student-1", Status: models.StatusPending},
		{ID: "c2", StudentID: "student-2", Status: models.StatusPending},
	}}
	svc := newTestComplaintService(repo)

	complaints, err := svc.ListForStudent(context.Background(), "student-1")
	require.NoError(t, err)
	require.Len(t, complaints, 1)
	assert.Equal(t, "c1", complaints[0].ID)
}

func TestComplaintServiceListAllRejectsUnknownStatus(t *testing.T) {
	svc := newTestComplaintService(&mockComplaintRepo{})

	_, err := svc.ListAll(context.Background(), models.ComplaintStatus("Closed"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestComplaintServiceSetStatus(t *testing.T) {
	repo := &mockComplaintRepo{complaints: []models.Complaint{
		{ID: "c1", StudentID: "student-1", Status: models.StatusPending},
	}}
	svc := newTestComplaintService(repo)

	// Resolved directly from Pending; no transition order is enforced.
	complaint, err := svc.SetStatus(context.Background(), "c1", models.StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, complaint.Status)

	complaint, err = svc.SetStatus(context.Background(), "c1", models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, complaint.Status)
}

func TestComplaintServiceSetStatusUnknownValue(t *testing.T) {
	svc := newTestComplaintService(&mockComplaintRepo{})

	_, err := svc.SetStatus(context.Background(), "c1", models.ComplaintStatus("Escalated"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestComplaintServiceSetStatusMissingComplaint(t *testing.T) {
	svc := newTestComplaintService(&mockComplaintRepo{})

	_, err := svc.SetStatus(context.Background(), "missing", models.StatusResolved)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestComplaintServiceGetMissing(t *testing.T) {
	svc := newTestComplaintService(&mockComplaintRepo{})

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
