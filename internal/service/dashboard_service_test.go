package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-complaint-portal/internal/models"
	appErrors "github.com/noah-isme/campus-complaint-portal/pkg/errors"
)

type fakeCacheRepo struct {
	entries map[string][]byte
	sets    int
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := f.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if f.entries == nil {
		f.entries = make(map[string][]byte)
	}
	f.entries[key] = raw
	f.sets++
	return nil
}

func (f *fakeCacheRepo) Delete(ctx context.Context, key string) error {
	delete(f.entries, key)
	return nil
}

func newTestDashboardService(repo *mockComplaintRepo, cacheRepo *fakeCacheRepo) *DashboardService {
	complaints := newTestComplaintService(repo)
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	return NewDashboardService(complaints, cacheSvc, time.Minute, zap.NewNop())
}

func TestDashboardServiceStatsCaching(t *testing.T) {
	repo := &mockComplaintRepo{stats: &models.ComplaintStats{Total: 5, Pending: 2, InProgress: 1, Resolved: 2}}
	cacheRepo := &fakeCacheRepo{}
	svc := newTestDashboardService(repo, cacheRepo)
	ctx := context.Background()

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, cacheRepo.sets)

	// Second call is served from cache even after the source changes.
	repo.stats = &models.ComplaintStats{Total: 99}
	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, cacheRepo.sets)

	svc.InvalidateStats(ctx)
	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 99, stats.Total)
}

func TestDashboardServiceExportCSV(t *testing.T) {
	repo := &mockComplaintRepo{complaints: []models.Complaint{
		{
			ID:              "c1",
			StudentID:       "student-1",
			StudentUsername: "alice",
			Title:           "Broken AC",
			Department:      "Facilities",
			Status:          models.StatusPending,
			Priority:        models.PriorityHigh,
			CreatedAt:       time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		},
	}}
	svc := newTestDashboardService(repo, &fakeCacheRepo{})

	result, err := svc.Export(context.Background(), ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	body := string(result.Content)
	assert.Contains(t, body, "Submitted,Student,Title,Department,Priority,Status")
	assert.Contains(t, body, "alice")
	assert.Contains(t, body, "Broken AC")
}

func TestDashboardServiceExportPDF(t *testing.T) {
	repo := &mockComplaintRepo{}
	svc := newTestDashboardService(repo, &fakeCacheRepo{})

	result, err := svc.Export(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.NotEmpty(t, result.Content)
}

func TestDashboardServiceExportUnknownFormat(t *testing.T) {
	svc := newTestDashboardService(&mockComplaintRepo{}, &fakeCacheRepo{})

	_, err := svc.Export(context.Background(), ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
