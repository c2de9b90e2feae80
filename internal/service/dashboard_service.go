package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-complaint-portal/internal/models"
	appErrors "github.com/noah-isme/campus-complaint-portal/pkg/errors"
	"github.com/noah-isme/campus-complaint-portal/pkg/export"
)

const statsCacheKey = "dashboard:complaint-stats"

// ExportFormat selects the staff download encoding.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult is a rendered complaint listing ready for download.
type ExportResult struct {
	Content     []byte
	Filename    string
	ContentType string
}

// DashboardService aggregates complaint data for the staff and admin
// consoles, caching the expensive summary and rendering exports.
type DashboardService struct {
	complaints *ComplaintService
	cache      *CacheService
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(complaints *ComplaintService, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		complaints: complaints,
		cache:      cache,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// Stats returns complaint volume counts, served from cache when warm.
// A cache failure falls through to the database.
func (s *DashboardService) Stats(ctx context.Context) (*models.ComplaintStats, error) {
	var cached models.ComplaintStats
	if hit, err := s.cache.Get(ctx, statsCacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	stats, err := s.complaints.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, statsCacheKey, stats, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache dashboard stats", zap.Error(err))
	}

	return stats, nil
}

// InvalidateStats drops the cached summary after a mutation.
func (s *DashboardService) InvalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, statsCacheKey); err != nil {
		s.logger.Warn("failed to invalidate dashboard stats", zap.Error(err))
	}
}

// Export renders the complete complaint listing in the given format.
func (s *DashboardService) Export(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	complaints, err := s.complaints.ListAll(ctx, "")
	if err != nil {
		return nil, err
	}

	dataset := complaintDataset(complaints)
	stamp := time.Now().UTC().Format("2006-01-02")

	switch format {
	case ExportFormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{
			Content:     content,
			Filename:    fmt.Sprintf("complaints-%s.csv", stamp),
			ContentType: "text/csv",
		}, nil
	case ExportFormatPDF:
		content, err := s.pdf.Render(dataset, "Campus Complaints")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{
			Content:     content,
			Filename:    fmt.Sprintf("complaints-%s.pdf", stamp),
			ContentType: "application/pdf",
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown export format")
	}
}

func complaintDataset(complaints []models.Complaint) export.Dataset {
	headers := []string{"Submitted", "Student", "Title", "Department", "Priority", "Status"}
	rows := make([]map[string]string, 0, len(complaints))
	for _, c := range complaints {
		rows = append(rows, map[string]string{
			"Submitted":  c.CreatedAt.Format("2006-01-02 15:04"),
			"Student":    c.StudentUsername,
			"Title":      c.Title,
			"Department": c.Department,
			"Priority":   string(c.Priority),
			"Status":     string(c.Status),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
