package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-complaint-portal/internal/models"
	"github.com/noah-isme/campus-complaint-portal/internal/service"
	"github.com/noah-isme/campus-complaint-portal/pkg/render"
)

// DashboardHandler serves the staff dashboard, the admin console and
// the complaint export download.
type DashboardHandler struct {
	complaints *service.ComplaintService
	dashboard  *service.DashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(complaints *service.ComplaintService, dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{complaints: complaints, dashboard: dashboard}
}

// StaffDashboard lists every complaint, optionally narrowed by status.
func (h *DashboardHandler) StaffDashboard(c *gin.Context) {
	claims := claimsFromContext(c)
	statusFilter := models.ComplaintStatus(c.Query("status"))

	complaints, err := h.complaints.ListAll(c.Request.Context(), statusFilter)
	if err != nil {
		render.Error(c, err)
		return
	}

	render.Page(c, http.StatusOK, "staff_dashboard.gohtml", gin.H{
		"User":         claims,
		"Complaints":   complaints,
		"Statuses":     models.Statuses(),
		"StatusFilter": string(statusFilter),
	})
}

// AdminConsole shows volume statistics alongside the full listing.
func (h *DashboardHandler) AdminConsole(c *gin.Context) {
	claims := claimsFromContext(c)

	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		render.Error(c, err)
		return
	}

	complaints, err := h.complaints.ListAll(c.Request.Context(), "")
	if err != nil {
		render.Error(c, err)
		return
	}

	render.Page(c, http.StatusOK, "admin_console.gohtml", gin.H{
		"User":       claims,
		"Stats":      stats,
		"Complaints": complaints,
		"Statuses":   models.Statuses(),
	})
}

// Export streams the complaint listing as CSV or PDF.
func (h *DashboardHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportFormatCSV)))

	result, err := h.dashboard.Export(c.Request.Context(), format)
	if err != nil {
		render.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
