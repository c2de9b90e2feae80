package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-complaint-portal/internal/models"
	"github.com/noah-isme/campus-complaint-portal/internal/service"
	appErrors "github.com/noah-isme/campus-complaint-portal/pkg/errors"
	"github.com/noah-isme/campus-complaint-portal/pkg/render"
)

// ComplaintHandler serves the student-facing complaint pages and the
// staff status-update action.
type ComplaintHandler struct {
	complaints *service.ComplaintService
	dashboard  *service.DashboardService
}

// NewComplaintHandler constructs the handler.
func NewComplaintHandler(complaints *service.ComplaintService, dashboard *service.DashboardService) *ComplaintHandler {
	return &ComplaintHandler{complaints: complaints, dashboard: dashboard}
}

// StudentDashboard lists the signed-in student's own complaints.
func (h *ComplaintHandler) StudentDashboard(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		render.Error(c, appErrors.ErrUnauthorized)
		return
	}

	complaints, err := h.complaints.ListForStudent(c.Request.Context(), claims.UserID)
	if err != nil {
		render.Error(c, err)
		return
	}

	render.Page(c, http.StatusOK, "student_dashboard.gohtml", gin.H{
		"User":       claims,
		"Complaints": complaints,
	})
}

// NewComplaintForm renders the submission form.
func (h *ComplaintHandler) NewComplaintForm(c *gin.Context) {
	claims := claimsFromContext(c)
	render.Page(c, http.StatusOK, "create_complaint.gohtml", gin.H{"User": claims})
}

// CreateComplaint persists the posted complaint and returns the student
// to their dashboard. Validation failures re-render the form with the
// entered values preserved.
func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		render.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var form models.ComplaintForm
	_ = c.ShouldBind(&form)

	if _, err := h.complaints.Submit(c.Request.Context(), claims.UserID, form); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) && appErr.Code == appErrors.ErrValidation.Code {
			render.Page(c, http.StatusBadRequest, "create_complaint.gohtml", gin.H{
				"User":  claims,
				"Error": appErr.Message,
				"Form":  form,
			})
			return
		}
		render.Error(c, err)
		return
	}

	h.dashboard.InvalidateStats(c.Request.Context())

	render.Redirect(c, "/student/")
}

// UpdateStatus sets a complaint's status and returns to the staff
// dashboard. A missing complaint gets the 404 page; an unknown status
// value gets the 400 page.
func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	var form models.StatusForm
	_ = c.ShouldBind(&form)

	if _, err := h.complaints.SetStatus(c.Request.Context(), c.Param("id"), models.ComplaintStatus(form.Status)); err != nil {
		render.Error(c, err)
		return
	}

	h.dashboard.InvalidateStats(c.Request.Context())

	render.Redirect(c, "/staff/")
}

// UpdateStatusRedirect handles non-POST navigation to the status-update
// path: nothing is mutated, the browser is sent back to the dashboard.
func (h *ComplaintHandler) UpdateStatusRedirect(c *gin.Context) {
	render.Redirect(c, "/staff/")
}
