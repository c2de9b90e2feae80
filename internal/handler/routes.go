package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-complaint-portal/internal/middleware"
	"github.com/noah-isme/campus-complaint-portal/internal/models"
	"github.com/noah-isme/campus-complaint-portal/internal/service"
	"github.com/noah-isme/campus-complaint-portal/pkg/config"
)

// Routes bundles the handlers registered on the router.
type Routes struct {
	Auth      *AuthHandler
	Complaint *ComplaintHandler
	Dashboard *DashboardHandler
}

// Register wires every page and action onto the router. Session pages
// redirect unauthenticated browsers to the login form; staff pages
// additionally require a staff or admin role.
func Register(r *gin.Engine, routes Routes, authService *service.AuthService, metricsSvc *service.MetricsService, session config.SessionConfig) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	r.GET("/", routes.Auth.LoginPage)
	r.POST("/", routes.Auth.Login)

	authed := r.Group("/", middleware.Session(authService, session.CookieName))
	{
		authed.GET("/student/", routes.Complaint.StudentDashboard)
		authed.GET("/create/", routes.Complaint.NewComplaintForm)
		authed.POST("/create/", routes.Complaint.CreateComplaint)
		authed.GET("/logout/", routes.Auth.Logout)
		authed.POST("/logout/", routes.Auth.Logout)

		staff := authed.Group("/", middleware.RequireRoles(models.RoleStaff, models.RoleAdmin))
		{
			staff.GET("/staff/", routes.Dashboard.StaffDashboard)
			staff.GET("/staff/export", routes.Dashboard.Export)
			staff.POST("/update-status/:id/", routes.Complaint.UpdateStatus)
			staff.GET("/update-status/:id/", routes.Complaint.UpdateStatusRedirect)
		}

		admin := authed.Group("/", middleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/admin/", routes.Dashboard.AdminConsole)
		}
	}
}
