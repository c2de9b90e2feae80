package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-complaint-portal/internal/models"
	"github.com/noah-isme/campus-complaint-portal/internal/service"
	"github.com/noah-isme/campus-complaint-portal/pkg/config"
	appErrors "github.com/noah-isme/campus-complaint-portal/pkg/errors"
	"github.com/noah-isme/campus-complaint-portal/pkg/render"
)

// AuthHandler serves the login page and manages the session cookie.
type AuthHandler struct {
	service *service.AuthService
	session config.SessionConfig
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, session config.SessionConfig) *AuthHandler {
	return &AuthHandler{service: svc, session: session}
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	render.Page(c, http.StatusOK, "login.gohtml", nil)
}

// Login authenticates the posted credentials. Failed authentication
// re-renders the form with the error message and HTTP 200; success sets
// the session cookie and redirects by role.
func (h *AuthHandler) Login(c *gin.Context) {
	var form models.LoginForm
	_ = c.ShouldBind(&form)

	meta := service.RequestMeta{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
	user, err := h.service.Login(c.Request.Context(), form, meta)
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) && (appErr.Code == appErrors.ErrInvalidCredentials.Code || appErr.Code == appErrors.ErrInactiveAccount.Code) {
			render.Page(c, http.StatusOK, "login.gohtml", gin.H{
				"Error":    appErr.Message,
				"Username": form.Username,
			})
			return
		}
		render.Error(c, err)
		return
	}

	role, err := h.service.Classify(c.Request.Context(), user)
	if err != nil {
		render.Error(c, err)
		return
	}

	token, err := h.service.IssueSession(user, role)
	if err != nil {
		render.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName, token, int(h.session.Expiration.Seconds()), "/", "", h.session.Secure, true)

	render.Redirect(c, service.DashboardPath(role))
}

// Logout clears the session cookie and returns to the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	if claims := claimsFromContext(c); claims != nil {
		meta := service.RequestMeta{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
		h.service.RecordLogout(c.Request.Context(), claims.UserID, meta)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName, "", -1, "/", "", h.session.Secure, true)

	render.Redirect(c, "/")
}
