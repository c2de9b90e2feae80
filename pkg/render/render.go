package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/campus-complaint-portal/pkg/errors"
)

// Page renders an HTML template with the provided data.
func Page(c *gin.Context, status int, name string, data gin.H) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	if data == nil {
		data = gin.H{}
	}
	c.HTML(status, name, data)
}

// Redirect issues a See Other redirect, the right verb after form posts
// and harmless for plain GET navigation.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// Error renders the shared error page using the normalised domain error.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	Page(c, appErr.Status, "error.gohtml", gin.H{
		"Code":    appErr.Code,
		"Status":  appErr.Status,
		"Message": appErr.Message,
	})
}
