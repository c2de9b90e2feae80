package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-complaint-portal/internal/models"
	appErrors "github.com/noah-isme/campus-complaint-portal/pkg/errors"
	"github.com/noah-isme/campus-complaint-portal/pkg/render"
)

// RequireRoles enforces a required-role predicate on a route. A session
// must already be present; mismatched roles get the 403 page.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			render.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims := claimsValue.(*models.SessionClaims)

		if _, ok := allowed[claims.Role]; !ok {
			render.Error(c, appErrors.Clone(appErrors.ErrForbidden, "this page is restricted to staff"))
			c.Abort()
			return
		}

		c.Next()
	}
}
