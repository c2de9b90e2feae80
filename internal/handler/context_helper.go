package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-complaint-portal/internal/middleware"
	"github.com/noah-isme/campus-complaint-portal/internal/models"
)

func claimsFromContext(c *gin.Context) *models.SessionClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}
