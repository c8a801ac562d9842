package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hamrosewa/backend/internal/models"
	"github.com/hamrosewa/backend/internal/services"
)

func ProviderDashboard(ds *services.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}

		stats, err := ds.ProviderStats(c.Request.Context(), claims.UserID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(stats, ""))
	}
}
