package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hamrosewa/backend/internal/models"
	"github.com/hamrosewa/backend/internal/services"
)

// ListNotifications serves both roles: customers read their stored
// feed, providers get one synthesized from booking activity.
func ListNotifications(ns *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}

		limit := 0
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}

		var feed []*services.NotificationView
		var err error
		if claims.IsProvider() {
			feed, err = ns.ForProvider(c.Request.Context(), claims.UserID, limit)
		} else {
			feed, err = ns.ForCustomer(c.Request.Context(), claims.UserID, limit)
		}
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(feed, ""))
	}
}
