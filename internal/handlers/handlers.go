package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hamrosewa/backend/internal/apperr"
	"github.com/hamrosewa/backend/internal/helpers"
	"github.com/hamrosewa/backend/internal/models"
)

// currentClaims pulls the authenticated identity set by AuthMiddleware.
func currentClaims(c *gin.Context) (*helpers.EnhancedClaims, bool) {
	raw, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return nil, false
	}
	claims, ok := raw.(*helpers.EnhancedClaims)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid user claims"))
		return nil, false
	}
	return claims, true
}

// actorFromClaims builds the minimal user the services authorize on.
func actorFromClaims(claims *helpers.EnhancedClaims) *models.User {
	return &models.User{
		ID:         claims.UserID,
		Role:       claims.GetSafeRole(),
		Username:   claims.Username,
		Email:      claims.Email,
		Profession: claims.Profession,
	}
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid "+name))
		return 0, false
	}
	return id, true
}

// fail writes a service error with the status its kind maps to.
func fail(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), models.ErrorResponse(err.Error()))
}
