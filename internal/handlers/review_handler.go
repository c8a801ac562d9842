package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hamrosewa/backend/internal/models"
	"github.com/hamrosewa/backend/internal/services"
)

func CreateReview(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}

		var in services.CreateReviewInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		review, err := rs.Create(c.Request.Context(), claims.UserID, &in)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(review, "review submitted"))
	}
}

// MyReviews lists the caller's reviews: written by them for customers,
// received for providers.
func MyReviews(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}

		var listings []*models.ReviewListing
		var err error
		if claims.IsProvider() {
			listings, err = rs.ListForProvider(c.Request.Context(), claims.UserID)
		} else {
			listings, err = rs.ListForCustomer(c.Request.Context(), claims.UserID)
		}
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(listings, ""))
	}
}

func ProviderReviews(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		providerID, ok := idParam(c, "id")
		if !ok {
			return
		}

		listings, err := rs.ListForProvider(c.Request.Context(), providerID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(listings, ""))
	}
}
