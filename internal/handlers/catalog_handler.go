package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hamrosewa/backend/internal/models"
	"github.com/hamrosewa/backend/internal/services"
)

func ListCategories(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := cs.Categories(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(categories, ""))
	}
}

func CategoryProviders(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, ok := idParam(c, "id")
		if !ok {
			return
		}

		providers, err := cs.ProvidersForCategory(c.Request.Context(), categoryID)
		if err != nil {
			fail(c, err)
			return
		}

		// strip store-only fields down to what the list screen needs
		out := make([]gin.H, 0, len(providers))
		for _, p := range providers {
			out = append(out, gin.H{
				"id":         p.ID,
				"username":   p.Username,
				"profession": p.Profession,
			})
		}
		c.JSON(http.StatusOK, models.SuccessResponse(out, ""))
	}
}

func ListServices(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categoryID, providerID *int64
		if v := c.Query("category_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid category_id"))
				return
			}
			categoryID = &id
		}
		if v := c.Query("provider_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid provider_id"))
				return
			}
			providerID = &id
		}

		listings, err := cs.Services(c.Request.Context(), categoryID, providerID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(listings, ""))
	}
}

func GetService(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}

		listing, err := cs.Service(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(listing, ""))
	}
}

func ProviderRating(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		providerID, ok := idParam(c, "id")
		if !ok {
			return
		}

		avg, count, err := cs.ProviderRating(c.Request.Context(), providerID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"average_rating": avg,
			"review_count":   count,
		}, ""))
	}
}
