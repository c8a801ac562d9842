package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hamrosewa/backend/internal/models"
	"github.com/hamrosewa/backend/internal/services"
)

func ListBanners(cs *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		banners, err := cs.Banners(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(banners, ""))
	}
}

func ListBlogs(cs *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blogs, err := cs.Blogs(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(blogs, ""))
	}
}
