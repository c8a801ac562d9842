package services

import (
	"context"

	"github.com/hamrosewa/backend/internal/models"
)

// ContentService serves the home-screen banner carousel and blog list.
type ContentService struct {
	contentRepo models.ContentRepo
}

func NewContentService(contentRepo models.ContentRepo) *ContentService {
	return &ContentService{contentRepo: contentRepo}
}

func (cs *ContentService) Banners(ctx context.Context) ([]*models.PromotionalBanner, error) {
	return cs.contentRepo.ListActiveBanners(ctx)
}

func (cs *ContentService) Blogs(ctx context.Context) ([]*models.Blog, error) {
	return cs.contentRepo.ListBlogs(ctx)
}
