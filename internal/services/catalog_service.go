package services

import (
	"context"
	"strings"

	"github.com/hamrosewa/backend/internal/models"
)

type CatalogService struct {
	catalogRepo models.CatalogRepo
	userRepo    models.UserRepo
	reviewRepo  models.ReviewRepo
}

func NewCatalogService(catalogRepo models.CatalogRepo, userRepo models.UserRepo, reviewRepo models.ReviewRepo) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		userRepo:    userRepo,
		reviewRepo:  reviewRepo,
	}
}

func (cs *CatalogService) Categories(ctx context.Context) ([]*models.ServiceCategory, error) {
	return cs.catalogRepo.ListCategories(ctx)
}

// categoryKeywords matches free-text professions to category names.
// Provider professions are whatever the user typed at signup, so the
// match is keyword-based rather than exact.
var categoryKeywords = map[string][]string{
	"plumbing":    {"plumb", "pipe"},
	"electrical":  {"electric", "wiring"},
	"cleaning":    {"clean", "maid", "housekeep"},
	"carpentry":   {"carpent", "wood", "furniture"},
	"painting":    {"paint"},
	"gardening":   {"garden", "landscap"},
	"beauty":      {"beaut", "salon", "makeup", "hair"},
	"appliance":   {"appliance", "repair", "technician"},
	"tutoring":    {"tutor", "teach"},
	"photography": {"photo", "camera"},
}

func professionMatchesCategory(profession, categoryName string) bool {
	profession = strings.ToLower(strings.TrimSpace(profession))
	categoryName = strings.ToLower(strings.TrimSpace(categoryName))
	if profession == "" || categoryName == "" {
		return false
	}
	if strings.Contains(profession, categoryName) || strings.Contains(categoryName, profession) {
		return true
	}
	for key, words := range categoryKeywords {
		if !strings.Contains(categoryName, key) {
			continue
		}
		for _, w := range words {
			if strings.Contains(profession, w) {
				return true
			}
		}
	}
	return false
}

// ProvidersForCategory lists providers whose profession fits a category.
func (cs *CatalogService) ProvidersForCategory(ctx context.Context, categoryID int64) ([]*models.User, error) {
	category, err := cs.catalogRepo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	providers, err := cs.userRepo.ListProviders(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*models.User, 0, len(providers))
	for _, p := range providers {
		if professionMatchesCategory(p.Profession, category.Name) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Services lists active services, optionally filtered by category or
// provider, with the display names the app renders.
func (cs *CatalogService) Services(ctx context.Context, categoryID, providerID *int64) ([]*models.ServiceListing, error) {
	services, err := cs.catalogRepo.ListServices(ctx, categoryID, providerID)
	if err != nil {
		return nil, err
	}

	categoryNames := map[int64]string{}
	if categories, err := cs.catalogRepo.ListCategories(ctx); err == nil {
		for _, c := range categories {
			categoryNames[c.ID] = c.Name
		}
	}

	listings := make([]*models.ServiceListing, 0, len(services))
	for _, svc := range services {
		if svc.Status == models.ServiceInactive {
			continue
		}
		listing := &models.ServiceListing{
			Service:      *svc,
			CategoryName: categoryNames[svc.CategoryID],
		}
		if provider, err := cs.userRepo.GetUserByID(ctx, svc.ProviderID); err == nil {
			listing.ProviderName = provider.Username
			listing.ProviderProfession = provider.Profession
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func (cs *CatalogService) Service(ctx context.Context, id int64) (*models.ServiceListing, error) {
	svc, err := cs.catalogRepo.GetServiceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	listing := &models.ServiceListing{Service: *svc}
	if category, err := cs.catalogRepo.GetCategoryByID(ctx, svc.CategoryID); err == nil {
		listing.CategoryName = category.Name
	}
	if provider, err := cs.userRepo.GetUserByID(ctx, svc.ProviderID); err == nil {
		listing.ProviderName = provider.Username
		listing.ProviderProfession = provider.Profession
	}
	return listing, nil
}

// ProviderRating aggregates a provider's review scores.
func (cs *CatalogService) ProviderRating(ctx context.Context, providerID int64) (avg float64, count int, err error) {
	reviews, err := cs.reviewRepo.ListReviewsByProvider(ctx, providerID)
	if err != nil {
		return 0, 0, err
	}
	if len(reviews) == 0 {
		return 0, 0, nil
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(reviews)), len(reviews), nil
}
