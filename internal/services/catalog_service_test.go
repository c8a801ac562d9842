package services

import (
	"context"
	"testing"

	"github.com/hamrosewa/backend/internal/models"
)

func TestProfessionMatchesCategory(t *testing.T) {
	cases := []struct {
		profession string
		category   string
		want       bool
	}{
		{"Plumber", "Plumbing", true},
		{"pipe fitter", "Plumbing", true},
		{"Electrician", "Electrical Services", true},
		{"House Cleaner", "Cleaning", true},
		{"makeup artist", "Beauty & Salon", true},
		{"Plumber", "Electrical Services", false},
		{"", "Plumbing", false},
		{"Gardener", "", false},
	}
	for _, tc := range cases {
		if got := professionMatchesCategory(tc.profession, tc.category); got != tc.want {
			t.Errorf("professionMatchesCategory(%q, %q) = %v, want %v", tc.profession, tc.category, got, tc.want)
		}
	}
}

func TestProvidersForCategory(t *testing.T) {
	users := newFakeUserRepo(
		&models.User{ID: 20, Username: "ram", Role: models.RoleProvider, Profession: "Plumber"},
		&models.User{ID: 21, Username: "hari", Role: models.RoleProvider, Profession: "Electrician"},
		&models.User{ID: 3, Username: "bikash", Role: models.RoleCustomer, Profession: "Plumber"},
	)
	catalog := newFakeCatalogRepo()
	catalog.categories[1] = &models.ServiceCategory{ID: 1, Name: "Plumbing"}
	svc := NewCatalogService(catalog, users, &fakeReviewRepo{})

	providers, err := svc.ProvidersForCategory(context.Background(), 1)
	if err != nil {
		t.Fatalf("ProvidersForCategory failed: %v", err)
	}
	if len(providers) != 1 || providers[0].ID != 20 {
		t.Fatalf("expected only provider 20, got %+v", providers)
	}
}

func TestServicesSkipsInactiveAndEnriches(t *testing.T) {
	users := newFakeUserRepo(
		&models.User{ID: 20, Username: "ram", Role: models.RoleProvider, Profession: "Plumber"},
	)
	catalog := newFakeCatalogRepo()
	catalog.categories[1] = &models.ServiceCategory{ID: 1, Name: "Plumbing"}
	catalog.services[11] = &models.Service{ID: 11, ProviderID: 20, CategoryID: 1, Title: "Pipe repair", Status: models.ServiceActive}
	catalog.services[12] = &models.Service{ID: 12, ProviderID: 20, CategoryID: 1, Title: "Old offer", Status: models.ServiceInactive}
	svc := NewCatalogService(catalog, users, &fakeReviewRepo{})

	listings, err := svc.Services(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Services failed: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 active listing, got %d", len(listings))
	}
	l := listings[0]
	if l.CategoryName != "Plumbing" || l.ProviderName != "ram" || l.ProviderProfession != "Plumber" {
		t.Errorf("listing not enriched: %+v", l)
	}
}

func TestProviderRating(t *testing.T) {
	reviews := &fakeReviewRepo{}
	reviews.CreateReview(context.Background(), map[string]interface{}{"provider_id": int64(20), "rating": 5})
	reviews.CreateReview(context.Background(), map[string]interface{}{"provider_id": int64(20), "rating": 4})
	svc := NewCatalogService(newFakeCatalogRepo(), newFakeUserRepo(), reviews)

	avg, count, err := svc.ProviderRating(context.Background(), 20)
	if err != nil {
		t.Fatalf("ProviderRating failed: %v", err)
	}
	if count != 2 || avg != 4.5 {
		t.Errorf("rating = %v over %d reviews, want 4.5 over 2", avg, count)
	}

	avg, count, err = svc.ProviderRating(context.Background(), 99)
	if err != nil || count != 0 || avg != 0 {
		t.Errorf("no reviews: got avg=%v count=%d err=%v", avg, count, err)
	}
}
