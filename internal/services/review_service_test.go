package services

import (
	"context"
	"testing"

	"github.com/hamrosewa/backend/internal/apperr"
	"github.com/hamrosewa/backend/internal/models"
)

func reviewFixture() (*ReviewService, *fakeReviewRepo) {
	users := newFakeUserRepo(
		&models.User{ID: 3, Username: "bikash", Role: models.RoleCustomer},
		&models.User{ID: 20, Username: "ram", Role: models.RoleProvider},
	)
	catalog := newFakeCatalogRepo()
	catalog.services[11] = &models.Service{ID: 11, ProviderID: 20, Title: "Pipe repair"}
	bookings := newFakeBookingRepo(
		&models.Booking{ID: 7, CustomerID: 3, ServiceID: 11, Status: models.BookingCompleted},
		&models.Booking{ID: 8, CustomerID: 3, ServiceID: 11, Status: models.BookingConfirmed},
	)
	reviews := &fakeReviewRepo{}
	return NewReviewService(reviews, bookings, catalog, users), reviews
}

func TestCreateReviewHappyPath(t *testing.T) {
	svc, _ := reviewFixture()

	review, err := svc.Create(context.Background(), 3, &CreateReviewInput{
		BookingID: 7,
		Rating:    5,
		Comment:   "fixed it fast",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if review.ProviderID != 20 {
		t.Errorf("provider_id = %d, want 20 (resolved from the service)", review.ProviderID)
	}
}

func TestCreateReviewRejectsSecondReview(t *testing.T) {
	svc, _ := reviewFixture()

	if _, err := svc.Create(context.Background(), 3, &CreateReviewInput{BookingID: 7, Rating: 5}); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	_, err := svc.Create(context.Background(), 3, &CreateReviewInput{BookingID: 7, Rating: 1})
	if !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("second review: expected validation error, got %v", err)
	}
}

func TestCreateReviewRequiresCompletedOwnBooking(t *testing.T) {
	svc, reviews := reviewFixture()

	_, err := svc.Create(context.Background(), 3, &CreateReviewInput{BookingID: 8, Rating: 4})
	if !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("confirmed booking: expected validation error, got %v", err)
	}

	_, err = svc.Create(context.Background(), 99, &CreateReviewInput{BookingID: 7, Rating: 4})
	if !apperr.IsKind(err, apperr.Unauthorized) {
		t.Fatalf("someone else's booking: expected unauthorized, got %v", err)
	}

	if len(reviews.reviews) != 0 {
		t.Errorf("rejected reviews were stored: %d", len(reviews.reviews))
	}
}

func TestCreateReviewValidatesRating(t *testing.T) {
	svc, _ := reviewFixture()

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), 3, &CreateReviewInput{BookingID: 7, Rating: rating})
		if !apperr.IsKind(err, apperr.Validation) {
			t.Errorf("rating %d: expected validation error, got %v", rating, err)
		}
	}
}
