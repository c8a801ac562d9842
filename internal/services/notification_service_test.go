package services

import (
	"context"
	"strings"
	"testing"

	"github.com/hamrosewa/backend/internal/models"
)

func TestForProviderSynthesizesFeedFromBookings(t *testing.T) {
	users := newFakeUserRepo(
		&models.User{ID: 3, Username: "bikash", Role: models.RoleCustomer},
		&models.User{ID: 20, Username: "ram", Role: models.RoleProvider},
	)
	catalog := newFakeCatalogRepo()
	catalog.services[11] = &models.Service{ID: 11, ProviderID: 20, Title: "Pipe repair"}
	bookings := newFakeBookingRepo(
		&models.Booking{ID: 7, CustomerID: 3, ServiceID: 11, Status: models.BookingPending, BookingDate: "2026-09-01", BookingTime: "10:00"},
		&models.Booking{ID: 8, CustomerID: 3, ServiceID: 11, Status: models.BookingConfirmed},
	)
	svc := NewNotificationService(&fakeNotificationRepo{}, bookings, catalog, users)

	feed, err := svc.ForProvider(context.Background(), 20, 0)
	if err != nil {
		t.Fatalf("ForProvider failed: %v", err)
	}
	// confirmed bookings produce no entry; only the pending request shows
	if len(feed) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(feed))
	}
	if feed[0].Title != "New booking request" {
		t.Errorf("title = %q", feed[0].Title)
	}
	if !strings.Contains(feed[0].Body, "bikash") || !strings.Contains(feed[0].Body, "Pipe repair") {
		t.Errorf("body %q missing customer or service name", feed[0].Body)
	}
}

func TestForCustomerReadsStoredRows(t *testing.T) {
	stored := &fakeNotificationRepo{}
	stored.CreateNotification(context.Background(), map[string]interface{}{
		"user_id":    int64(4),
		"title":      "Booking declined",
		"body":       "ram declined your booking",
		"booking_id": int64(8),
	})
	svc := NewNotificationService(stored, newFakeBookingRepo(), newFakeCatalogRepo(), newFakeUserRepo())

	feed, err := svc.ForCustomer(context.Background(), 4, 0)
	if err != nil {
		t.Fatalf("ForCustomer failed: %v", err)
	}
	if len(feed) != 1 || feed[0].Title != "Booking declined" || feed[0].BookingID != 8 {
		t.Fatalf("unexpected feed: %+v", feed)
	}

	empty, err := svc.ForCustomer(context.Background(), 5, 0)
	if err != nil {
		t.Fatalf("ForCustomer failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty feed for other user, got %d", len(empty))
	}
}
