package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hamrosewa/backend/internal/models"
)

type NotificationService struct {
	notificationRepo models.NotificationRepo
	bookingRepo      models.BookingRepo
	catalogRepo      models.CatalogRepo
	userRepo         models.UserRepo
}

func NewNotificationService(
	notificationRepo models.NotificationRepo,
	bookingRepo models.BookingRepo,
	catalogRepo models.CatalogRepo,
	userRepo models.UserRepo,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		bookingRepo:      bookingRepo,
		catalogRepo:      catalogRepo,
		userRepo:         userRepo,
	}
}

// NotificationView is what both customer and provider feeds render.
type NotificationView struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	BookingID int64     `json:"booking_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ForCustomer reads the customer's stored notifications.
func (ns *NotificationService) ForCustomer(ctx context.Context, customerID int64, limit int) ([]*NotificationView, error) {
	rows, err := ns.notificationRepo.ListNotificationsByUser(ctx, customerID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*NotificationView, 0, len(rows))
	for _, n := range rows {
		out = append(out, &NotificationView{
			Title:     n.Title,
			Body:      n.Body,
			BookingID: n.BookingID,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

// ForProvider synthesizes a feed from recent bookings against the
// provider's services. Nothing is stored for providers; the feed is a
// projection of booking activity.
func (ns *NotificationService) ForProvider(ctx context.Context, providerID int64, limit int) ([]*NotificationView, error) {
	if limit <= 0 {
		limit = 50
	}
	pid := providerID
	services, err := ns.catalogRepo.ListServices(ctx, nil, &pid)
	if err != nil {
		return nil, err
	}

	var feed []*NotificationView
	for _, svc := range services {
		bookings, err := ns.bookingRepo.ListBookingsByService(ctx, svc.ID)
		if err != nil {
			return nil, err
		}
		for _, b := range bookings {
			customerName := "A customer"
			if customer, err := ns.userRepo.GetUserByID(ctx, b.CustomerID); err == nil {
				customerName = customer.Username
			}
			view := &NotificationView{
				BookingID: b.ID,
				CreatedAt: b.CreatedAt,
			}
			switch b.Status {
			case models.BookingPending:
				view.Title = "New booking request"
				view.Body = fmt.Sprintf("%s requested %s on %s at %s", customerName, svc.Title, b.BookingDate, b.BookingTime)
			case models.BookingCancelled:
				view.Title = "Booking cancelled"
				view.Body = fmt.Sprintf("%s cancelled %s on %s", customerName, svc.Title, b.BookingDate)
				view.CreatedAt = b.UpdatedAt
			case models.BookingCompleted:
				view.Title = "Booking completed"
				view.Body = fmt.Sprintf("%s for %s was marked completed", svc.Title, customerName)
				view.CreatedAt = b.UpdatedAt
			default:
				continue
			}
			feed = append(feed, view)
		}
	}

	sort.Slice(feed, func(i, j int) bool { return feed[i].CreatedAt.After(feed[j].CreatedAt) })
	if len(feed) > limit {
		feed = feed[:limit]
	}
	return feed, nil
}
