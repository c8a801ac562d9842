package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hamrosewa/backend/internal/apperr"
	"github.com/hamrosewa/backend/internal/models"
)

type BookingService struct {
	bookingRepo      models.BookingRepo
	catalogRepo      models.CatalogRepo
	userRepo         models.UserRepo
	notificationRepo models.NotificationRepo
	referralService  *ReferralService
}

func NewBookingService(
	bookingRepo models.BookingRepo,
	catalogRepo models.CatalogRepo,
	userRepo models.UserRepo,
	notificationRepo models.NotificationRepo,
	referralService *ReferralService,
) *BookingService {
	return &BookingService{
		bookingRepo:      bookingRepo,
		catalogRepo:      catalogRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		referralService:  referralService,
	}
}

type CreateBookingInput struct {
	ServiceID   int64   `json:"service_id" validate:"required"`
	BookingDate string  `json:"booking_date" validate:"required"`
	BookingTime string  `json:"booking_time" validate:"required"`
	Notes       string  `json:"notes"`
	TotalAmount float64 `json:"total_amount"`
}

func (bs *BookingService) Create(ctx context.Context, customerID int64, in *CreateBookingInput) (*models.Booking, error) {
	if err := models.Validate.Struct(in); err != nil {
		return nil, apperr.Validationf("invalid booking request: %v", err)
	}
	if _, err := time.Parse("2006-01-02", in.BookingDate); err != nil {
		return nil, apperr.Validationf("booking_date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", in.BookingTime); err != nil {
		if _, err := time.Parse("15:04:05", in.BookingTime); err != nil {
			return nil, apperr.Validationf("booking_time must be HH:MM")
		}
	}

	service, err := bs.catalogRepo.GetServiceByID(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	amount := in.TotalAmount
	if amount <= 0 {
		amount = service.Price
	}

	row := map[string]interface{}{
		"customer_id":  customerID,
		"service_id":   service.ID,
		"booking_date": in.BookingDate,
		"booking_time": in.BookingTime,
		"status":       models.BookingPending,
		"notes":        in.Notes,
		"total_amount": amount,
	}
	booking, err := bs.bookingRepo.CreateBooking(ctx, row)
	if err != nil {
		return nil, err
	}

	slog.Info("booking created", "booking_id", booking.ID, "customer_id", customerID, "service_id", service.ID)
	return booking, nil
}

// UpdateStatus applies a lifecycle transition on behalf of an actor.
// Customers may only cancel their own bookings; the provider who owns
// the booked service may confirm, reject, cancel or complete. Terminal
// states never move again.
func (bs *BookingService) UpdateStatus(ctx context.Context, actor *models.User, bookingID int64, newStatus string) (*models.Booking, error) {
	if !models.KnownBookingStatus(newStatus) {
		return nil, apperr.Validationf("unknown booking status %q", newStatus)
	}

	booking, err := bs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	service, err := bs.catalogRepo.GetServiceByID(ctx, booking.ServiceID)
	if err != nil {
		return nil, err
	}

	isCustomer := actor.ID == booking.CustomerID
	isProvider := actor.ID == service.ProviderID
	switch {
	case isCustomer && !isProvider:
		if newStatus != models.BookingCancelled {
			return nil, apperr.Unauthorizedf("customers can only cancel bookings")
		}
	case isProvider:
		// providers may apply any permitted transition
	default:
		return nil, apperr.Unauthorizedf("not your booking")
	}

	if booking.Status == newStatus {
		return booking, nil
	}
	if !models.CanTransitionBooking(booking.Status, newStatus) {
		return nil, apperr.Validationf("cannot move booking from %s to %s", booking.Status, newStatus)
	}

	updated, err := bs.bookingRepo.UpdateBooking(ctx, bookingID, map[string]interface{}{
		"status":     newStatus,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}
	slog.Info("booking status changed",
		"booking_id", bookingID, "from", booking.Status, "to", newStatus, "actor_id", actor.ID)

	// Side effects are best-effort: the transition already happened and
	// is not rolled back if a notification or points write fails.
	if isProvider && (newStatus == models.BookingCancelled || newStatus == models.BookingRejected) {
		bs.notifyDeclined(ctx, updated, service)
	}
	if newStatus == models.BookingCompleted && bs.referralService != nil {
		if err := bs.referralService.AwardIfEligible(ctx, booking.CustomerID); err != nil {
			slog.Error("referral award failed", "booking_id", bookingID, "error", err)
		}
	}

	return updated, nil
}

func (bs *BookingService) notifyDeclined(ctx context.Context, booking *models.Booking, service *models.Service) {
	provider, err := bs.userRepo.GetUserByID(ctx, service.ProviderID)
	providerName := service.Title
	if err == nil {
		providerName = provider.Username
	}
	row := map[string]interface{}{
		"user_id":    booking.CustomerID,
		"title":      "Booking declined",
		"body":       fmt.Sprintf("%s declined your booking for %s on %s", providerName, service.Title, booking.BookingDate),
		"booking_id": booking.ID,
	}
	if _, err := bs.notificationRepo.CreateNotification(ctx, row); err != nil {
		slog.Error("decline notification failed", "booking_id", booking.ID, "error", err)
	}
}

// ListForUser returns the bookings a user can see, enriched with the
// names the app renders. Customers see their own bookings; providers see
// bookings against their services.
func (bs *BookingService) ListForUser(ctx context.Context, user *models.User) ([]*models.BookingDetail, error) {
	var bookings []*models.Booking
	if user.Role == models.RoleProvider {
		providerID := user.ID
		services, err := bs.catalogRepo.ListServices(ctx, nil, &providerID)
		if err != nil {
			return nil, err
		}
		for _, svc := range services {
			part, err := bs.bookingRepo.ListBookingsByService(ctx, svc.ID)
			if err != nil {
				return nil, err
			}
			bookings = append(bookings, part...)
		}
	} else {
		var err error
		bookings, err = bs.bookingRepo.ListBookingsByCustomer(ctx, user.ID)
		if err != nil {
			return nil, err
		}
	}

	details := make([]*models.BookingDetail, 0, len(bookings))
	for _, b := range bookings {
		detail := &models.BookingDetail{Booking: *b}
		if service, err := bs.catalogRepo.GetServiceByID(ctx, b.ServiceID); err == nil {
			detail.ServiceTitle = service.Title
			if provider, err := bs.userRepo.GetUserByID(ctx, service.ProviderID); err == nil {
				detail.ProviderName = provider.Username
				detail.ProviderEmail = provider.Email
				detail.ProviderPhone = provider.Phone
			}
		}
		if customer, err := bs.userRepo.GetUserByID(ctx, b.CustomerID); err == nil {
			detail.CustomerName = customer.Username
		}
		details = append(details, detail)
	}
	return details, nil
}

func (bs *BookingService) Get(ctx context.Context, user *models.User, bookingID int64) (*models.Booking, error) {
	booking, err := bs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID == user.ID {
		return booking, nil
	}
	service, err := bs.catalogRepo.GetServiceByID(ctx, booking.ServiceID)
	if err != nil {
		return nil, err
	}
	if service.ProviderID != user.ID && user.Role != models.RoleAdmin {
		return nil, apperr.Unauthorizedf("not your booking")
	}
	return booking, nil
}
