package services

import (
	"context"

	"github.com/hamrosewa/backend/internal/apperr"
	"github.com/hamrosewa/backend/internal/models"
)

type ReviewService struct {
	reviewRepo  models.ReviewRepo
	bookingRepo models.BookingRepo
	catalogRepo models.CatalogRepo
	userRepo    models.UserRepo
}

func NewReviewService(
	reviewRepo models.ReviewRepo,
	bookingRepo models.BookingRepo,
	catalogRepo models.CatalogRepo,
	userRepo models.UserRepo,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		userRepo:    userRepo,
	}
}

type CreateReviewInput struct {
	BookingID int64  `json:"booking_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// Create records a review for a completed booking. Only the booking's
// customer may review it, exactly once.
func (rs *ReviewService) Create(ctx context.Context, customerID int64, in *CreateReviewInput) (*models.Review, error) {
	if err := models.Validate.Struct(in); err != nil {
		return nil, apperr.Validationf("invalid review request: %v", err)
	}

	booking, err := rs.bookingRepo.GetBookingByID(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != customerID {
		return nil, apperr.Unauthorizedf("you can only review your own bookings")
	}
	if booking.Status != models.BookingCompleted {
		return nil, apperr.Validationf("only completed bookings can be reviewed")
	}

	existing, err := rs.reviewRepo.GetReviewByBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Validationf("you have already reviewed this booking")
	}

	service, err := rs.catalogRepo.GetServiceByID(ctx, booking.ServiceID)
	if err != nil {
		return nil, err
	}

	row := map[string]interface{}{
		"booking_id":  in.BookingID,
		"customer_id": customerID,
		"provider_id": service.ProviderID,
		"rating":      in.Rating,
		"comment":     in.Comment,
	}
	return rs.reviewRepo.CreateReview(ctx, row)
}

// ListForCustomer returns the reviews a customer has written, shaped for
// the My Reviews screen.
func (rs *ReviewService) ListForCustomer(ctx context.Context, customerID int64) ([]*models.ReviewListing, error) {
	reviews, err := rs.reviewRepo.ListReviewsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return rs.enrich(ctx, reviews, true), nil
}

// ListForProvider returns the reviews written against a provider.
func (rs *ReviewService) ListForProvider(ctx context.Context, providerID int64) ([]*models.ReviewListing, error) {
	reviews, err := rs.reviewRepo.ListReviewsByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return rs.enrich(ctx, reviews, false), nil
}

func (rs *ReviewService) enrich(ctx context.Context, reviews []*models.Review, withProvider bool) []*models.ReviewListing {
	out := make([]*models.ReviewListing, 0, len(reviews))
	for _, r := range reviews {
		listing := &models.ReviewListing{
			ID:      r.ID,
			Rating:  r.Rating,
			Comment: r.Comment,
			Date:    r.CreatedAt,
		}
		if booking, err := rs.bookingRepo.GetBookingByID(ctx, r.BookingID); err == nil {
			if service, err := rs.catalogRepo.GetServiceByID(ctx, booking.ServiceID); err == nil {
				listing.ServiceTitle = service.Title
			}
		}
		if withProvider {
			if provider, err := rs.userRepo.GetUserByID(ctx, r.ProviderID); err == nil {
				listing.ProviderName = provider.Username
			}
		} else {
			if customer, err := rs.userRepo.GetUserByID(ctx, r.CustomerID); err == nil {
				listing.CustomerName = customer.Username
			}
		}
		out = append(out, listing)
	}
	return out
}
