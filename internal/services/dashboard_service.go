package services

import (
	"context"

	"github.com/hamrosewa/backend/internal/models"
)

type DashboardService struct {
	bookingRepo models.BookingRepo
	catalogRepo models.CatalogRepo
	reviewRepo  models.ReviewRepo
}

func NewDashboardService(bookingRepo models.BookingRepo, catalogRepo models.CatalogRepo, reviewRepo models.ReviewRepo) *DashboardService {
	return &DashboardService{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		reviewRepo:  reviewRepo,
	}
}

// ProviderStats is the provider home-screen summary.
type ProviderStats struct {
	TotalBookings     int     `json:"total_bookings"`
	PendingBookings   int     `json:"pending_bookings"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
	CompletedBookings int     `json:"completed_bookings"`
	TotalEarnings     float64 `json:"total_earnings"`
	AverageRating     float64 `json:"average_rating"`
	ReviewCount       int     `json:"review_count"`
	ServiceCount      int     `json:"service_count"`
}

// ProviderStats aggregates bookings, earnings and ratings across all of
// a provider's services. Earnings count completed bookings only.
func (ds *DashboardService) ProviderStats(ctx context.Context, providerID int64) (*ProviderStats, error) {
	pid := providerID
	services, err := ds.catalogRepo.ListServices(ctx, nil, &pid)
	if err != nil {
		return nil, err
	}

	stats := &ProviderStats{ServiceCount: len(services)}
	for _, svc := range services {
		bookings, err := ds.bookingRepo.ListBookingsByService(ctx, svc.ID)
		if err != nil {
			return nil, err
		}
		for _, b := range bookings {
			stats.TotalBookings++
			switch b.Status {
			case models.BookingPending:
				stats.PendingBookings++
			case models.BookingConfirmed:
				stats.ConfirmedBookings++
			case models.BookingCompleted:
				stats.CompletedBookings++
				stats.TotalEarnings += b.TotalAmount
			}
		}
	}

	reviews, err := ds.reviewRepo.ListReviewsByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	stats.ReviewCount = len(reviews)
	if len(reviews) > 0 {
		total := 0
		for _, r := range reviews {
			total += r.Rating
		}
		stats.AverageRating = float64(total) / float64(len(reviews))
	}
	return stats, nil
}
