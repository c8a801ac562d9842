package models

import (
	"context"
	"encoding/json"

	"github.com/supabase-community/postgrest-go"

	"github.com/hamrosewa/backend/internal/apperr"
)

type ReviewRepo interface {
	CreateReview(ctx context.Context, row map[string]interface{}) (*Review, error)
	GetReviewByBooking(ctx context.Context, bookingID int64) (*Review, error)
	ListReviewsByCustomer(ctx context.Context, customerID int64) ([]*Review, error)
	ListReviewsByProvider(ctx context.Context, providerID int64) ([]*Review, error)
}

func (su *SupabaseRepo) CreateReview(ctx context.Context, row map[string]interface{}) (*Review, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, count, err := su.supabaseClient.From(ReviewsTable).
		Insert(row, false, "", "representation", "exact").
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to create review")
	}

	var reviews []Review
	if err := json.Unmarshal(raw, &reviews); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal created review")
	}
	if count == 0 || len(reviews) == 0 {
		return nil, apperr.Storagef(nil, "review insert returned no data")
	}
	return &reviews[0], nil
}

// GetReviewByBooking returns (nil, nil) when the booking has no review
// yet; there is at most one per booking.
func (su *SupabaseRepo) GetReviewByBooking(ctx context.Context, bookingID int64) (*Review, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(ReviewsTable).
		Select("*", "", false).
		Eq("booking_id", itoa(bookingID)).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to get review by booking")
	}

	var reviews []Review
	if err := json.Unmarshal(raw, &reviews); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal review rows")
	}
	if len(reviews) == 0 {
		return nil, nil
	}
	return &reviews[0], nil
}

func (su *SupabaseRepo) listReviewsBy(ctx context.Context, column string, id int64) ([]*Review, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(ReviewsTable).
		Select("*", "", false).
		Eq(column, itoa(id)).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(100, "").
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to list reviews by %s", column)
	}

	var reviews []Review
	if err := json.Unmarshal(raw, &reviews); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal review rows")
	}
	out := make([]*Review, 0, len(reviews))
	for i := range reviews {
		out = append(out, &reviews[i])
	}
	return out, nil
}

func (su *SupabaseRepo) ListReviewsByCustomer(ctx context.Context, customerID int64) ([]*Review, error) {
	return su.listReviewsBy(ctx, "customer_id", customerID)
}

func (su *SupabaseRepo) ListReviewsByProvider(ctx context.Context, providerID int64) ([]*Review, error) {
	return su.listReviewsBy(ctx, "provider_id", providerID)
}
