package models

import (
	"context"
	"encoding/json"

	"github.com/supabase-community/postgrest-go"

	"github.com/hamrosewa/backend/internal/apperr"
)

type PaymentRepo interface {
	CreatePayment(ctx context.Context, row map[string]interface{}) (*Payment, error)
	GetPaymentByTransactionID(ctx context.Context, transactionID string, pendingOnly bool) (*Payment, error)
	GetLatestPendingPaymentByBooking(ctx context.Context, bookingID int64) (*Payment, error)
	UpdatePayment(ctx context.Context, id int64, patch map[string]interface{}) (*Payment, error)
}

func (su *SupabaseRepo) CreatePayment(ctx context.Context, row map[string]interface{}) (*Payment, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, count, err := su.supabaseClient.From(PaymentsTable).
		Insert(row, false, "", "representation", "exact").
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to create payment")
	}

	var payments []Payment
	if err := json.Unmarshal(raw, &payments); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal created payment")
	}
	if count == 0 || len(payments) == 0 {
		return nil, apperr.Storagef(nil, "payment insert returned no data")
	}
	return &payments[0], nil
}

// GetPaymentByTransactionID returns (nil, nil) when no matching payment
// exists. With pendingOnly set, an already-processed payment is treated
// as absent so success callbacks cannot complete twice.
func (su *SupabaseRepo) GetPaymentByTransactionID(ctx context.Context, transactionID string, pendingOnly bool) (*Payment, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	query := su.supabaseClient.From(PaymentsTable).
		Select("*", "", false).
		Eq("transaction_id", transactionID)
	if pendingOnly {
		query = query.Eq("status", PaymentPending)
	}
	raw, _, err := query.ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to get payment")
	}

	var payments []Payment
	if err := json.Unmarshal(raw, &payments); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal payment rows")
	}
	if len(payments) == 0 {
		return nil, nil
	}
	return &payments[0], nil
}

func (su *SupabaseRepo) GetLatestPendingPaymentByBooking(ctx context.Context, bookingID int64) (*Payment, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(PaymentsTable).
		Select("*", "", false).
		Eq("booking_id", itoa(bookingID)).
		Eq("status", PaymentPending).
		Order("id", &postgrest.OrderOpts{Ascending: false}).
		Limit(1, "").
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to get pending payment")
	}

	var payments []Payment
	if err := json.Unmarshal(raw, &payments); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal payment rows")
	}
	if len(payments) == 0 {
		return nil, nil
	}
	return &payments[0], nil
}

func (su *SupabaseRepo) UpdatePayment(ctx context.Context, id int64, patch map[string]interface{}) (*Payment, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, count, err := su.supabaseClient.From(PaymentsTable).
		Update(patch, "representation", "exact").
		Eq("id", itoa(id)).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to update payment")
	}
	if count == 0 {
		return nil, apperr.NotFoundf("payment not found")
	}

	var payments []Payment
	if err := json.Unmarshal(raw, &payments); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal updated payment")
	}
	if len(payments) == 0 {
		return nil, apperr.Storagef(nil, "no payment data returned after update")
	}
	return &payments[0], nil
}
