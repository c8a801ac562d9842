package models

import (
	"context"
	"encoding/json"

	"github.com/hamrosewa/backend/internal/apperr"
)

type BookingRepo interface {
	CreateBooking(ctx context.Context, row map[string]interface{}) (*Booking, error)
	GetBookingByID(ctx context.Context, id int64) (*Booking, error)
	UpdateBooking(ctx context.Context, id int64, patch map[string]interface{}) (*Booking, error)
	ListBookingsByCustomer(ctx context.Context, customerID int64) ([]*Booking, error)
	ListBookingsByService(ctx context.Context, serviceID int64) ([]*Booking, error)
}

func (su *SupabaseRepo) CreateBooking(ctx context.Context, row map[string]interface{}) (*Booking, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, count, err := su.supabaseClient.From(BookingsTable).
		Insert(row, false, "", "representation", "exact").
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to create booking")
	}

	var bookings []Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal created booking")
	}
	if count == 0 || len(bookings) == 0 {
		return nil, apperr.Storagef(nil, "booking insert returned no data")
	}
	return &bookings[0], nil
}

func (su *SupabaseRepo) GetBookingByID(ctx context.Context, id int64) (*Booking, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(BookingsTable).
		Select("*", "", false).
		Eq("id", itoa(id)).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to get booking")
	}

	var bookings []Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal booking rows")
	}
	if len(bookings) == 0 {
		return nil, apperr.NotFoundf("booking not found")
	}
	return &bookings[0], nil
}

func (su *SupabaseRepo) UpdateBooking(ctx context.Context, id int64, patch map[string]interface{}) (*Booking, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, count, err := su.supabaseClient.From(BookingsTable).
		Update(patch, "representation", "exact").
		Eq("id", itoa(id)).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to update booking")
	}
	if count == 0 {
		return nil, apperr.NotFoundf("booking not found")
	}

	var bookings []Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal updated booking")
	}
	if len(bookings) == 0 {
		return nil, apperr.Storagef(nil, "no booking data returned after update")
	}
	return &bookings[0], nil
}

func (su *SupabaseRepo) listBookingsBy(ctx context.Context, column string, id int64) ([]*Booking, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(BookingsTable).
		Select("*", "", false).
		Eq(column, itoa(id)).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to list bookings by %s", column)
	}

	var bookings []Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal booking rows")
	}
	out := make([]*Booking, 0, len(bookings))
	for i := range bookings {
		out = append(out, &bookings[i])
	}
	return out, nil
}

func (su *SupabaseRepo) ListBookingsByCustomer(ctx context.Context, customerID int64) ([]*Booking, error) {
	return su.listBookingsBy(ctx, "customer_id", customerID)
}

func (su *SupabaseRepo) ListBookingsByService(ctx context.Context, serviceID int64) ([]*Booking, error) {
	return su.listBookingsBy(ctx, "service_id", serviceID)
}
