package models

import (
	"time"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
	BookingRejected  = "rejected"
)

type Booking struct {
	ID          int64     `db:"id" json:"id"`
	CustomerID  int64     `db:"customer_id" json:"customer_id"`
	ServiceID   int64     `db:"service_id" json:"service_id"`
	BookingDate string    `db:"booking_date" json:"booking_date"` // YYYY-MM-DD
	BookingTime string    `db:"booking_time" json:"booking_time"` // HH:MM[:SS]
	Status      string    `db:"status" json:"status"`
	Notes       string    `db:"notes" json:"notes,omitempty"`
	TotalAmount float64   `db:"total_amount" json:"total_amount"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// BookingDetail is a booking enriched with the display names the app
// shows in lists (the store only holds the ids).
type BookingDetail struct {
	Booking
	CustomerName  string `json:"customer_name"`
	ServiceTitle  string `json:"service_title"`
	ProviderName  string `json:"provider_name"`
	ProviderEmail string `json:"provider_email,omitempty"`
	ProviderPhone string `json:"provider_phone,omitempty"`
}

func KnownBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted, BookingRejected:
		return true
	}
	return false
}

// bookingTransitions is the explicit lifecycle policy. The upstream data
// allowed any status to move to any other; here cancelled, rejected and
// completed are terminal and completion requires a confirmed booking.
var bookingTransitions = map[string][]string{
	BookingPending:   {BookingConfirmed, BookingCancelled, BookingRejected},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

func CanTransitionBooking(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
