package models

import (
	"testing"
)

func TestCanTransitionBooking(t *testing.T) {
	allowed := []struct{ from, to string }{
		{BookingPending, BookingConfirmed},
		{BookingPending, BookingCancelled},
		{BookingPending, BookingRejected},
		{BookingConfirmed, BookingCompleted},
		{BookingConfirmed, BookingCancelled},
	}
	for _, tc := range allowed {
		if !CanTransitionBooking(tc.from, tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to string }{
		{BookingPending, BookingCompleted},
		{BookingCompleted, BookingPending},
		{BookingCancelled, BookingConfirmed},
		{BookingRejected, BookingPending},
		{BookingConfirmed, BookingPending},
		{BookingCompleted, BookingCancelled},
	}
	for _, tc := range denied {
		if CanTransitionBooking(tc.from, tc.to) {
			t.Errorf("%s -> %s should be denied", tc.from, tc.to)
		}
	}
}

func TestKnownBookingStatus(t *testing.T) {
	for _, s := range []string{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted, BookingRejected} {
		if !KnownBookingStatus(s) {
			t.Errorf("%q should be known", s)
		}
	}
	if KnownBookingStatus("archived") || KnownBookingStatus("") {
		t.Error("unknown statuses accepted")
	}
}
