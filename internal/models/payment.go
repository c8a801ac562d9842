package models

import (
	"time"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

type Payment struct {
	ID            int64     `db:"id" json:"id"`
	BookingID     int64     `db:"booking_id" json:"booking_id"`
	TransactionID string    `db:"transaction_id" json:"transaction_id"`
	Amount        float64   `db:"amount" json:"amount"`
	Gateway       string    `db:"gateway" json:"gateway"`
	Status        string    `db:"status" json:"status"`
	RefID         string    `db:"ref_id" json:"ref_id,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
