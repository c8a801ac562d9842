package models

import (
	"time"
)

type Notification struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	BookingID int64     `db:"booking_id" json:"booking_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
