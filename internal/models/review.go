package models

import (
	"time"
)

type Review struct {
	ID         int64     `db:"id" json:"id"`
	BookingID  int64     `db:"booking_id" json:"booking_id"`
	CustomerID int64     `db:"customer_id" json:"customer_id"`
	ProviderID int64     `db:"provider_id" json:"provider_id"`
	Rating     int       `db:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment    string    `db:"comment" json:"comment"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ReviewListing is a review enriched for the My Reviews / Ratings screens.
type ReviewListing struct {
	ID           int64     `json:"id"`
	ServiceTitle string    `json:"service"`
	ProviderName string    `json:"provider,omitempty"`
	CustomerName string    `json:"customer_name,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Date         time.Time `json:"date"`
}
