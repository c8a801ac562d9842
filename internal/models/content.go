package models

import (
	"time"
)

// PromotionalBanner and Blog feed the home screen carousels. Read-only
// from the API; rows are managed from the admin side.
type PromotionalBanner struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description,omitempty"`
	ImageURL    string    `db:"image_url" json:"image_url,omitempty"`
	LinkURL     string    `db:"link_url" json:"link_url,omitempty"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	SortOrder   int       `db:"sort_order" json:"sort_order"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Blog struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	Excerpt   string    `db:"excerpt" json:"excerpt,omitempty"`
	ImageURL  string    `db:"image_url" json:"image_url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
