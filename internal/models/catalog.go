package models

import (
	"time"
)

type ServiceCategory struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	Icon        string    `db:"icon" json:"icon,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

const (
	ServiceActive   = "active"
	ServiceInactive = "inactive"
	ServicePending  = "pending"
)

type Service struct {
	ID              int64     `db:"id" json:"id"`
	ProviderID      int64     `db:"provider_id" json:"provider_id"`
	CategoryID      int64     `db:"category_id" json:"category_id"`
	Title           string    `db:"title" json:"title"`
	Description     string    `db:"description" json:"description"`
	Price           float64   `db:"price" json:"price"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Location        string    `db:"location" json:"location"`
	Status          string    `db:"status" json:"status"`
	ImageURL        string    `db:"image_url" json:"image_url,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// ServiceListing is a service plus the category/provider names the app
// renders; filled in by the catalog service.
type ServiceListing struct {
	Service
	CategoryName       string `json:"category_name"`
	ProviderName       string `json:"provider_name"`
	ProviderProfession string `json:"provider_profession"`
}
