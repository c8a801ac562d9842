package models

import (
	"time"
)

type PasswordReset struct {
	ID           int64     `db:"id" json:"id"`
	ContactType  string    `db:"contact_type" json:"contact_type"` // "email" or "phone"
	ContactValue string    `db:"contact_value" json:"contact_value"`
	Code         string    `db:"code" json:"code"`
	ResetToken   string    `db:"reset_token" json:"reset_token,omitempty"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

func (pr *PasswordReset) Expired(now time.Time) bool {
	return !pr.ExpiresAt.IsZero() && now.After(pr.ExpiresAt)
}
