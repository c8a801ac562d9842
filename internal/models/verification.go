package models

import (
	"time"
)

const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// ValidDocumentTypes for provider identity verification.
var ValidDocumentTypes = map[string]bool{
	"work_licence":     true,
	"passport":         true,
	"citizenship_card": true,
	"national_id":      true,
}

type ProviderVerification struct {
	ID             int64     `db:"id" json:"id"`
	ProviderID     int64     `db:"provider_id" json:"provider_id"`
	DocumentType   string    `db:"document_type" json:"document_type"`
	DocumentNumber string    `db:"document_number" json:"document_number,omitempty"`
	DocumentURL    string    `db:"document_url" json:"document_url,omitempty"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
