package models

import (
	"strings"
	"time"
)

const (
	ReferralSignedUp      = "signed_up"
	ReferralPointsAwarded = "points_awarded"
)

// Point amounts credited when a referred customer completes their first booking.
const (
	PointsReferrerFirstBooking = 50
	PointsReferredFirstBooking = 25
)

type Referral struct {
	ID             int64     `db:"id" json:"id"`
	ReferrerID     int64     `db:"referrer_id" json:"referrer_id"`
	ReferredUserID int64     `db:"referred_user_id" json:"referred_user_id"`
	Status         string    `db:"status" json:"status"`
	PointsReferrer int       `db:"points_referrer" json:"points_referrer"`
	PointsReferred int       `db:"points_referred" json:"points_referred"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// StatusLabel renders the stored status for display: "signed_up" -> "Signed Up".
func (r *Referral) StatusLabel() string {
	s := r.Status
	if s == "" {
		s = ReferralSignedUp
	}
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ReferralHistoryEntry is one row of the referral-profile response.
type ReferralHistoryEntry struct {
	ReferredUserID int64     `json:"referred_user_id"`
	Status         string    `json:"status"`
	StatusLabel    string    `json:"status_label"`
	PointsEarned   int       `json:"points_earned"`
	CreatedAt      time.Time `json:"created_at"`
}

type ReferralProfile struct {
	ReferralCode    string                 `json:"referral_code"`
	LoyaltyPoints   int                    `json:"loyalty_points"`
	ReferralHistory []ReferralHistoryEntry `json:"referral_history"`
}
