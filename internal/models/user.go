package models

import (
	"time"
)

const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

type User struct {
	ID            int64     `db:"id" json:"id"`
	Username      string    `db:"username" json:"username"`
	Email         string    `db:"email" json:"email" validate:"required,email"`
	Phone         string    `db:"phone" json:"phone,omitempty"`
	Password      string    `db:"password" json:"password,omitempty"`
	Role          string    `db:"role" json:"role"`
	Profession    string    `db:"profession" json:"profession,omitempty"`
	IsVerified    bool      `db:"is_verified" json:"is_verified"`
	ReferralCode  string    `db:"referral_code" json:"referral_code,omitempty"`
	LoyaltyPoints int       `db:"loyalty_points" json:"loyalty_points"`
	ReferredByID  *int64    `db:"referred_by_id" json:"referred_by_id,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// UserProfile is the user shape returned to clients. The password hash
// never leaves the service layer.
type UserProfile struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	Profession    string `json:"profession"`
	IsVerified    bool   `json:"is_verified"`
	ReferralCode  string `json:"referral_code"`
	LoyaltyPoints int    `json:"loyalty_points"`
}

func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Phone:         u.Phone,
		Role:          u.Role,
		Profession:    u.Profession,
		IsVerified:    u.IsVerified,
		ReferralCode:  u.ReferralCode,
		LoyaltyPoints: u.LoyaltyPoints,
	}
}
