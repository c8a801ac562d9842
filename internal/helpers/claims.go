package helpers

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type CustomClaims struct {
	Role      string `json:"role"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// EnhancedClaims is the authenticated identity stored in the gin
// context: token claims plus the profile row loaded from the store.
type EnhancedClaims struct {
	*CustomClaims
	UserID        int64  `json:"id"`
	Role          string `json:"role"`
	Email         string `json:"email,omitempty"`
	Username      string `json:"username,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Profession    string `json:"profession,omitempty"`
	LoyaltyPoints int    `json:"loyalty_points"`
	ReferralCode  string `json:"referral_code,omitempty"`
}

func (ec *EnhancedClaims) IsAdmin() bool {
	return ec.Role == "admin"
}

func (ec *EnhancedClaims) IsProvider() bool {
	return ec.Role == "provider"
}

func (ec *EnhancedClaims) IsCustomer() bool {
	return ec.Role == "customer"
}

func (ec *EnhancedClaims) HasRole(role string) bool {
	return ec.Role == role
}

func (ec *EnhancedClaims) GetSafeRole() string {
	if ec.Role == "" {
		return "guest"
	}
	return ec.Role
}
