package helpers

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestIssueAndValidateTokenPair(t *testing.T) {
	secret := []byte("test-secret")

	pair, err := IssueTokenPair(42, "mina@example.com", "customer", secret)
	if err != nil {
		t.Fatalf("IssueTokenPair failed: %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatal("expected both tokens")
	}

	claims, err := ValidateToken(pair.Access, secret)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	id, err := claims.UserID()
	if err != nil || id != 42 {
		t.Errorf("UserID() = %d, %v; want 42", id, err)
	}
	if claims.Role != "customer" || claims.Email != "mina@example.com" {
		t.Errorf("claims = %+v", claims)
	}

	// Refresh tokens are not accepted where an access token is required.
	if _, err := ValidateToken(pair.Refresh, secret); err == nil {
		t.Error("refresh token accepted as access token")
	}

	// Wrong secret must fail.
	if _, err := ValidateToken(pair.Access, []byte("other-secret")); err == nil {
		t.Error("token accepted with wrong secret")
	}
}

func TestGenerateReferralCode(t *testing.T) {
	year := fmt.Sprintf("%d", time.Now().Year())

	code := GenerateReferralCode("Asha Karki", "")
	if !strings.HasPrefix(code, "HAMRO-") || !strings.HasSuffix(code, "-"+year) {
		t.Errorf("code = %q, want HAMRO-...-%s", code, year)
	}
	if strings.Contains(code, " ") {
		t.Errorf("code %q contains spaces", code)
	}

	// Falls back to email, then a generic base.
	code = GenerateReferralCode("", "bikash@example.com")
	if !strings.HasPrefix(code, "HAMRO-BIKASH") {
		t.Errorf("email fallback code = %q", code)
	}
	code = GenerateReferralCode("", "")
	if !strings.HasPrefix(code, "HAMRO-USER-") {
		t.Errorf("empty fallback code = %q", code)
	}

	// Long names are capped so codes stay short.
	code = GenerateReferralCode("a very long username indeed", "")
	base := strings.TrimSuffix(strings.TrimPrefix(code, "HAMRO-"), "-"+year)
	if len(base) > 12 {
		t.Errorf("base %q longer than 12 chars", base)
	}
}

func TestGenerateResetCode(t *testing.T) {
	for i := 0; i < 20; i++ {
		code := GenerateResetCode()
		if len(code) != 4 {
			t.Fatalf("code %q is not 4 digits", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q has non-digit %q", code, r)
			}
		}
	}
}

func TestRandomSuffixAndToken(t *testing.T) {
	suffix := RandomSuffix(4)
	if len(suffix) != 4 {
		t.Errorf("suffix %q length %d, want 4", suffix, len(suffix))
	}

	a := RandomToken(32)
	b := RandomToken(32)
	if a == "" || a == b {
		t.Error("tokens should be non-empty and unique")
	}
}
