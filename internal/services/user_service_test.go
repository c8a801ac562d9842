package services

import (
	"context"
	"strings"
	"testing"

	"github.com/hamrosewa/backend/internal/apperr"
	"github.com/hamrosewa/backend/internal/models"
)

func userFixture() (*UserService, *fakeUserRepo, *fakeReferralRepo) {
	users := newFakeUserRepo(&models.User{
		ID:           9,
		Username:     "asha",
		Email:        "asha@example.com",
		Role:         models.RoleCustomer,
		ReferralCode: "HAMRO-ASHA-2026",
	})
	referrals := newFakeReferralRepo()
	referralService := NewReferralService(users, referrals)
	svc := NewUserService(users, &fakePasswordResetRepo{}, referralService, []byte("test-secret"))
	return svc, users, referrals
}

func TestRegisterWithReferralCodeLinksReferrer(t *testing.T) {
	svc, users, referrals := userFixture()

	result, err := svc.Register(context.Background(), &RegisterInput{
		Username:     "bikash",
		Email:        "bikash@example.com",
		Password:     "password123",
		ReferralCode: "HAMRO-ASHA-2026",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if result.Tokens == nil || result.Tokens.Access == "" {
		t.Fatal("expected issued tokens")
	}
	if result.User.Role != models.RoleCustomer {
		t.Errorf("role = %q, want customer", result.User.Role)
	}
	if !strings.HasPrefix(result.User.ReferralCode, "HAMRO-") {
		t.Errorf("referral code = %q, want HAMRO- prefix", result.User.ReferralCode)
	}

	created, _ := users.GetUserByEmail(context.Background(), "bikash@example.com")
	if created.ReferredByID == nil || *created.ReferredByID != 9 {
		t.Fatalf("referred_by_id = %v, want 9", created.ReferredByID)
	}
	referral, _ := referrals.GetReferralByReferredUser(context.Background(), created.ID)
	if referral == nil || referral.Status != models.ReferralSignedUp {
		t.Fatalf("expected a signed_up referral row, got %+v", referral)
	}
	if referral.PointsReferrer != 0 || referral.PointsReferred != 0 {
		t.Error("points must stay zero until the first booking completes")
	}
}

func TestRegisterRejectsDuplicateEmailAndBadRole(t *testing.T) {
	svc, _, _ := userFixture()

	_, err := svc.Register(context.Background(), &RegisterInput{
		Username: "dup",
		Email:    "asha@example.com",
		Password: "password123",
	})
	if !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("duplicate email: expected validation error, got %v", err)
	}

	_, err = svc.Register(context.Background(), &RegisterInput{
		Username: "x",
		Email:    "x@example.com",
		Password: "password123",
		Role:     "admin",
	})
	if !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("admin self-signup: expected validation error, got %v", err)
	}

	_, err = svc.Register(context.Background(), &RegisterInput{
		Username: "prov",
		Email:    "prov@example.com",
		Password: "password123",
		Role:     models.RoleProvider,
	})
	if !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("provider without profession: expected validation error, got %v", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _, _ := userFixture()

	if _, err := svc.Register(context.Background(), &RegisterInput{
		Username: "mina",
		Email:    "mina@example.com",
		Password: "password123",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "mina@example.com", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.User.Email != "mina@example.com" {
		t.Errorf("logged in as %q", result.User.Email)
	}

	if _, err := svc.Login(context.Background(), "mina@example.com", "wrong-password"); !apperr.IsKind(err, apperr.Unauthorized) {
		t.Fatalf("wrong password: expected unauthorized, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "password123"); !apperr.IsKind(err, apperr.Unauthorized) {
		t.Fatalf("unknown email: expected unauthorized, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, users, _ := userFixture()

	if _, err := svc.Register(context.Background(), &RegisterInput{
		Username: "mina",
		Email:    "mina@example.com",
		Password: "password123",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := svc.RequestPasswordReset(context.Background(), "email", "mina@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset failed: %v", err)
	}
	// Unknown accounts get the same silent success.
	if err := svc.RequestPasswordReset(context.Background(), "email", "ghost@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset for unknown account: %v", err)
	}

	resetRepo := svc.resetRepo.(*fakePasswordResetRepo)
	if len(resetRepo.rows) != 1 {
		t.Fatalf("expected 1 stored reset row, got %d", len(resetRepo.rows))
	}
	code := resetRepo.rows[0].Code

	token, err := svc.VerifyResetCode(context.Background(), "email", "mina@example.com", code)
	if err != nil {
		t.Fatalf("VerifyResetCode failed: %v", err)
	}
	if _, err := svc.VerifyResetCode(context.Background(), "email", "mina@example.com", "0000x"); !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("bad code: expected validation error, got %v", err)
	}

	if err := svc.ResetPassword(context.Background(), token, "newpassword1"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}
	user, _ := users.GetUserByEmail(context.Background(), "mina@example.com")
	if user.Password == "" {
		t.Fatal("password hash missing after reset")
	}
	if _, err := svc.Login(context.Background(), "mina@example.com", "newpassword1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
