package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hamrosewa/backend/internal/apperr"
	"github.com/hamrosewa/backend/internal/helpers"
	"github.com/hamrosewa/backend/internal/models"
)

const resetCodeTTL = 10 * time.Minute

type UserService struct {
	userRepo        models.UserRepo
	resetRepo       models.PasswordResetRepo
	referralService *ReferralService
	jwtSecret       []byte
}

func NewUserService(userRepo models.UserRepo, resetRepo models.PasswordResetRepo, referralService *ReferralService, jwtSecret []byte) *UserService {
	return &UserService{
		userRepo:        userRepo,
		resetRepo:       resetRepo,
		referralService: referralService,
		jwtSecret:       jwtSecret,
	}
}

type RegisterInput struct {
	Username     string `json:"username" validate:"required,min=2"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone"`
	Password     string `json:"password" validate:"required,min=8"`
	Role         string `json:"role"`
	Profession   string `json:"profession"`
	ReferralCode string `json:"referral_code"`
}

type AuthResult struct {
	User   models.UserProfile `json:"user"`
	Tokens *helpers.TokenPair `json:"tokens"`
}

// Register creates a customer or provider account. A valid referral code
// links the new user to their referrer and opens a signed_up referral.
func (us *UserService) Register(ctx context.Context, in *RegisterInput) (*AuthResult, error) {
	if err := models.Validate.Struct(in); err != nil {
		return nil, apperr.Validationf("invalid registration: %v", err)
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = models.RoleCustomer
	}
	if role != models.RoleCustomer && role != models.RoleProvider {
		return nil, apperr.Validationf("role must be customer or provider")
	}
	if role == models.RoleProvider && strings.TrimSpace(in.Profession) == "" {
		return nil, apperr.Validationf("providers must declare a profession")
	}

	if existing, err := us.userRepo.GetUserByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperr.Validationf("an account with this email already exists")
	}
	if in.Phone != "" {
		if existing, err := us.userRepo.GetUserByPhone(ctx, in.Phone); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, apperr.Validationf("an account with this phone already exists")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to hash password")
	}

	row := map[string]interface{}{
		"username":       in.Username,
		"email":          strings.ToLower(in.Email),
		"phone":          in.Phone,
		"password":       string(hash),
		"role":           role,
		"profession":     in.Profession,
		"is_verified":    false,
		"loyalty_points": 0,
		"referral_code":  helpers.GenerateReferralCode(in.Username, in.Email),
	}
	user, err := us.userRepo.CreateUser(ctx, row)
	if err != nil {
		if apperr.IsKind(err, apperr.Validation) {
			// Referral codes collide rarely; retry once with a suffix.
			row["referral_code"] = helpers.GenerateReferralCode(in.Username, in.Email) + "-" + helpers.RandomSuffix(4)
			user, err = us.userRepo.CreateUser(ctx, row)
		}
		if err != nil {
			return nil, err
		}
	}

	if in.ReferralCode != "" && us.referralService != nil {
		referrerID, rerr := us.referralService.RecordSignup(ctx, user.ID, in.ReferralCode)
		if rerr != nil {
			slog.Error("referral signup link failed", "user_id", user.ID, "error", rerr)
		} else if referrerID != nil {
			if updated, uerr := us.userRepo.UpdateUser(ctx, user.ID, map[string]interface{}{"referred_by_id": *referrerID}); uerr == nil {
				user = updated
			}
		}
	}

	tokens, err := helpers.IssueTokenPair(user.ID, user.Email, user.Role, us.jwtSecret)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to issue tokens")
	}
	slog.Info("user registered", "user_id", user.ID, "role", user.Role)
	return &AuthResult{User: user.Profile(), Tokens: tokens}, nil
}

// Login authenticates by email or phone plus password.
func (us *UserService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, apperr.Validationf("identifier and password are required")
	}

	var user *models.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = us.userRepo.GetUserByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = us.userRepo.GetUserByPhone(ctx, identifier)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Unauthorizedf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Unauthorizedf("invalid credentials")
	}

	tokens, err := helpers.IssueTokenPair(user.ID, user.Email, user.Role, us.jwtSecret)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to issue tokens")
	}
	return &AuthResult{User: user.Profile(), Tokens: tokens}, nil
}

// GoogleLogin verifies a Google ID token and signs the matching account
// in, creating a customer account on first sight of the email.
func (us *UserService) GoogleLogin(ctx context.Context, idToken string) (*AuthResult, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, apperr.Validationf("id_token is required")
	}
	email, name, err := helpers.VerifyGoogleIDToken(ctx, idToken)
	if err != nil {
		return nil, apperr.Unauthorizedf("google sign-in failed: %v", err)
	}

	user, err := us.userRepo.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		row := map[string]interface{}{
			"username":       name,
			"email":          strings.ToLower(email),
			"password":       "", // social accounts have no local password
			"role":           models.RoleCustomer,
			"is_verified":    true,
			"loyalty_points": 0,
			"referral_code":  helpers.GenerateReferralCode(name, email),
		}
		user, err = us.userRepo.CreateUser(ctx, row)
		if err != nil {
			return nil, err
		}
		slog.Info("user created via google", "user_id", user.ID)
	}

	tokens, err := helpers.IssueTokenPair(user.ID, user.Email, user.Role, us.jwtSecret)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to issue tokens")
	}
	return &AuthResult{User: user.Profile(), Tokens: tokens}, nil
}

func (us *UserService) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	user, err := us.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

type UpdateProfileInput struct {
	Username   string `json:"username"`
	Phone      string `json:"phone"`
	Profession string `json:"profession"`
}

func (us *UserService) UpdateProfile(ctx context.Context, userID int64, in *UpdateProfileInput) (*models.UserProfile, error) {
	patch := map[string]interface{}{}
	if strings.TrimSpace(in.Username) != "" {
		patch["username"] = strings.TrimSpace(in.Username)
	}
	if strings.TrimSpace(in.Phone) != "" {
		patch["phone"] = strings.TrimSpace(in.Phone)
	}
	if strings.TrimSpace(in.Profession) != "" {
		patch["profession"] = strings.TrimSpace(in.Profession)
	}
	if len(patch) == 0 {
		return nil, apperr.Validationf("nothing to update")
	}
	patch["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	user, err := us.userRepo.UpdateUser(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

// RequestPasswordReset opens a reset with a short-lived 4-digit code.
// Delivery goes out of band; an unknown contact gets the same success
// answer so the endpoint cannot be used to probe for accounts.
func (us *UserService) RequestPasswordReset(ctx context.Context, contactType, contactValue string) error {
	contactType = strings.ToLower(strings.TrimSpace(contactType))
	if contactType != "email" && contactType != "phone" {
		return apperr.Validationf("contact_type must be email or phone")
	}
	contactValue = strings.TrimSpace(contactValue)
	if contactValue == "" {
		return apperr.Validationf("contact_value is required")
	}

	var user *models.User
	var err error
	if contactType == "email" {
		user, err = us.userRepo.GetUserByEmail(ctx, strings.ToLower(contactValue))
	} else {
		user, err = us.userRepo.GetUserByPhone(ctx, contactValue)
	}
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	code := helpers.GenerateResetCode()
	row := map[string]interface{}{
		"contact_type":  contactType,
		"contact_value": contactValue,
		"code":          code,
		"expires_at":    time.Now().UTC().Add(resetCodeTTL).Format(time.RFC3339),
	}
	if _, err := us.resetRepo.CreatePasswordReset(ctx, row); err != nil {
		return err
	}
	slog.Info("password reset requested", "user_id", user.ID, "contact_type", contactType)
	return nil
}

// VerifyResetCode swaps a valid code for an opaque reset token.
func (us *UserService) VerifyResetCode(ctx context.Context, contactType, contactValue, code string) (string, error) {
	reset, err := us.resetRepo.GetPasswordResetByCode(ctx, strings.ToLower(contactType), strings.TrimSpace(contactValue), strings.TrimSpace(code))
	if err != nil {
		return "", err
	}
	if reset == nil {
		return "", apperr.Validationf("invalid reset code")
	}
	if reset.Expired(time.Now().UTC()) {
		return "", apperr.Validationf("reset code has expired")
	}

	token := helpers.RandomToken(32)
	if err := us.resetRepo.UpdatePasswordReset(ctx, reset.ID, map[string]interface{}{"reset_token": token}); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword sets a new password from a verified reset token and
// burns the reset row.
func (us *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := models.Validate.Var(newPassword, "required,min=8"); err != nil {
		return apperr.Validationf("password must be at least 8 characters")
	}
	reset, err := us.resetRepo.GetPasswordResetByToken(ctx, strings.TrimSpace(token))
	if err != nil {
		return err
	}
	if reset == nil || reset.ResetToken == "" {
		return apperr.Validationf("invalid reset token")
	}
	if reset.Expired(time.Now().UTC()) {
		return apperr.Validationf("reset token has expired")
	}

	var user *models.User
	if reset.ContactType == "email" {
		user, err = us.userRepo.GetUserByEmail(ctx, strings.ToLower(reset.ContactValue))
	} else {
		user, err = us.userRepo.GetUserByPhone(ctx, reset.ContactValue)
	}
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFoundf("account no longer exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Storagef(err, "failed to hash password")
	}
	if _, err := us.userRepo.UpdateUser(ctx, user.ID, map[string]interface{}{
		"password":   string(hash),
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return err
	}
	if err := us.resetRepo.DeletePasswordReset(ctx, reset.ID); err != nil {
		slog.Error("failed to delete used password reset", "reset_id", reset.ID, "error", err)
	}
	slog.Info("password reset completed", "user_id", user.ID)
	return nil
}
