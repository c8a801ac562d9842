package services

import (
	"context"
	"log/slog"

	"github.com/hamrosewa/backend/internal/apperr"
	"github.com/hamrosewa/backend/internal/helpers"
	"github.com/hamrosewa/backend/internal/models"
)

type ReferralService struct {
	userRepo     models.UserRepo
	referralRepo models.ReferralRepo
}

func NewReferralService(userRepo models.UserRepo, referralRepo models.ReferralRepo) *ReferralService {
	return &ReferralService{
		userRepo:     userRepo,
		referralRepo: referralRepo,
	}
}

// RecordSignup links a new user to the owner of the referral code they
// signed up with. A bad or self-referencing code is ignored rather than
// failing the registration.
func (rs *ReferralService) RecordSignup(ctx context.Context, newUserID int64, code string) (*int64, error) {
	if code == "" {
		return nil, nil
	}
	referrer, err := rs.userRepo.GetUserByReferralCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if referrer == nil || referrer.ID == newUserID {
		return nil, nil
	}
	if _, err := rs.referralRepo.CreateReferral(ctx, referrer.ID, newUserID); err != nil {
		return nil, err
	}
	return &referrer.ID, nil
}

// AwardIfEligible credits referral points when the referred customer's
// first booking completes. It is safe to call on every completion:
//   - customers without a referred_by link are a no-op
//   - a missing referral row is a no-op
//   - an already-awarded referral is a no-op; the conditional status
//     update decides a single winner under concurrent completions, so
//     points are credited at most once.
func (rs *ReferralService) AwardIfEligible(ctx context.Context, customerID int64) error {
	customer, err := rs.userRepo.GetUserByID(ctx, customerID)
	if err != nil {
		return err
	}
	if customer.ReferredByID == nil {
		return nil
	}

	referral, err := rs.referralRepo.GetReferralByReferredUser(ctx, customerID)
	if err != nil {
		return err
	}
	if referral == nil || referral.Status == models.ReferralPointsAwarded {
		return nil
	}

	won, err := rs.referralRepo.MarkPointsAwarded(ctx, referral.ID,
		models.PointsReferrerFirstBooking, models.PointsReferredFirstBooking)
	if err != nil {
		return err
	}
	if !won {
		return nil
	}

	if _, err := rs.userRepo.IncrementLoyaltyPoints(ctx, referral.ReferrerID, models.PointsReferrerFirstBooking); err != nil {
		return err
	}
	if _, err := rs.userRepo.IncrementLoyaltyPoints(ctx, customerID, models.PointsReferredFirstBooking); err != nil {
		return err
	}

	slog.Info("referral points awarded",
		"referral_id", referral.ID,
		"referrer_id", referral.ReferrerID,
		"referred_user_id", customerID)
	return nil
}

// Profile returns the user's referral code, points balance and history.
// Users created before codes existed get one generated on first read.
func (rs *ReferralService) Profile(ctx context.Context, userID int64) (*models.ReferralProfile, error) {
	user, err := rs.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	code := user.ReferralCode
	if code == "" {
		code, err = rs.ensureReferralCode(ctx, user)
		if err != nil {
			return nil, err
		}
	}

	referrals, err := rs.referralRepo.ListReferralsByReferrer(ctx, userID)
	if err != nil {
		return nil, err
	}
	history := make([]models.ReferralHistoryEntry, 0, len(referrals))
	for _, r := range referrals {
		history = append(history, models.ReferralHistoryEntry{
			ReferredUserID: r.ReferredUserID,
			Status:         r.Status,
			StatusLabel:    r.StatusLabel(),
			PointsEarned:   r.PointsReferrer,
			CreatedAt:      r.CreatedAt,
		})
	}

	return &models.ReferralProfile{
		ReferralCode:    code,
		LoyaltyPoints:   user.LoyaltyPoints,
		ReferralHistory: history,
	}, nil
}

func (rs *ReferralService) ensureReferralCode(ctx context.Context, user *models.User) (string, error) {
	code := helpers.GenerateReferralCode(user.Username, user.Email)
	for attempt := 0; attempt < 5; attempt++ {
		existing, err := rs.userRepo.GetUserByReferralCode(ctx, code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			if _, err := rs.userRepo.UpdateUser(ctx, user.ID, map[string]interface{}{"referral_code": code}); err != nil {
				return "", err
			}
			return code, nil
		}
		code = helpers.GenerateReferralCode(user.Username, user.Email) + "-" + helpers.RandomSuffix(4)
	}
	return "", apperr.Storagef(nil, "could not generate a unique referral code")
}
