package models

import (
	"context"
	"encoding/json"
	"time"

	"github.com/supabase-community/postgrest-go"

	"github.com/hamrosewa/backend/internal/apperr"
)

type ReferralRepo interface {
	CreateReferral(ctx context.Context, referrerID, referredUserID int64) (*Referral, error)
	GetReferralByReferredUser(ctx context.Context, referredUserID int64) (*Referral, error)
	ListReferralsByReferrer(ctx context.Context, referrerID int64) ([]*Referral, error)
	MarkPointsAwarded(ctx context.Context, id int64, pointsReferrer, pointsReferred int) (bool, error)
}

func (su *SupabaseRepo) CreateReferral(ctx context.Context, referrerID, referredUserID int64) (*Referral, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	row := map[string]interface{}{
		"referrer_id":      referrerID,
		"referred_user_id": referredUserID,
		"status":           ReferralSignedUp,
		"points_referrer":  0,
		"points_referred":  0,
	}
	raw, count, err := su.supabaseClient.From(ReferralsTable).
		Insert(row, false, "", "representation", "exact").
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to create referral")
	}

	var referrals []Referral
	if err := json.Unmarshal(raw, &referrals); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal created referral")
	}
	if count == 0 || len(referrals) == 0 {
		return nil, apperr.Storagef(nil, "referral insert returned no data")
	}
	return &referrals[0], nil
}

// GetReferralByReferredUser returns (nil, nil) when the user has no
// referral row; the award path treats that as a no-op, not an error.
func (su *SupabaseRepo) GetReferralByReferredUser(ctx context.Context, referredUserID int64) (*Referral, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(ReferralsTable).
		Select("*", "", false).
		Eq("referred_user_id", itoa(referredUserID)).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to get referral")
	}

	var referrals []Referral
	if err := json.Unmarshal(raw, &referrals); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal referral rows")
	}
	if len(referrals) == 0 {
		return nil, nil
	}
	return &referrals[0], nil
}

func (su *SupabaseRepo) ListReferralsByReferrer(ctx context.Context, referrerID int64) ([]*Referral, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(ReferralsTable).
		Select("*", "", false).
		Eq("referrer_id", itoa(referrerID)).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to list referrals")
	}

	var referrals []Referral
	if err := json.Unmarshal(raw, &referrals); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal referral rows")
	}
	out := make([]*Referral, 0, len(referrals))
	for i := range referrals {
		out = append(out, &referrals[i])
	}
	return out, nil
}

// MarkPointsAwarded flips a referral to points_awarded in a single
// conditional update guarded on the current status. The returned bool
// reports whether this call won the transition; a false result means the
// row was already awarded (possibly by a concurrent completion) and no
// points must be credited.
func (su *SupabaseRepo) MarkPointsAwarded(ctx context.Context, id int64, pointsReferrer, pointsReferred int) (bool, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	patch := map[string]interface{}{
		"status":          ReferralPointsAwarded,
		"points_referrer": pointsReferrer,
		"points_referred": pointsReferred,
		"updated_at":      time.Now().UTC().Format(time.RFC3339),
	}
	_, count, err := su.supabaseClient.From(ReferralsTable).
		Update(patch, "", "exact").
		Eq("id", itoa(id)).
		Neq("status", ReferralPointsAwarded).
		ExecuteWithContext(cctx)
	if err != nil {
		return false, apperr.Storagef(err, "failed to mark referral awarded")
	}
	return count == 1, nil
}
