package models

import (
	"context"
	"encoding/json"

	"github.com/hamrosewa/backend/internal/apperr"
)

type PasswordResetRepo interface {
	CreatePasswordReset(ctx context.Context, row map[string]interface{}) (*PasswordReset, error)
	GetPasswordResetByCode(ctx context.Context, contactType, contactValue, code string) (*PasswordReset, error)
	GetPasswordResetByToken(ctx context.Context, token string) (*PasswordReset, error)
	UpdatePasswordReset(ctx context.Context, id int64, patch map[string]interface{}) error
	DeletePasswordReset(ctx context.Context, id int64) error
}

func (su *SupabaseRepo) CreatePasswordReset(ctx context.Context, row map[string]interface{}) (*PasswordReset, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, count, err := su.supabaseClient.From(PasswordResetsTable).
		Insert(row, false, "", "representation", "exact").
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to create password reset")
	}

	var resets []PasswordReset
	if err := json.Unmarshal(raw, &resets); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal created password reset")
	}
	if count == 0 || len(resets) == 0 {
		return nil, apperr.Storagef(nil, "password reset insert returned no data")
	}
	return &resets[0], nil
}

func (su *SupabaseRepo) GetPasswordResetByCode(ctx context.Context, contactType, contactValue, code string) (*PasswordReset, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(PasswordResetsTable).
		Select("*", "", false).
		Eq("contact_type", contactType).
		Eq("contact_value", contactValue).
		Eq("code", code).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to look up reset code")
	}

	var resets []PasswordReset
	if err := json.Unmarshal(raw, &resets); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal password reset rows")
	}
	if len(resets) == 0 {
		return nil, nil
	}
	return &resets[0], nil
}

func (su *SupabaseRepo) GetPasswordResetByToken(ctx context.Context, token string) (*PasswordReset, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(PasswordResetsTable).
		Select("*", "", false).
		Eq("reset_token", token).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to look up reset token")
	}

	var resets []PasswordReset
	if err := json.Unmarshal(raw, &resets); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal password reset rows")
	}
	if len(resets) == 0 {
		return nil, nil
	}
	return &resets[0], nil
}

func (su *SupabaseRepo) UpdatePasswordReset(ctx context.Context, id int64, patch map[string]interface{}) error {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	_, count, err := su.supabaseClient.From(PasswordResetsTable).
		Update(patch, "", "exact").
		Eq("id", itoa(id)).
		ExecuteWithContext(cctx)
	if err != nil {
		return apperr.Storagef(err, "failed to update password reset")
	}
	if count == 0 {
		return apperr.NotFoundf("password reset not found")
	}
	return nil
}

func (su *SupabaseRepo) DeletePasswordReset(ctx context.Context, id int64) error {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	_, _, err := su.supabaseClient.From(PasswordResetsTable).
		Delete("", "").
		Eq("id", itoa(id)).
		ExecuteWithContext(cctx)
	if err != nil {
		return apperr.Storagef(err, "failed to delete password reset")
	}
	return nil
}
