package models

import (
	"context"
	"encoding/json"

	"github.com/supabase-community/postgrest-go"

	"github.com/hamrosewa/backend/internal/apperr"
)

type VerificationRepo interface {
	CreateVerification(ctx context.Context, row map[string]interface{}) (*ProviderVerification, error)
	ListVerificationsByProvider(ctx context.Context, providerID int64) ([]*ProviderVerification, error)
	DeleteVerification(ctx context.Context, id, providerID int64) error
}

func (su *SupabaseRepo) CreateVerification(ctx context.Context, row map[string]interface{}) (*ProviderVerification, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, count, err := su.supabaseClient.From(VerificationsTable).
		Insert(row, false, "", "representation", "exact").
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to create verification")
	}

	var docs []ProviderVerification
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal created verification")
	}
	if count == 0 || len(docs) == 0 {
		return nil, apperr.Storagef(nil, "verification insert returned no data")
	}
	return &docs[0], nil
}

func (su *SupabaseRepo) ListVerificationsByProvider(ctx context.Context, providerID int64) ([]*ProviderVerification, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(VerificationsTable).
		Select("*", "", false).
		Eq("provider_id", itoa(providerID)).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to list verifications")
	}

	var docs []ProviderVerification
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal verification rows")
	}
	out := make([]*ProviderVerification, 0, len(docs))
	for i := range docs {
		out = append(out, &docs[i])
	}
	return out, nil
}

// DeleteVerification removes a document only when it belongs to the
// given provider; deleting someone else's document reports not found.
func (su *SupabaseRepo) DeleteVerification(ctx context.Context, id, providerID int64) error {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	_, count, err := su.supabaseClient.From(VerificationsTable).
		Delete("", "exact").
		Eq("id", itoa(id)).
		Eq("provider_id", itoa(providerID)).
		ExecuteWithContext(cctx)
	if err != nil {
		return apperr.Storagef(err, "failed to delete verification")
	}
	if count == 0 {
		return apperr.NotFoundf("verification not found")
	}
	return nil
}
