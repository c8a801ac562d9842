package models

import (
	"context"
	"encoding/json"

	"github.com/supabase-community/postgrest-go"

	"github.com/hamrosewa/backend/internal/apperr"
)

type ContentRepo interface {
	ListActiveBanners(ctx context.Context) ([]*PromotionalBanner, error)
	ListBlogs(ctx context.Context) ([]*Blog, error)
}

func (su *SupabaseRepo) ListActiveBanners(ctx context.Context) ([]*PromotionalBanner, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(BannersTable).
		Select("*", "", false).
		Eq("is_active", "true").
		Order("sort_order", &postgrest.OrderOpts{Ascending: true}).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to list banners")
	}

	var banners []PromotionalBanner
	if err := json.Unmarshal(raw, &banners); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal banner rows")
	}
	out := make([]*PromotionalBanner, 0, len(banners))
	for i := range banners {
		out = append(out, &banners[i])
	}
	return out, nil
}

func (su *SupabaseRepo) ListBlogs(ctx context.Context) ([]*Blog, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(BlogsTable).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to list blogs")
	}

	var blogs []Blog
	if err := json.Unmarshal(raw, &blogs); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal blog rows")
	}
	out := make([]*Blog, 0, len(blogs))
	for i := range blogs {
		out = append(out, &blogs[i])
	}
	return out, nil
}
