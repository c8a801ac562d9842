package models

import (
	"context"
	"encoding/json"

	"github.com/hamrosewa/backend/internal/apperr"
)

type CatalogRepo interface {
	ListCategories(ctx context.Context) ([]*ServiceCategory, error)
	GetCategoryByID(ctx context.Context, id int64) (*ServiceCategory, error)
	ListServices(ctx context.Context, categoryID, providerID *int64) ([]*Service, error)
	GetServiceByID(ctx context.Context, id int64) (*Service, error)
}

func (su *SupabaseRepo) ListCategories(ctx context.Context) ([]*ServiceCategory, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(CategoriesTable).
		Select("*", "", false).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to list categories")
	}

	var categories []ServiceCategory
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal category rows")
	}
	out := make([]*ServiceCategory, 0, len(categories))
	for i := range categories {
		out = append(out, &categories[i])
	}
	return out, nil
}

func (su *SupabaseRepo) GetCategoryByID(ctx context.Context, id int64) (*ServiceCategory, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(CategoriesTable).
		Select("*", "", false).
		Eq("id", itoa(id)).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to get category")
	}

	var categories []ServiceCategory
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal category rows")
	}
	if len(categories) == 0 {
		return nil, apperr.NotFoundf("category not found")
	}
	return &categories[0], nil
}

func (su *SupabaseRepo) ListServices(ctx context.Context, categoryID, providerID *int64) ([]*Service, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	query := su.supabaseClient.From(ServicesTable).Select("*", "", false)
	if categoryID != nil {
		query = query.Eq("category_id", itoa(*categoryID))
	}
	if providerID != nil {
		query = query.Eq("provider_id", itoa(*providerID))
	}
	raw, _, err := query.ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to list services")
	}

	var services []Service
	if err := json.Unmarshal(raw, &services); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal service rows")
	}
	out := make([]*Service, 0, len(services))
	for i := range services {
		out = append(out, &services[i])
	}
	return out, nil
}

func (su *SupabaseRepo) GetServiceByID(ctx context.Context, id int64) (*Service, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(ServicesTable).
		Select("*", "", false).
		Eq("id", itoa(id)).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to get service")
	}

	var services []Service
	if err := json.Unmarshal(raw, &services); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal service rows")
	}
	if len(services) == 0 {
		return nil, apperr.NotFoundf("service not found")
	}
	return &services[0], nil
}
