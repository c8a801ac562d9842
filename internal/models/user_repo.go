package models

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/hamrosewa/backend/internal/apperr"
)

type UserRepo interface {
	CreateUser(ctx context.Context, row map[string]interface{}) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByPhone(ctx context.Context, phone string) (*User, error)
	GetUserByReferralCode(ctx context.Context, code string) (*User, error)
	UpdateUser(ctx context.Context, id int64, patch map[string]interface{}) (*User, error)
	ListProviders(ctx context.Context) ([]*User, error)
	IncrementLoyaltyPoints(ctx context.Context, id int64, delta int) (int, error)
}

func (su *SupabaseRepo) CreateUser(ctx context.Context, row map[string]interface{}) (*User, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, count, err := su.supabaseClient.From(UsersTable).
		Insert(row, false, "", "representation", "exact").
		ExecuteWithContext(cctx)
	if err != nil {
		// Surface constraint violations so the service can map them to
		// friendly validation messages.
		msg := err.Error()
		if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint") {
			return nil, apperr.Validationf("duplicate key: %v", err)
		}
		return nil, apperr.Storagef(err, "failed to create user")
	}

	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal created user")
	}
	if count == 0 || len(users) == 0 {
		return nil, apperr.Storagef(nil, "user insert returned no data")
	}
	return &users[0], nil
}

func (su *SupabaseRepo) GetUserByID(ctx context.Context, id int64) (*User, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(UsersTable).
		Select("*", "", false).
		Eq("id", itoa(id)).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to get user by id")
	}

	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal user rows")
	}
	if len(users) == 0 {
		return nil, apperr.NotFoundf("user not found")
	}
	return &users[0], nil
}

// getUserBy returns (nil, nil) when no row matches, so callers can branch
// on existence without treating absence as an error.
func (su *SupabaseRepo) getUserBy(ctx context.Context, column, value string) (*User, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(UsersTable).
		Select("*", "", false).
		Eq(column, value).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to get user by %s", column)
	}

	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal user rows")
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (su *SupabaseRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return su.getUserBy(ctx, "email", email)
}

func (su *SupabaseRepo) GetUserByPhone(ctx context.Context, phone string) (*User, error) {
	return su.getUserBy(ctx, "phone", phone)
}

func (su *SupabaseRepo) GetUserByReferralCode(ctx context.Context, code string) (*User, error) {
	return su.getUserBy(ctx, "referral_code", code)
}

func (su *SupabaseRepo) UpdateUser(ctx context.Context, id int64, patch map[string]interface{}) (*User, error) {
	if len(patch) == 0 {
		return nil, apperr.Validationf("no fields to update")
	}
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, count, err := su.supabaseClient.From(UsersTable).
		Update(patch, "representation", "exact").
		Eq("id", itoa(id)).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to update user")
	}
	if count == 0 {
		return nil, apperr.NotFoundf("user not found")
	}

	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal updated user")
	}
	if len(users) == 0 {
		return nil, apperr.Storagef(nil, "no user data returned after update")
	}
	return &users[0], nil
}

func (su *SupabaseRepo) ListProviders(ctx context.Context) ([]*User, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(UsersTable).
		Select("id,username,profession,role", "", false).
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to list providers")
	}

	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal user rows")
	}

	// Older rows carry role "prov" instead of "provider".
	providers := make([]*User, 0, len(users))
	for i := range users {
		role := strings.ToLower(strings.TrimSpace(users[i].Role))
		if role == RoleProvider || role == "prov" {
			providers = append(providers, &users[i])
		}
	}
	return providers, nil
}

// IncrementLoyaltyPoints adds delta to a user's balance with a
// compare-and-swap on the current value, retrying on contention, so two
// concurrent awards cannot lose an update.
func (su *SupabaseRepo) IncrementLoyaltyPoints(ctx context.Context, id int64, delta int) (int, error) {
	const attempts = 3
	for i := 0; i < attempts; i++ {
		user, err := su.GetUserByID(ctx, id)
		if err != nil {
			return 0, err
		}
		next := user.LoyaltyPoints + delta

		cctx, cancel := su.callCtx(ctx)
		_, count, err := su.supabaseClient.From(UsersTable).
			Update(map[string]interface{}{"loyalty_points": next}, "", "exact").
			Eq("id", itoa(id)).
			Eq("loyalty_points", strconv.Itoa(user.LoyaltyPoints)).
			ExecuteWithContext(cctx)
		cancel()
		if err != nil {
			return 0, apperr.Storagef(err, "failed to increment loyalty points")
		}
		if count == 1 {
			return next, nil
		}
	}
	return 0, apperr.Storagef(nil, "loyalty points update lost after %d attempts", attempts)
}
