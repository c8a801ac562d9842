package models

import (
	"context"
	"encoding/json"

	"github.com/supabase-community/postgrest-go"

	"github.com/hamrosewa/backend/internal/apperr"
)

type NotificationRepo interface {
	CreateNotification(ctx context.Context, row map[string]interface{}) (*Notification, error)
	ListNotificationsByUser(ctx context.Context, userID int64, limit int) ([]*Notification, error)
}

func (su *SupabaseRepo) CreateNotification(ctx context.Context, row map[string]interface{}) (*Notification, error) {
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, count, err := su.supabaseClient.From(NotificationsTable).
		Insert(row, false, "", "representation", "exact").
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to create notification")
	}

	var notifications []Notification
	if err := json.Unmarshal(raw, &notifications); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal created notification")
	}
	if count == 0 || len(notifications) == 0 {
		return nil, apperr.Storagef(nil, "notification insert returned no data")
	}
	return &notifications[0], nil
}

func (su *SupabaseRepo) ListNotificationsByUser(ctx context.Context, userID int64, limit int) ([]*Notification, error) {
	if limit <= 0 {
		limit = 100
	}
	cctx, cancel := su.callCtx(ctx)
	defer cancel()

	raw, _, err := su.supabaseClient.From(NotificationsTable).
		Select("*", "", false).
		Eq("user_id", itoa(userID)).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		ExecuteWithContext(cctx)
	if err != nil {
		return nil, apperr.Storagef(err, "failed to list notifications")
	}

	var notifications []Notification
	if err := json.Unmarshal(raw, &notifications); err != nil {
		return nil, apperr.Storagef(err, "failed to unmarshal notification rows")
	}
	out := make([]*Notification, 0, len(notifications))
	for i := range notifications {
		out = append(out, &notifications[i])
	}
	return out, nil
}
