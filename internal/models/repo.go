package models

import (
	"context"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/supabase-community/supabase-go"
)

var Validate = validator.New()

// Supabase table names.
const (
	UsersTable          = "seva_auth_user"
	CategoriesTable     = "seva_servicecategory"
	ServicesTable       = "seva_service"
	BookingsTable       = "seva_booking"
	ReviewsTable        = "seva_review"
	ReferralsTable      = "seva_referral"
	NotificationsTable  = "seva_notification"
	PaymentsTable       = "seva_payment"
	VerificationsTable  = "seva_provider_verification"
	PasswordResetsTable = "seva_password_reset"
	BannersTable        = "seva_promotional_banner"
	BlogsTable          = "seva_blog"
)

// SupabaseRepo is the remote data gateway. Every entity lives in the
// shared Supabase project; nothing is cached locally and every call is a
// synchronous round trip bounded by the configured timeout.
type SupabaseRepo struct {
	supabaseClient *supabase.Client
	timeout        time.Duration
}

func SupabaseNewRepo(supabaseClient *supabase.Client, timeout time.Duration) *SupabaseRepo {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SupabaseRepo{
		supabaseClient: supabaseClient,
		timeout:        timeout,
	}
}

// callCtx bounds a remote call. A deadline hit surfaces to callers as a
// storage error like any other failed round trip.
func (su *SupabaseRepo) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, su.timeout)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
