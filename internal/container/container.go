package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/supabase-community/supabase-go"

	"github.com/hamrosewa/backend/internal/config"
	"github.com/hamrosewa/backend/internal/models"
	"github.com/hamrosewa/backend/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger     *slog.Logger
	Config     *config.Config
	Cloudinary *cloudinary.Cloudinary

	SupabaseClient *supabase.Client
	Repo           *models.SupabaseRepo

	UserService         *services.UserService
	BookingService      *services.BookingService
	ReferralService     *services.ReferralService
	ReviewService       *services.ReviewService
	PaymentService      *services.PaymentService
	CatalogService      *services.CatalogService
	NotificationService *services.NotificationService
	VerificationService *services.VerificationService
	DashboardService    *services.DashboardService
	ContentService      *services.ContentService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	cld *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
) *Container {
	repo := models.SupabaseNewRepo(supabaseClient, cfg.StorageTimeout)

	referralService := services.NewReferralService(repo, repo)
	userService := services.NewUserService(repo, repo, referralService, []byte(cfg.JWTSecret))
	bookingService := services.NewBookingService(repo, repo, repo, repo, referralService)
	reviewService := services.NewReviewService(repo, repo, repo, repo)
	esewa := services.NewEsewaClient(services.EsewaConfig{
		ProductCode: cfg.EsewaProductCode,
		StatusURL:   cfg.EsewaStatusURL,
	})
	paymentService := services.NewPaymentService(repo, repo, esewa)
	catalogService := services.NewCatalogService(repo, repo, repo)
	notificationService := services.NewNotificationService(repo, repo, repo, repo)
	verificationService := services.NewVerificationService(repo, repo, cld)
	dashboardService := services.NewDashboardService(repo, repo, repo)
	contentService := services.NewContentService(repo)

	return &Container{
		Logger:              logger,
		Config:              cfg,
		Cloudinary:          cld,
		SupabaseClient:      supabaseClient,
		Repo:                repo,
		UserService:         userService,
		BookingService:      bookingService,
		ReferralService:     referralService,
		ReviewService:       reviewService,
		PaymentService:      paymentService,
		CatalogService:      catalogService,
		NotificationService: notificationService,
		VerificationService: verificationService,
		DashboardService:    dashboardService,
		ContentService:      contentService,
	}
}
