package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hamrosewa/backend/internal/container"
	"github.com/hamrosewa/backend/internal/handlers"
	"github.com/hamrosewa/backend/internal/middleware"
	"github.com/hamrosewa/backend/internal/models"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(c *container.Container) *gin.Engine {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(c.Logger))
	r.Use(middleware.ErrorHandler(c.Logger))
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(200, gin.H{
				"status":  "OK",
				"service": "hamrosewa-api",
			})
		})

		// public routes
		api.POST("/auth/register", handlers.Register(c.UserService))
		api.POST("/auth/login", handlers.Login(c.UserService))
		api.POST("/auth/google", handlers.GoogleLogin(c.UserService))
		api.POST("/auth/password-reset/request", handlers.RequestPasswordReset(c.UserService))
		api.POST("/auth/password-reset/verify", handlers.VerifyResetCode(c.UserService))
		api.POST("/auth/password-reset/confirm", handlers.ResetPassword(c.UserService))

		// gateway redirects arrive unauthenticated
		api.GET("/payments/esewa/success", handlers.EsewaSuccess(c.PaymentService, c.Config.AppScheme))
		api.GET("/payments/esewa/failure", handlers.EsewaFailure(c.PaymentService, c.Config.AppScheme))

		// public catalog and home content
		api.GET("/categories", handlers.ListCategories(c.CatalogService))
		api.GET("/categories/:id/providers", handlers.CategoryProviders(c.CatalogService))
		api.GET("/services", handlers.ListServices(c.CatalogService))
		api.GET("/services/:id", handlers.GetService(c.CatalogService))
		api.GET("/providers/:id/reviews", handlers.ProviderReviews(c.ReviewService))
		api.GET("/providers/:id/rating", handlers.ProviderRating(c.CatalogService))
		api.GET("/banners", handlers.ListBanners(c.ContentService))
		api.GET("/blogs", handlers.ListBlogs(c.ContentService))
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(c.Repo, []byte(c.Config.JWTSecret), c.Logger))
	{
		protected.GET("/profile", handlers.GetProfile(c.UserService))
		protected.PATCH("/profile", handlers.UpdateProfile(c.UserService))
		protected.GET("/referrals/profile", handlers.ReferralProfile(c.ReferralService))

		protected.POST("/bookings", handlers.CreateBooking(c.BookingService))
		protected.GET("/bookings", handlers.ListBookings(c.BookingService))
		protected.GET("/bookings/:id", handlers.GetBooking(c.BookingService))
		protected.PATCH("/bookings/:id/status", handlers.UpdateBookingStatus(c.BookingService))

		protected.POST("/reviews", handlers.CreateReview(c.ReviewService))
		protected.GET("/reviews", handlers.MyReviews(c.ReviewService))

		protected.POST("/payments/initiate", handlers.InitiatePayment(c.PaymentService))
		protected.POST("/payments/demo-complete", handlers.DemoCompletePayment(c.PaymentService))

		protected.GET("/notifications", handlers.ListNotifications(c.NotificationService))
	}

	providerRoutes := protected.Group("/provider")
	providerRoutes.Use(middleware.RequireRole(models.RoleProvider))
	{
		providerRoutes.GET("/dashboard", handlers.ProviderDashboard(c.DashboardService))
		providerRoutes.POST("/verifications", handlers.SubmitVerification(c.VerificationService))
		providerRoutes.GET("/verifications", handlers.ListVerifications(c.VerificationService))
		providerRoutes.DELETE("/verifications/:id", handlers.DeleteVerification(c.VerificationService))
	}

	return r
}
