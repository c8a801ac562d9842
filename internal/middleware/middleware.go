package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hamrosewa/backend/internal/helpers"
	"github.com/hamrosewa/backend/internal/models"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// ErrorHandler provides centralized error handling
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			if !c.Writer.Written() {
				c.JSON(500, models.ErrorResponse("internal server error"))
			}
		}
	}
}

// AuthMiddleware validates the bearer token and loads the caller's
// profile row into the context as EnhancedClaims.
func AuthMiddleware(userRepo models.UserRepo, jwtSecret []byte, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("missing bearer token"))
			c.Abort()
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		claims, err := helpers.ValidateToken(token, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("invalid or expired token"))
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			logger.Error("Invalid user ID in token", "subject", claims.Subject, "error", err)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("invalid token subject"))
			c.Abort()
			return
		}

		enhancedClaims := &helpers.EnhancedClaims{
			CustomClaims: claims,
			UserID:       userID,
			Email:        claims.Email,
			Role:         claims.Role,
		}

		user, err := userRepo.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			// Token is valid but the row is gone or unreachable; the
			// request proceeds with token claims only.
			logger.Info("Profile not found for token subject", "user_id", userID, "error", err)
		} else {
			enhancedClaims.Role = user.Role
			enhancedClaims.Username = user.Username
			enhancedClaims.Phone = user.Phone
			enhancedClaims.Profession = user.Profession
			enhancedClaims.LoyaltyPoints = user.LoyaltyPoints
			enhancedClaims.ReferralCode = user.ReferralCode
		}

		c.Set("user", enhancedClaims)
		c.Next()
	}
}

// RequireRole gates a route group to one role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := c.Get("user")
		if !exists {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			c.Abort()
			return
		}
		enhanced, ok := claims.(*helpers.EnhancedClaims)
		if !ok || !enhanced.HasRole(role) {
			c.JSON(http.StatusForbidden, models.ErrorResponse("access denied"))
			c.Abort()
			return
		}
		c.Next()
	}
}
