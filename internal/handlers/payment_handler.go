package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/hamrosewa/backend/internal/models"
	"github.com/hamrosewa/backend/internal/services"
)

func InitiatePayment(ps *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}

		var req struct {
			BookingID int64 `json:"booking_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("booking_id is required"))
			return
		}

		payment, err := ps.Initiate(c.Request.Context(), claims.UserID, req.BookingID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(payment, "payment initiated"))
	}
}

// EsewaSuccess handles the gateway's success redirect. The browser ends
// up back inside the app via its custom scheme; the outcome rides along
// as query parameters.
func EsewaSuccess(ps *services.PaymentService, appScheme string) gin.HandlerFunc {
	return func(c *gin.Context) {
		transactionID := c.Query("transaction_uuid")
		if transactionID == "" {
			transactionID = c.Query("oid")
		}
		if transactionID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("missing transaction id"))
			return
		}

		payment, err := ps.CompleteSuccess(c.Request.Context(), transactionID)
		if err != nil {
			c.Redirect(http.StatusFound, fmt.Sprintf("%s://payment/failure?transaction_id=%s&reason=%s",
				appScheme, url.QueryEscape(transactionID), url.QueryEscape(err.Error())))
			return
		}
		c.Redirect(http.StatusFound, fmt.Sprintf("%s://payment/success?transaction_id=%s&ref_id=%s",
			appScheme, url.QueryEscape(payment.TransactionID), url.QueryEscape(payment.RefID)))
	}
}

func EsewaFailure(ps *services.PaymentService, appScheme string) gin.HandlerFunc {
	return func(c *gin.Context) {
		transactionID := c.Query("transaction_uuid")
		if transactionID != "" {
			if err := ps.Fail(c.Request.Context(), transactionID); err != nil {
				fail(c, err)
				return
			}
		}
		c.Redirect(http.StatusFound, fmt.Sprintf("%s://payment/failure?transaction_id=%s",
			appScheme, url.QueryEscape(transactionID)))
	}
}

func DemoCompletePayment(ps *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}

		var req struct {
			BookingID int64 `json:"booking_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("booking_id is required"))
			return
		}

		payment, err := ps.DemoComplete(c.Request.Context(), claims.UserID, req.BookingID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(payment, "payment completed"))
	}
}
