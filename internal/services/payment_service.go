package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hamrosewa/backend/internal/apperr"
	"github.com/hamrosewa/backend/internal/models"
)

const GatewayEsewa = "esewa"

type PaymentService struct {
	paymentRepo models.PaymentRepo
	bookingRepo models.BookingRepo
	esewa       EsewaVerifier
}

func NewPaymentService(paymentRepo models.PaymentRepo, bookingRepo models.BookingRepo, esewa EsewaVerifier) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		esewa:       esewa,
	}
}

// Initiate opens a pending payment for a booking and returns the row the
// app needs to launch the eSewa flow. Transaction ids are
// HS{bookingID}_{millis} so a booking can be retried without colliding.
func (ps *PaymentService) Initiate(ctx context.Context, customerID, bookingID int64) (*models.Payment, error) {
	booking, err := ps.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != customerID {
		return nil, apperr.Unauthorizedf("not your booking")
	}
	if booking.TotalAmount <= 0 {
		return nil, apperr.Validationf("booking has no payable amount")
	}

	transactionID := fmt.Sprintf("HS%d_%d", bookingID, time.Now().UnixMilli())
	row := map[string]interface{}{
		"booking_id":     bookingID,
		"transaction_id": transactionID,
		"amount":         booking.TotalAmount,
		"gateway":        GatewayEsewa,
		"status":         models.PaymentPending,
	}
	payment, err := ps.paymentRepo.CreatePayment(ctx, row)
	if err != nil {
		return nil, err
	}
	slog.Info("payment initiated", "payment_id", payment.ID, "booking_id", bookingID, "transaction_id", transactionID)
	return payment, nil
}

// CompleteSuccess handles the gateway success callback. The transaction
// is re-verified against eSewa's status API; only a COMPLETE answer
// marks the payment completed. Pending-only lookup makes the callback
// idempotent.
func (ps *PaymentService) CompleteSuccess(ctx context.Context, transactionID string) (*models.Payment, error) {
	payment, err := ps.paymentRepo.GetPaymentByTransactionID(ctx, transactionID, true)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		// Either unknown or already processed.
		done, err := ps.paymentRepo.GetPaymentByTransactionID(ctx, transactionID, false)
		if err != nil {
			return nil, err
		}
		if done != nil {
			return done, nil
		}
		return nil, apperr.NotFoundf("payment not found")
	}

	status, refID, err := ps.esewa.TransactionStatus(ctx, transactionID, payment.Amount)
	if err != nil {
		return nil, apperr.Storagef(err, "could not verify transaction with esewa")
	}
	if status != EsewaStatusComplete {
		failed, ferr := ps.paymentRepo.UpdatePayment(ctx, payment.ID, map[string]interface{}{
			"status":     models.PaymentFailed,
			"updated_at": time.Now().UTC().Format(time.RFC3339),
		})
		if ferr != nil {
			return nil, ferr
		}
		slog.Warn("esewa reported non-complete transaction", "transaction_id", transactionID, "status", status)
		return failed, apperr.Validationf("esewa transaction is %s", status)
	}

	updated, err := ps.paymentRepo.UpdatePayment(ctx, payment.ID, map[string]interface{}{
		"status":     models.PaymentCompleted,
		"ref_id":     refID,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}
	slog.Info("payment completed", "payment_id", updated.ID, "transaction_id", transactionID, "ref_id", refID)
	return updated, nil
}

// Fail marks the booking's latest pending payment failed, used by the
// gateway failure redirect. A missing pending payment is not an error.
func (ps *PaymentService) Fail(ctx context.Context, transactionID string) error {
	payment, err := ps.paymentRepo.GetPaymentByTransactionID(ctx, transactionID, true)
	if err != nil {
		return err
	}
	if payment == nil {
		return nil
	}
	_, err = ps.paymentRepo.UpdatePayment(ctx, payment.ID, map[string]interface{}{
		"status":     models.PaymentFailed,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
	return err
}

// DemoComplete marks a booking's pending payment completed without
// touching the gateway. Kept for the sandbox builds where the eSewa
// test environment is flaky.
func (ps *PaymentService) DemoComplete(ctx context.Context, customerID, bookingID int64) (*models.Payment, error) {
	booking, err := ps.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != customerID {
		return nil, apperr.Unauthorizedf("not your booking")
	}

	payment, err := ps.paymentRepo.GetLatestPendingPaymentByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperr.NotFoundf("no pending payment for booking")
	}
	return ps.paymentRepo.UpdatePayment(ctx, payment.ID, map[string]interface{}{
		"status":     models.PaymentCompleted,
		"ref_id":     "DEMO",
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
}
