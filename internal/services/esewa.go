package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// EsewaVerifier checks the state of an eSewa transaction with the
// gateway. Split out as an interface so the payment flow can be tested
// without calling eSewa.
type EsewaVerifier interface {
	TransactionStatus(ctx context.Context, transactionUUID string, totalAmount float64) (string, string, error)
}

const EsewaStatusComplete = "COMPLETE"

type EsewaConfig struct {
	ProductCode string // merchant code, EPAYTEST in the sandbox
	StatusURL   string
}

// EsewaClient talks to eSewa's transaction status endpoint. Verifying
// server-side means a forged success redirect cannot complete a payment.
type EsewaClient struct {
	cfg        EsewaConfig
	httpClient *http.Client
}

func NewEsewaClient(cfg EsewaConfig) *EsewaClient {
	if cfg.ProductCode == "" {
		cfg.ProductCode = "EPAYTEST"
	}
	if cfg.StatusURL == "" {
		cfg.StatusURL = "https://rc.esewa.com.np/api/epay/transaction/status/"
	}
	return &EsewaClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type esewaStatusResponse struct {
	Status string `json:"status"`
	RefID  string `json:"ref_id"`
}

func (ec *EsewaClient) TransactionStatus(ctx context.Context, transactionUUID string, totalAmount float64) (string, string, error) {
	params := url.Values{}
	params.Set("product_code", ec.cfg.ProductCode)
	params.Set("total_amount", fmt.Sprintf("%g", totalAmount))
	params.Set("transaction_uuid", transactionUUID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ec.cfg.StatusURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to build status request: %v", err)
	}
	resp, err := ec.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("esewa status check failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("esewa status check returned %d", resp.StatusCode)
	}

	var body esewaStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", "", fmt.Errorf("failed to decode esewa response: %v", err)
	}
	return body.Status, body.RefID, nil
}
