package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	"travelnest/internal/config"
)

// Gateway status values as reported by Chapa for a transaction.
const (
	GatewayStatusSuccess = "success"
	GatewayStatusFailed  = "failed"
	GatewayStatusPending = "pending"
)

type InitializeRequest struct {
	Amount      decimal.Decimal
	Currency    string
	Email       string
	FirstName   string
	Reference   string
	CallbackURL string
	ReturnURL   string
}

type InitializeResult struct {
	CheckoutURL string
}

// VerificationResult is the normalized outcome of either reconciliation
// source: a verify call or a webhook payload.
type VerificationResult struct {
	Status        string
	TransactionID string
	Method        string
	Raw           string
}

type GatewayClient interface {
	Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error)
	Verify(ctx context.Context, reference string) (*VerificationResult, error)
}

// ChapaClient talks to the Chapa REST API with the merchant's secret key.
type ChapaClient struct {
	secretKey string
	baseURL   string
	httpc     *http.Client
}

func NewChapaClient(cfg config.ChapaConfig) *ChapaClient {
	return &ChapaClient{
		secretKey: cfg.SecretKey,
		baseURL:   cfg.BaseURL,
		httpc:     &http.Client{Timeout: cfg.Timeout},
	}
}

type chapaEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type chapaInitData struct {
	CheckoutURL string `json:"checkout_url"`
}

type chapaVerifyData struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Method    string `json:"method"`
	TxRef     string `json:"tx_ref"`
}

func (c *ChapaClient) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	payload := map[string]string{
		"amount":       req.Amount.StringFixed(2),
		"currency":     req.Currency,
		"email":        req.Email,
		"first_name":   req.FirstName,
		"tx_ref":       req.Reference,
		"callback_url": req.CallbackURL,
		"return_url":   req.ReturnURL,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	env, _, err := c.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if env.Status != GatewayStatusSuccess {
		return nil, fmt.Errorf("gateway rejected initialization: %s", env.Message)
	}

	var data chapaInitData
	if err := json.Unmarshal(env.Data, &data); err != nil || data.CheckoutURL == "" {
		return nil, fmt.Errorf("gateway returned no checkout url")
	}
	return &InitializeResult{CheckoutURL: data.CheckoutURL}, nil
}

func (c *ChapaClient) Verify(ctx context.Context, reference string) (*VerificationResult, error) {
	env, raw, err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}

	var data chapaVerifyData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("unparseable verify response: %w", err)
	}

	return &VerificationResult{
		Status:        data.Status,
		TransactionID: data.Reference,
		Method:        data.Method,
		Raw:           raw,
	}, nil
}

func (c *ChapaClient) do(ctx context.Context, method, path string, body io.Reader) (*chapaEnvelope, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, "", fmt.Errorf("reading gateway response: %w", err)
	}

	var env chapaEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, "", fmt.Errorf("unparseable gateway response (http %d): %w", resp.StatusCode, err)
	}
	return &env, string(raw), nil
}
