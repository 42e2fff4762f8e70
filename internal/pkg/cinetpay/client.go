package cinetpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL = "https://api-checkout.cinetpay.com"

	codeCreated = "201"
	codeSuccess = "00"
)

// Transaction statuses reported by the check endpoint.
const (
	StatusAccepted = "ACCEPTED"
	StatusRefused  = "REFUSED"
	StatusCanceled = "CANCELED"
	StatusPending  = "PENDING"
)

var ErrGateway = errors.New("cinetpay gateway error")

type Config struct {
	APIKey    string
	SiteID    string
	BaseURL   string
	NotifyURL string
	ReturnURL string
	Timeout   time.Duration
}

type Invoice struct {
	TransactionID string
	Amount        int64
	Currency      string
	Description   string
}

type InvoiceResult struct {
	PaymentToken string
	PaymentURL   string
}

type TransactionStatus struct {
	TransactionID string
	Status        string
	Amount        decimal.Decimal
	Currency      string
	PaymentMethod string
}

// Client talks to the CinetPay checkout API.
type Client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

func (c *Client) Configured() bool {
	return c.cfg.APIKey != "" && c.cfg.SiteID != ""
}

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type paymentRequest struct {
	APIKey        string `json:"apikey"`
	SiteID        string `json:"site_id"`
	TransactionID string `json:"transaction_id"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Description   string `json:"description"`
	NotifyURL     string `json:"notify_url,omitempty"`
	ReturnURL     string `json:"return_url,omitempty"`
	Channels      string `json:"channels"`
}

type paymentData struct {
	PaymentToken string `json:"payment_token"`
	PaymentURL   string `json:"payment_url"`
}

type checkRequest struct {
	APIKey        string `json:"apikey"`
	SiteID        string `json:"site_id"`
	TransactionID string `json:"transaction_id"`
}

type checkData struct {
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
}

// CreateInvoice opens a checkout session and returns the URL to redirect the customer to.
func (c *Client) CreateInvoice(ctx context.Context, inv Invoice) (*InvoiceResult, error) {
	req := paymentRequest{
		APIKey:        c.cfg.APIKey,
		SiteID:        c.cfg.SiteID,
		TransactionID: inv.TransactionID,
		Amount:        inv.Amount,
		Currency:      inv.Currency,
		Description:   inv.Description,
		NotifyURL:     c.cfg.NotifyURL,
		ReturnURL:     c.cfg.ReturnURL,
		Channels:      "ALL",
	}

	env, err := c.post(ctx, "/v2/payment", req)
	if err != nil {
		return nil, err
	}
	if env.Code != codeCreated {
		return nil, fmt.Errorf("%w: create payment: %s %s", ErrGateway, env.Code, env.Message)
	}

	var data paymentData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: decode payment data: %v", ErrGateway, err)
	}
	if data.PaymentURL == "" {
		return nil, fmt.Errorf("%w: empty payment_url", ErrGateway)
	}
	return &InvoiceResult{PaymentToken: data.PaymentToken, PaymentURL: data.PaymentURL}, nil
}

// CheckTransaction asks the gateway for the authoritative transaction state.
func (c *Client) CheckTransaction(ctx context.Context, txID string) (*TransactionStatus, error) {
	env, err := c.post(ctx, "/v2/payment/check", checkRequest{
		APIKey:        c.cfg.APIKey,
		SiteID:        c.cfg.SiteID,
		TransactionID: txID,
	})
	if err != nil {
		return nil, err
	}

	var data checkData
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("%w: decode check data: %v", ErrGateway, err)
		}
	}
	if env.Code != codeSuccess && data.Status == "" {
		return nil, fmt.Errorf("%w: check payment: %s %s", ErrGateway, env.Code, env.Message)
	}

	return &TransactionStatus{
		TransactionID: txID,
		Status:        strings.ToUpper(data.Status),
		Amount:        data.Amount,
		Currency:      data.Currency,
		PaymentMethod: data.PaymentMethod,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body any) (*envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrGateway, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: status %d: %v", ErrGateway, resp.StatusCode, err)
	}
	return &env, nil
}
