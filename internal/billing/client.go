package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"urbanfix/internal/config"
	"urbanfix/internal/interfaces"
	"urbanfix/internal/utils/httpclient"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the payment processor's production API.
const DefaultBaseURL = "https://api.mercadopago.com"

// Client talks to the payment processor's preapproval (recurring charge) API.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      *logrus.Logger
}

// NewClient creates the payment processor client.
func NewClient(cfg config.BillingConfig, logger *logrus.Logger) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:     baseURL,
		accessToken: cfg.AccessToken,
		httpClient:  httpclient.New(httpclient.Options{Timeout: cfg.Timeout, Proxy: cfg.Proxy}, logger),
		logger:      logger,
	}
}

type preapprovalRequest struct {
	Reason            string        `json:"reason"`
	PayerEmail        string        `json:"payer_email"`
	BackURL           string        `json:"back_url"`
	ExternalReference string        `json:"external_reference"`
	AutoRecurring     autoRecurring `json:"auto_recurring"`
}

type autoRecurring struct {
	Frequency         int     `json:"frequency"`
	FrequencyType     string  `json:"frequency_type"`
	TransactionAmount float64 `json:"transaction_amount"`
	CurrencyID        string  `json:"currency_id"`
}

type preapprovalResponse struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	InitPoint       string `json:"init_point"`
	NextPaymentDate string `json:"next_payment_date"`
	Message         string `json:"message,omitempty"`
}

// CreatePreapproval opens a monthly recurring ARS charge and returns the
// checkout URL the payer must visit to authorize it.
func (c *Client) CreatePreapproval(ctx context.Context, req *interfaces.PreapprovalRequest) (*interfaces.Preapproval, error) {
	if c.accessToken == "" {
		return nil, fmt.Errorf("billing access token not configured")
	}
	body, err := json.Marshal(preapprovalRequest{
		Reason:            req.Reason,
		PayerEmail:        req.PayerEmail,
		BackURL:           req.BackURL,
		ExternalReference: req.ExternalRef,
		AutoRecurring: autoRecurring{
			Frequency:         1,
			FrequencyType:     "months",
			TransactionAmount: req.AmountARS,
			CurrencyID:        "ARS",
		},
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/preapproval", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)
	httpReq.Header.Set("X-Idempotency-Key", uuid.NewString())

	return c.do(httpReq)
}

// GetPreapproval reads the current state of a recurring charge.
func (c *Client) GetPreapproval(ctx context.Context, id string) (*interfaces.Preapproval, error) {
	if c.accessToken == "" {
		return nil, fmt.Errorf("billing access token not configured")
	}
	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/preapproval/"+id, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	return c.do(httpReq)
}

func (c *Client) do(req *http.Request) (*interfaces.Preapproval, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("payment processor request failed")
		return nil, fmt.Errorf("payment processor request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var result preapprovalResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		c.logger.WithError(err).WithField("body", string(respBody)).Warn("payment processor response decode failed")
		return nil, fmt.Errorf("payment processor response decode: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg := result.Message
		if msg == "" {
			msg = string(respBody)
		}
		c.logger.WithField("status", resp.StatusCode).WithField("message", msg).Warn("payment processor error")
		return nil, fmt.Errorf("payment processor error %d: %s", resp.StatusCode, msg)
	}

	return &interfaces.Preapproval{
		ID:          result.ID,
		Status:      result.Status,
		CheckoutURL: result.InitPoint,
		NextPayment: result.NextPaymentDate,
	}, nil
}
