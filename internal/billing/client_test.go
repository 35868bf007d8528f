package billing

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"urbanfix/internal/config"
	"urbanfix/internal/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewClient(config.BillingConfig{BaseURL: srv.URL, AccessToken: "tok", Timeout: 5}, logger)
}

func TestCreatePreapproval(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/preapproval", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Idempotency-Key"))

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "tech-1", body["external_reference"])
		if recurring, ok := body["auto_recurring"].(map[string]interface{}); assert.True(t, ok) {
			assert.Equal(t, "ARS", recurring["currency_id"])
			assert.InDelta(t, 9999, recurring["transaction_amount"], 1e-9)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"pre_9","status":"pending","init_point":"https://pay.example/pre_9"}`))
	})

	pre, err := client.CreatePreapproval(context.Background(), &interfaces.PreapprovalRequest{
		Reason:      "UrbanFix profesional plan",
		PayerEmail:  "marta@example.com",
		AmountARS:   9999,
		ExternalRef: "tech-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "pre_9", pre.ID)
	assert.Equal(t, "pending", pre.Status)
	assert.Equal(t, "https://pay.example/pre_9", pre.CheckoutURL)
}

func TestGetPreapproval(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/preapproval/pre_9", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"pre_9","status":"authorized"}`))
	})

	pre, err := client.GetPreapproval(context.Background(), "pre_9")
	require.NoError(t, err)
	assert.Equal(t, "authorized", pre.Status)
}

func TestPreapproval_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"invalid payer_email"}`))
	})

	_, err := client.CreatePreapproval(context.Background(), &interfaces.PreapprovalRequest{AmountARS: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid payer_email")
}

func TestPreapproval_TokenMissing(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	client := NewClient(config.BillingConfig{}, logger)

	_, err := client.CreatePreapproval(context.Background(), &interfaces.PreapprovalRequest{})
	require.Error(t, err)
	_, err = client.GetPreapproval(context.Background(), "x")
	require.Error(t, err)
}
