package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"urbanfix/internal/config"
	"urbanfix/internal/interfaces"
	"urbanfix/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// Client resolves bearer tokens against the hosted auth service's user
// endpoint. Token verification happens entirely on the hosted side; this
// client only forwards the token and reads the answer.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates the auth resolver client.
func NewClient(cfg config.AuthConfig, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpclient.New(httpclient.Options{Timeout: cfg.Timeout}, logger),
		logger:     logger,
	}
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Resolve implements interfaces.IdentityResolver. A 401/403 from the auth
// service means the token is bad -> (nil, nil); anything else unexpected is a
// transport error.
func (c *Client) Resolve(ctx context.Context, bearerToken string) (*interfaces.Identity, error) {
	if bearerToken == "" {
		return nil, nil
	}
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("auth service request failed")
		return nil, fmt.Errorf("auth service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, nil
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth service error %d: %s", resp.StatusCode, string(body))
	}

	var user userResponse
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("auth service response decode: %w", err)
	}
	if user.ID == "" {
		return nil, nil
	}
	return &interfaces.Identity{ID: user.ID, Email: user.Email}, nil
}
