// Package client is the panel's interactive front end: an API client, the
// customer list view and the detail modal, with the render layer that turns
// server responses into escaped HTML fragments.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"customer-panel/internal/domain"
)

// Strings is the localized text the client shows for common states.
type Strings struct {
	Loading         string
	Error           string
	NoData          string
	CustomerDetails string
}

// DefaultStrings returns the english string table.
func DefaultStrings() Strings {
	return Strings{
		Loading:         "Loading...",
		Error:           "An error occurred. Please try again.",
		NoData:          "No data available.",
		CustomerDetails: "Customer Details",
	}
}

// API is the server surface the views depend on.
type API interface {
	CustomerDetails(ctx context.Context, customerID int64, tab string) (*domain.DetailPayload, error)
	FilterCustomers(ctx context.Context, search string, filters map[string]interface{}) ([]domain.CustomerSummary, error)
	SearchCustomers(ctx context.Context, search string) ([]domain.CustomerSummary, error)
}

// RequestTimeout bounds every network call; a timeout is a recoverable error,
// never a stuck UI.
const RequestTimeout = 30 * time.Second

// HTTPClient talks to the panel endpoints.
type HTTPClient struct {
	baseURL   string
	authToken string
	http      *http.Client
}

// NewHTTPClient creates an HTTPClient with the bounded request timeout.
func NewHTTPClient(baseURL, authToken string) *HTTPClient {
	return &HTTPClient{
		baseURL:   baseURL,
		authToken: authToken,
		http:      &http.Client{Timeout: RequestTimeout},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
}

func (c *HTTPClient) CustomerDetails(ctx context.Context, customerID int64, tab string) (*domain.DetailPayload, error) {
	var out domain.DetailPayload
	err := c.post(ctx, "/panel/get_customer_details", map[string]interface{}{
		"customer_id": customerID,
		"tab":         tab,
		"auth_token":  c.authToken,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) FilterCustomers(ctx context.Context, search string, filters map[string]interface{}) ([]domain.CustomerSummary, error) {
	var out []domain.CustomerSummary
	err := c.post(ctx, "/panel/filter_customers", map[string]interface{}{
		"search":     search,
		"filters":    filters,
		"auth_token": c.authToken,
	}, &out)
	return out, err
}

func (c *HTTPClient) SearchCustomers(ctx context.Context, search string) ([]domain.CustomerSummary, error) {
	var out []domain.CustomerSummary
	err := c.post(ctx, "/panel/search_customers", map[string]interface{}{
		"search":     search,
		"auth_token": c.authToken,
	}, &out)
	return out, err
}

func (c *HTTPClient) post(ctx context.Context, path string, body map[string]interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("panel request: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return failureError(env)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	}
	return nil
}

func failureError(env envelope) error {
	var base error
	switch env.Code {
	case "security_check_failed":
		base = domain.ErrSecurityCheckFailed
	case "access_denied":
		base = domain.ErrAccessDenied
	case "invalid_input":
		base = domain.ErrInvalidInput
	case "not_found":
		base = domain.ErrNotFound
	default:
		base = domain.ErrUpstreamUnavailable
	}
	if env.Message != "" {
		return fmt.Errorf("%s: %w", env.Message, base)
	}
	return base
}
