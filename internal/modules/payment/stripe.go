package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const stripeAPIBase = "https://api.stripe.com"

// StripeClient talks to the payment-intent endpoint directly over HTTP.
type StripeClient struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewStripeClient(secretKey string) *StripeClient {
	return &StripeClient{
		secretKey: secretKey,
		baseURL:   stripeAPIBase,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewStripeClientWithBaseURL points the client at a different host, which
// tests use to target a local server.
func NewStripeClientWithBaseURL(secretKey, baseURL string) *StripeClient {
	c := NewStripeClient(secretKey)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type stripeIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

type stripeErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *StripeClient) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", strings.ToLower(currency))
	for k, v := range metadata {
		form.Set("metadata["+k+"]", v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr stripeErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrProvider, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
	}

	var out stripeIntentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	return &Intent{
		ID:           out.ID,
		ClientSecret: out.ClientSecret,
		Status:       out.Status,
	}, nil
}
