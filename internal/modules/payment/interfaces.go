package payment

import "context"

// Intent is the provider-side payment intent handed back to the client.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// IntentCreator abstracts the payment provider so tests can stand in a fake.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error)
}
