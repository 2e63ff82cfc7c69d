package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"minemarket/internal/domain"
	"minemarket/internal/pkg/authz"
)

func TestCreateIntentEncodesRequest(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payment_intents", r.URL.Path)
		require.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret","status":"requires_payment_method"}`))
	}))
	defer srv.Close()

	client := NewStripeClientWithBaseURL("sk_test_123", srv.URL)
	svc := NewService(client)

	intent, err := svc.CreateIntent(context.Background(),
		authz.Actor{ID: 42, Role: domain.RoleInvestor},
		CreateIntentRequest{Amount: 1234.56, Purpose: "offer_deposit"})
	require.NoError(t, err)

	require.Equal(t, "pi_123", intent.ID)
	require.Equal(t, "pi_123_secret", intent.ClientSecret)
	require.Equal(t, "requires_payment_method", intent.Status)

	require.Equal(t, "123456", gotForm["amount"])
	require.Equal(t, "zar", gotForm["currency"])
	require.Equal(t, "42", gotForm["metadata[user_id]"])
	require.Equal(t, "offer_deposit", gotForm["metadata[purpose]"])
}

func TestCreateIntentProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	svc := NewService(NewStripeClientWithBaseURL("sk_test_123", srv.URL))

	_, err := svc.CreateIntent(context.Background(),
		authz.Actor{ID: 1, Role: domain.RoleCustomer},
		CreateIntentRequest{Amount: 100})
	require.ErrorIs(t, err, ErrProvider)
	require.Contains(t, err.Error(), "card was declined")
}

func TestCreateIntentValidation(t *testing.T) {
	svc := NewService(NewStripeClient("sk_test_123"))
	actor := authz.Actor{ID: 1, Role: domain.RoleCustomer}

	_, err := svc.CreateIntent(context.Background(), actor, CreateIntentRequest{Amount: 0})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateIntent(context.Background(), actor, CreateIntentRequest{Amount: 10, Currency: "rand"})
	require.ErrorIs(t, err, ErrValidation)
}
