package payment

import (
	"context"
	"math"
	"strconv"
	"strings"

	"minemarket/internal/pkg/authz"
)

type Service struct {
	provider IntentCreator
}

func NewService(provider IntentCreator) *Service {
	return &Service{provider: provider}
}

// CreateIntent converts the amount to minor units and tags the intent with
// the calling user so webhooks can be reconciled later.
func (s *Service) CreateIntent(ctx context.Context, actor authz.Actor, req CreateIntentRequest) (*Intent, error) {
	if req.Amount <= 0 {
		return nil, ErrValidation
	}
	currency := strings.TrimSpace(req.Currency)
	if currency == "" {
		currency = "zar"
	}
	if len(currency) != 3 {
		return nil, ErrValidation
	}

	cents := int64(math.Round(req.Amount * 100))
	metadata := map[string]string{
		"user_id": strconv.FormatInt(actor.ID, 10),
	}
	if req.Purpose != "" {
		metadata["purpose"] = req.Purpose
	}

	return s.provider.CreateIntent(ctx, cents, currency, metadata)
}
