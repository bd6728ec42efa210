package payment

import (
	"context"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

// StripeClient implements IntentClient against the Stripe API.
type StripeClient struct{}

// NewStripeClient sets the account secret key and returns a client.
// The stripe library keeps the key in package state, so construct this
// once at startup.
func NewStripeClient(secretKey string) *StripeClient {
	stripe.Key = secretKey
	return &StripeClient{}
}

// CreateIntent creates a PaymentIntent for the given amount in minor
// units and returns its client secret.
func (c *StripeClient) CreateIntent(ctx context.Context, amountMinor int64, currency, idempotencyKey string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	if idempotencyKey != "" {
		params.SetIdempotencyKey(idempotencyKey)
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}
