// Package payment creates card payment intents for deposits and
// settlements.  Amounts cross this boundary in minor units (pence);
// everything upstream works in major units.
package payment

import "context"

// IntentClient creates a payment intent with the card processor and
// returns the client secret the frontend needs to confirm the charge.
// idempotencyKey may be empty; when set, retried requests with the
// same key return the original intent instead of charging twice.
type IntentClient interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency, idempotencyKey string) (clientSecret string, err error)
}
