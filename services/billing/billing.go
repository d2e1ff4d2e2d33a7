// File: services/billing/billing.go
package billing

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"detailify/models"
)

// PaymentProvider creates a deposit payment intent for a booking. Payment
// capture, refunds, and webhook handling live outside this service.
type PaymentProvider interface {
	CreateDepositIntent(ctx context.Context, b *models.Booking) (string, error)
}

// StripeProvider is the production PaymentProvider. The package-level
// stripe.Key is set at startup from config.
type StripeProvider struct {
	Currency string // defaults to "usd"
}

func (p *StripeProvider) CreateDepositIntent(ctx context.Context, b *models.Booking) (string, error) {
	currency := p.Currency
	if currency == "" {
		currency = "usd"
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(b.Price * 100)),
		Currency: stripe.String(currency),
		Metadata: map[string]string{
			"bookingId": b.ID,
			"tenantId":  b.TenantID,
			"service":   b.Service,
		},
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent for booking %s: %w", b.ID, err)
	}
	return intent.ClientSecret, nil
}
