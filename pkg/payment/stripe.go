package payment

import (
	"catalog-service/config"
	"context"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type Stripe struct {
	api      *client.API
	currency string
}

func NewStripe(cfg config.Stripe) *Stripe {
	api := &client.API{}
	api.Init(cfg.Secret, nil)
	return &Stripe{api: api, currency: cfg.Currency}
}

// CreatePaymentIntent opens a card payment for amount in the smallest
// currency unit and returns its client secret.
func (s *Stripe) CreatePaymentIntent(ctx context.Context, amount int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(s.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}
