package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const ProviderStripe = "stripe"

type StripeProvider struct {
	client *client.API
}

func NewStripeProvider(secretKey string) *StripeProvider {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &StripeProvider{
		client: sc,
	}
}

func (s *StripeProvider) Name() string {
	return ProviderStripe
}

func (s *StripeProvider) CreateIntent(ctx context.Context, request *IntentRequest) (*Intent, error) {
	minor, err := toMinorUnits(request.Amount)
	if err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minor),
		Currency: stripe.String(request.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if request.Description != "" {
		params.Description = stripe.String(request.Description)
	}
	for key, value := range request.Metadata {
		params.AddMetadata(key, value)
	}

	pi, err := s.client.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Provider:     ProviderStripe,
		Amount:       fromMinorUnits(pi.Amount),
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		CreatedAt:    pi.Created,
	}, nil
}

// Confirm confirms the intent server-side if it still needs confirmation and succeeds only when
// Stripe reports the intent as succeeded.
func (s *StripeProvider) Confirm(ctx context.Context, intentID string) (*Confirmation, error) {
	getParams := &stripe.PaymentIntentParams{}
	getParams.Context = ctx

	pi, err := s.client.PaymentIntents.Get(intentID, getParams)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	if pi.Status == stripe.PaymentIntentStatusRequiresConfirmation {
		confirmParams := &stripe.PaymentIntentConfirmParams{}
		confirmParams.Context = ctx

		pi, err = s.client.PaymentIntents.Confirm(intentID, confirmParams)
		if err != nil {
			return nil, fmt.Errorf("failed to confirm payment intent: %w", err)
		}
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("%w: intent %s is %s", ErrNotConfirmed, pi.ID, pi.Status)
	}

	return &Confirmation{
		IntentID:    pi.ID,
		Status:      string(pi.Status),
		Amount:      fromMinorUnits(pi.Amount),
		Currency:    string(pi.Currency),
		ConfirmedAt: pi.Created,
		CustomerID:  customerOf(pi.Metadata),
		Metadata:    pi.Metadata,
	}, nil
}
