package stripe

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/customer"
	"github.com/stripe/stripe-go/v84/paymentintent"
)

// IntentClient exposes the subset of Stripe operations the donation and
// ticket services need. A nil IntentClient means Stripe is not configured and
// callers fall back to mock intents.
type IntentClient interface {
	CreateIntent(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	RetrieveIntent(ctx context.Context, id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	CreateCustomer(ctx context.Context, params *stripe.CustomerParams) (*stripe.Customer, error)
}

type intentClientWrapper struct{}

// NewIntentClient wraps the provided Stripe client so payment services can be
// tested against the interface.
func NewIntentClient(api *Client) IntentClient {
	if api == nil {
		return nil
	}
	return &intentClientWrapper{}
}

func (w *intentClientWrapper) CreateIntent(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	if params != nil {
		params.Context = ctx
	}
	return paymentintent.New(params)
}

func (w *intentClientWrapper) RetrieveIntent(ctx context.Context, id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	if params != nil {
		params.Context = ctx
	}
	return paymentintent.Get(id, params)
}

func (w *intentClientWrapper) CreateCustomer(ctx context.Context, params *stripe.CustomerParams) (*stripe.Customer, error) {
	if params != nil {
		params.Context = ctx
	}
	return customer.New(params)
}

// MockIntent carries the synthesized intent values used when Stripe is not
// configured, so local checkout flows still complete end to end.
type MockIntent struct {
	ID           string
	ClientSecret string
}

// NewMockIntent synthesizes a payment intent id and client secret in the
// pi_mock_ namespace, which never collides with real Stripe ids.
func NewMockIntent(now time.Time) MockIntent {
	stamp := now.UnixMilli()
	return MockIntent{
		ID:           fmt.Sprintf("pi_mock_%d", stamp),
		ClientSecret: fmt.Sprintf("pi_mock_secret_%d", stamp),
	}
}

// IsMockIntentID reports whether the id was synthesized locally.
func IsMockIntentID(id string) bool {
	return len(id) > len("pi_mock_") && id[:len("pi_mock_")] == "pi_mock_"
}
