// Package billing wraps the outbound Stripe calls the checkout flow needs.
package billing

import (
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/customer"
)

var (
	// ErrNotConfigured means Stripe credentials are missing; the caller gets
	// a generic server error.
	ErrNotConfigured = errors.New("stripe not configured on server")
)

// Client is the outbound billing surface. A test double stands in for Stripe
// in handler tests.
type Client interface {
	CreateCustomer(email string, userID uint) (string, error)
	CreateCheckoutSession(customerID, successURL, cancelURL string) (string, error)
}

// StripeClient calls the real Stripe API for a single server-configured
// subscription price.
type StripeClient struct {
	priceID string
}

func NewStripeClient(secretKey, priceID string) (*StripeClient, error) {
	if secretKey == "" || priceID == "" {
		return nil, ErrNotConfigured
	}
	stripe.Key = secretKey
	return &StripeClient{priceID: priceID}, nil
}

func (c *StripeClient) CreateCustomer(email string, userID uint) (string, error) {
	cus, err := customer.New(&stripe.CustomerParams{
		Email: stripe.String(email),
		Metadata: map[string]string{
			"user_id": fmt.Sprint(userID),
		},
	})
	if err != nil {
		return "", fmt.Errorf("create stripe customer: %w", err)
	}
	return cus.ID, nil
}

func (c *StripeClient) CreateCheckoutSession(customerID, successURL, cancelURL string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(customerID),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(c.priceID), Quantity: stripe.Int64(1)},
		},
	}
	s, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return s.URL, nil
}
