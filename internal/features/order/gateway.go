package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
)

// SessionCreator hands line items to the hosted-checkout provider and
// returns the URL the customer is redirected to. The order id rides in the
// session metadata so the webhook can correlate the payment back.
type SessionCreator interface {
	CreateCheckoutSession(ctx context.Context, lineItems []LineItem, customerEmail, orderID string) (string, error)
}

type stripeGateway struct {
	publicURL string
}

func NewStripeGateway(secretKey, publicURL string) SessionCreator {
	stripe.Key = secretKey

	return &stripeGateway{
		publicURL: publicURL,
	}
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, lineItems []LineItem, customerEmail, orderID string) (string, error) {
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lineItems))
	for _, item := range lineItems {
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(item.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(item.PriceData.Currency),
				UnitAmount: stripe.Int64(item.PriceData.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.PriceData.ProductData.Name),
				},
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:     items,
		CustomerEmail: stripe.String(customerEmail),
		SuccessURL:    stripe.String(g.publicURL + "/cart?success=true"),
		CancelURL:     stripe.String(g.publicURL + "/cart?canceled=true"),
	}
	params.Context = ctx
	params.AddMetadata("orderId", orderID)
	params.SetIdempotencyKey(uuid.NewString())

	checkoutSession, err := session.New(params)
	if err != nil {
		return "", errors.Wrap(err, "failed to create stripe checkout session")
	}

	return checkoutSession.URL, nil
}
