package order

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/yosilia/dm-touch-backend/internal/features/product"
	"github.com/yosilia/dm-touch-backend/internal/mailer"
	"github.com/yosilia/dm-touch-backend/internal/realtime"
	"github.com/yosilia/dm-touch-backend/internal/servererrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const currency = "gbp"

type storer interface {
	createOne(ctx context.Context, order *Order) (primitive.ObjectID, error)
	findAll(ctx context.Context, filter listFilter) ([]*Order, error)
	findByID(ctx context.Context, orderID primitive.ObjectID) (*Order, error)
	updateStatus(ctx context.Context, orderID primitive.ObjectID, status OrderStatus) (*Order, error)
	markPaid(ctx context.Context, orderID primitive.ObjectID) error
}

type productLister interface {
	ListByIDs(ctx context.Context, productIDs []primitive.ObjectID) ([]*product.Product, error)
}

type ServiceConfig struct {
	Store     storer
	Products  productLister
	Gateway   SessionCreator
	Publisher realtime.Publisher
	Mailer    mailer.Mailer

	// TaxRate is applied to the line-item subtotal; DeliveryFeePence is
	// appended as its own line item whenever nonzero.
	TaxRate          float64
	DeliveryFeePence int64
}

type service struct {
	*ServiceConfig
}

func NewService(cfg *ServiceConfig) *service {
	return &service{
		ServiceConfig: cfg,
	}
}

// Checkout prices the cart, persists a pending order and opens a hosted
// payment session. The order is written before the gateway call on purpose:
// a gateway failure leaves an unpaid order behind rather than losing the
// attempt entirely.
func (s *service) Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error) {
	lineItems, err := s.buildLineItems(ctx, req.CartProducts)
	if err != nil {
		return nil, err
	}

	order := &Order{
		LineItems:     lineItems,
		Name:          req.Name,
		Email:         req.Email,
		City:          req.City,
		Postcode:      req.Postcode,
		Phone:         req.Phone,
		StreetAddress: req.StreetAddress,
		Country:       req.Country,
		Paid:          false,
		OrderStatus:   StatusProcessing,
	}

	orderID, err := s.Store.createOne(ctx, order)
	if err != nil {
		return nil, err
	}

	url, err := s.Gateway.CreateCheckoutSession(ctx, lineItems, req.Email, orderID.Hex())
	if err != nil {
		return nil, errors.Join(servererrors.ErrPaymentSessionFailed, err)
	}

	return &CheckoutResponse{URL: url}, nil
}

// buildLineItems groups duplicate ids into quantities, prices each resolved
// product at its unit amount in pence, then appends the tax and delivery-fee
// items. Ids that no longer resolve to a product are dropped silently (the
// item is treated as no longer available), but a catalog lookup failure
// aborts the checkout: pricing a cart against an unreachable store would
// drop everything.
func (s *service) buildLineItems(ctx context.Context, cart Cart) ([]LineItem, error) {
	cartLines := cart.Lines()

	productIDs := make([]primitive.ObjectID, 0, len(cartLines))
	for _, line := range cartLines {
		productID, err := primitive.ObjectIDFromHex(line.ProductID)
		if err != nil {
			continue
		}
		productIDs = append(productIDs, productID)
	}

	productsByID := make(map[string]*product.Product, len(productIDs))
	if len(productIDs) > 0 {
		products, err := s.Products.ListByIDs(ctx, productIDs)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			productsByID[p.ProductID.Hex()] = p
		}
	}

	var lineItems []LineItem
	for _, line := range cartLines {
		info, ok := productsByID[line.ProductID]
		if !ok || line.Quantity == 0 {
			continue
		}

		lineItems = append(lineItems, LineItem{
			Quantity: line.Quantity,
			PriceData: PriceData{
				Currency: currency,
				ProductData: ProductData{
					Name: info.Title,
				},
				// unit price in pence, NOT multiplied by quantity
				UnitAmount: int64(math.Round(info.Price * 100)),
			},
		})
	}

	var subtotal int64
	for _, item := range lineItems {
		subtotal += item.Quantity * item.PriceData.UnitAmount
	}

	if taxAmount := int64(math.Round(float64(subtotal) * s.TaxRate)); taxAmount > 0 {
		lineItems = append(lineItems, LineItem{
			Quantity: 1,
			PriceData: PriceData{
				Currency:    currency,
				ProductData: ProductData{Name: "Tax"},
				UnitAmount:  taxAmount,
			},
		})
	}

	if s.DeliveryFeePence > 0 {
		lineItems = append(lineItems, LineItem{
			Quantity: 1,
			PriceData: PriceData{
				Currency:    currency,
				ProductData: ProductData{Name: "Delivery Fee"},
				UnitAmount:  s.DeliveryFeePence,
			},
		})
	}

	return lineItems, nil
}

func (s *service) getAllOrders(ctx context.Context, email string, paid *bool) ([]*Order, error) {
	return s.Store.findAll(ctx, listFilter{
		email: email,
		paid:  paid,
	})
}

func (s *service) getOrder(ctx context.Context, orderID primitive.ObjectID) (*Order, error) {
	return s.Store.findByID(ctx, orderID)
}

func (s *service) updateOrderStatus(ctx context.Context, orderID primitive.ObjectID, status OrderStatus) (*Order, error) {
	if !status.Valid() {
		return nil, servererrors.ErrInvalidOrderStatus
	}

	order, err := s.Store.updateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	// status mail is best-effort; the admin action already succeeded
	if err := s.Mailer.Send(
		order.Email,
		fmt.Sprintf("Your DM Touch order is now %s", order.OrderStatus),
		fmt.Sprintf(
			"Hi %s,\n\nYour order %s has been updated to: %s.\n\nThank you for shopping with DM Touch.",
			order.Name, order.OrderID.Hex(), order.OrderStatus,
		),
	); err != nil {
		logrus.WithError(err).WithField("orderID", order.OrderID.Hex()).
			Warn("failed to send order status email")
	}

	if err := s.Publisher.Publish(
		ctx,
		realtime.OrdersChannel,
		realtime.OrderUpdatedEvent,
		OrderUpdatedPayload{
			OrderID:     order.OrderID.Hex(),
			OrderStatus: string(order.OrderStatus),
		},
	); err != nil {
		logrus.WithError(err).WithField("orderID", order.OrderID.Hex()).
			Warn("failed to publish order update")
	}

	return order, nil
}

// HandleCheckoutCompleted flips the referenced order to paid. It is the only
// path that ever sets the flag, and setting it is naturally idempotent, so
// webhook redelivery is safe.
func (s *service) HandleCheckoutCompleted(ctx context.Context, orderIDHex string, paid bool) error {
	if orderIDHex == "" || !paid {
		logrus.WithFields(logrus.Fields{
			"orderID": orderIDHex,
			"paid":    paid,
		}).Info("checkout completed event without payable order, skipping")
		return nil
	}

	orderID, err := primitive.ObjectIDFromHex(orderIDHex)
	if err != nil {
		logrus.WithField("orderID", orderIDHex).
			Warn("checkout completed event carried a malformed order id")
		return nil
	}

	err = s.Store.markPaid(ctx, orderID)
	if errors.Is(err, servererrors.ErrOrderNotFound) {
		// redelivering an event for an order we never stored can't succeed,
		// so acknowledge it instead of making the provider retry forever
		logrus.WithField("orderID", orderIDHex).
			Warn("checkout completed event references an unknown order")
		return nil
	}

	return err
}
