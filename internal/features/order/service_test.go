package order

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yosilia/dm-touch-backend/internal/features/product"
	"github.com/yosilia/dm-touch-backend/internal/realtime"
	"github.com/yosilia/dm-touch-backend/internal/servererrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockStore struct {
	orders    map[primitive.ObjectID]*Order
	createErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		orders: make(map[primitive.ObjectID]*Order),
	}
}

func (m *mockStore) createOne(_ context.Context, order *Order) (primitive.ObjectID, error) {
	if m.createErr != nil {
		return primitive.NilObjectID, m.createErr
	}

	id := primitive.NewObjectID()
	order.OrderID = id
	m.orders[id] = order

	return id, nil
}

func (m *mockStore) findAll(_ context.Context, filter listFilter) ([]*Order, error) {
	var all []*Order
	for _, o := range m.orders {
		if filter.email != "" && o.Email != filter.email {
			continue
		}
		if filter.paid != nil && o.Paid != *filter.paid {
			continue
		}
		all = append(all, o)
	}

	return all, nil
}

func (m *mockStore) findByID(_ context.Context, orderID primitive.ObjectID) (*Order, error) {
	o, ok := m.orders[orderID]
	if !ok {
		return nil, servererrors.ErrOrderNotFound
	}

	return o, nil
}

func (m *mockStore) updateStatus(_ context.Context, orderID primitive.ObjectID, status OrderStatus) (*Order, error) {
	o, ok := m.orders[orderID]
	if !ok {
		return nil, servererrors.ErrOrderNotFound
	}
	o.OrderStatus = status

	return o, nil
}

func (m *mockStore) markPaid(_ context.Context, orderID primitive.ObjectID) error {
	o, ok := m.orders[orderID]
	if !ok {
		return servererrors.ErrOrderNotFound
	}
	o.Paid = true

	return nil
}

type mockProducts struct {
	products map[primitive.ObjectID]*product.Product
	listErr  error
}

func newMockProducts(products ...*product.Product) *mockProducts {
	m := &mockProducts{
		products: make(map[primitive.ObjectID]*product.Product),
	}
	for _, p := range products {
		m.products[p.ProductID] = p
	}

	return m
}

func (m *mockProducts) ListByIDs(_ context.Context, productIDs []primitive.ObjectID) ([]*product.Product, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}

	var found []*product.Product
	for _, id := range productIDs {
		if p, ok := m.products[id]; ok {
			found = append(found, p)
		}
	}

	return found, nil
}

type mockGateway struct {
	url   string
	err   error
	calls int

	lastLineItems []LineItem
	lastEmail     string
	lastOrderID   string
}

func (m *mockGateway) CreateCheckoutSession(_ context.Context, lineItems []LineItem, customerEmail, orderID string) (string, error) {
	m.calls++
	m.lastLineItems = lineItems
	m.lastEmail = customerEmail
	m.lastOrderID = orderID

	return m.url, m.err
}

type mockPublisher struct {
	events []realtime.Event
}

func (m *mockPublisher) Publish(_ context.Context, channel, name string, payload any) error {
	m.events = append(m.events, realtime.Event{Channel: channel, Name: name, Payload: payload})
	return nil
}

type mockMailer struct {
	sent []string
	err  error
}

func (m *mockMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, to)
	return m.err
}

func newTestService(store *mockStore, products *mockProducts, gateway *mockGateway) (*service, *mockPublisher, *mockMailer) {
	publisher := &mockPublisher{}
	mail := &mockMailer{}

	svc := NewService(&ServiceConfig{
		Store:            store,
		Products:         products,
		Gateway:          gateway,
		Publisher:        publisher,
		Mailer:           mail,
		TaxRate:          0.20,
		DeliveryFeePence: 450,
	})

	return svc, publisher, mail
}

func checkoutRequest(cart Cart) *CheckoutRequest {
	return &CheckoutRequest{
		Name:          "Ada Mensah",
		Email:         "ada@example.com",
		City:          "London",
		Postcode:      "E1 6AN",
		Phone:         "+447700900123",
		StreetAddress: "14 Brick Lane",
		Country:       "United Kingdom",
		CartProducts:  cart,
	}
}

func TestCheckout_PricesCartWithTaxAndDelivery(t *testing.T) {
	dress := &product.Product{ProductID: primitive.NewObjectID(), Title: "Ankara Dress", Price: 10.00}
	jacket := &product.Product{ProductID: primitive.NewObjectID(), Title: "Kente Jacket", Price: 20.00}

	store := newMockStore()
	gateway := &mockGateway{url: "https://checkout.example.com/s/1"}
	svc, _, _ := newTestService(store, newMockProducts(dress, jacket), gateway)

	// dress twice, jacket once
	res, err := svc.Checkout(context.Background(), checkoutRequest(Cart{
		dress.ProductID.Hex(),
		jacket.ProductID.Hex(),
		dress.ProductID.Hex(),
	}))
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example.com/s/1", res.URL)

	items := gateway.lastLineItems
	require.Len(t, items, 4)

	assert.Equal(t, "Ankara Dress", items[0].PriceData.ProductData.Name)
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.Equal(t, int64(1000), items[0].PriceData.UnitAmount)

	assert.Equal(t, "Kente Jacket", items[1].PriceData.ProductData.Name)
	assert.Equal(t, int64(1), items[1].Quantity)
	assert.Equal(t, int64(2000), items[1].PriceData.UnitAmount)

	// 20% of the 4000p subtotal
	assert.Equal(t, "Tax", items[2].PriceData.ProductData.Name)
	assert.Equal(t, int64(800), items[2].PriceData.UnitAmount)

	assert.Equal(t, "Delivery Fee", items[3].PriceData.ProductData.Name)
	assert.Equal(t, int64(450), items[3].PriceData.UnitAmount)

	for _, extra := range items[2:] {
		assert.Equal(t, int64(1), extra.Quantity)
		assert.Equal(t, "gbp", extra.PriceData.Currency)
	}
}

func TestCheckout_DropsUnknownProducts(t *testing.T) {
	dress := &product.Product{ProductID: primitive.NewObjectID(), Title: "Ankara Dress", Price: 10.00}

	gateway := &mockGateway{url: "https://checkout.example.com/s/2"}
	svc, _, _ := newTestService(newMockStore(), newMockProducts(dress), gateway)

	_, err := svc.Checkout(context.Background(), checkoutRequest(Cart{
		dress.ProductID.Hex(),
		primitive.NewObjectID().Hex(), // deleted since the cart was built
		"not-a-hex-id",
	}))
	require.NoError(t, err)

	items := gateway.lastLineItems
	require.Len(t, items, 3)
	assert.Equal(t, "Ankara Dress", items[0].PriceData.ProductData.Name)
	assert.Equal(t, "Tax", items[1].PriceData.ProductData.Name)
	assert.Equal(t, "Delivery Fee", items[2].PriceData.ProductData.Name)
}

func TestCheckout_EmptyCartStillCarriesDeliveryFee(t *testing.T) {
	gateway := &mockGateway{url: "https://checkout.example.com/s/3"}
	svc, _, _ := newTestService(newMockStore(), newMockProducts(), gateway)

	_, err := svc.Checkout(context.Background(), checkoutRequest(Cart{}))
	require.NoError(t, err)

	// zero subtotal means no tax item, but the flat fee still applies
	items := gateway.lastLineItems
	require.Len(t, items, 1)
	assert.Equal(t, "Delivery Fee", items[0].PriceData.ProductData.Name)
}

func TestCheckout_OrderPersistedBeforeGatewayFailure(t *testing.T) {
	dress := &product.Product{ProductID: primitive.NewObjectID(), Title: "Ankara Dress", Price: 10.00}

	store := newMockStore()
	gateway := &mockGateway{err: errors.New("stripe is down")}
	svc, _, _ := newTestService(store, newMockProducts(dress), gateway)

	_, err := svc.Checkout(context.Background(), checkoutRequest(Cart{dress.ProductID.Hex()}))
	assert.ErrorIs(t, err, servererrors.ErrPaymentSessionFailed)

	// the pending order survives so the attempt is not lost
	require.Len(t, store.orders, 1)
	for _, o := range store.orders {
		assert.False(t, o.Paid)
		assert.Equal(t, StatusProcessing, o.OrderStatus)
		assert.Equal(t, o.OrderID.Hex(), gateway.lastOrderID)
	}
}

func TestCheckout_CatalogFailureAbortsBeforePersisting(t *testing.T) {
	dress := &product.Product{ProductID: primitive.NewObjectID(), Title: "Ankara Dress", Price: 10.00}

	store := newMockStore()
	products := newMockProducts(dress)
	products.listErr = errors.New("connection refused")
	gateway := &mockGateway{url: "https://checkout.example.com/s/4"}
	svc, _, _ := newTestService(store, products, gateway)

	_, err := svc.Checkout(context.Background(), checkoutRequest(Cart{dress.ProductID.Hex()}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, servererrors.ErrPaymentSessionFailed)

	// an unreadable catalog must not produce a fee-only order or session
	assert.Empty(t, store.orders)
	assert.Zero(t, gateway.calls)
}

func TestCheckout_StoreFailureIsNotAGatewayFailure(t *testing.T) {
	dress := &product.Product{ProductID: primitive.NewObjectID(), Title: "Ankara Dress", Price: 10.00}

	store := newMockStore()
	store.createErr = errors.New("write concern timeout")
	gateway := &mockGateway{url: "https://checkout.example.com/s/5"}
	svc, _, _ := newTestService(store, newMockProducts(dress), gateway)

	_, err := svc.Checkout(context.Background(), checkoutRequest(Cart{dress.ProductID.Hex()}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, servererrors.ErrPaymentSessionFailed)
	assert.Zero(t, gateway.calls)
}

func TestUpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	store := newMockStore()
	svc, publisher, mail := newTestService(store, newMockProducts(), &mockGateway{})

	_, err := svc.updateOrderStatus(context.Background(), primitive.NewObjectID(), OrderStatus("Lost"))
	assert.ErrorIs(t, err, servererrors.ErrInvalidOrderStatus)
	assert.Empty(t, publisher.events)
	assert.Empty(t, mail.sent)
}

func TestUpdateOrderStatus_NotifiesAndPublishes(t *testing.T) {
	store := newMockStore()
	orderID, err := store.createOne(context.Background(), &Order{
		Name:        "Ada Mensah",
		Email:       "ada@example.com",
		OrderStatus: StatusProcessing,
	})
	require.NoError(t, err)

	svc, publisher, mail := newTestService(store, newMockProducts(), &mockGateway{})

	order, err := svc.updateOrderStatus(context.Background(), orderID, StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, order.OrderStatus)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "ada@example.com", mail.sent[0])

	require.Len(t, publisher.events, 1)
	assert.Equal(t, realtime.OrdersChannel, publisher.events[0].Channel)
	assert.Equal(t, realtime.OrderUpdatedEvent, publisher.events[0].Name)

	payload, ok := publisher.events[0].Payload.(OrderUpdatedPayload)
	require.True(t, ok)
	assert.Equal(t, orderID.Hex(), payload.OrderID)
	assert.Equal(t, string(StatusShipped), payload.OrderStatus)
}

func TestUpdateOrderStatus_MailFailureDoesNotFailUpdate(t *testing.T) {
	store := newMockStore()
	orderID, err := store.createOne(context.Background(), &Order{
		Email:       "ada@example.com",
		OrderStatus: StatusProcessing,
	})
	require.NoError(t, err)

	svc, publisher, mail := newTestService(store, newMockProducts(), &mockGateway{})
	mail.err = errors.New("smtp unreachable")

	order, err := svc.updateOrderStatus(context.Background(), orderID, StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, order.OrderStatus)
	assert.Len(t, publisher.events, 1)
}

func TestHandleCheckoutCompleted_MarksPaidIdempotently(t *testing.T) {
	store := newMockStore()
	orderID, err := store.createOne(context.Background(), &Order{
		Email:       "ada@example.com",
		OrderStatus: StatusProcessing,
	})
	require.NoError(t, err)

	svc, _, _ := newTestService(store, newMockProducts(), &mockGateway{})

	require.NoError(t, svc.HandleCheckoutCompleted(context.Background(), orderID.Hex(), true))
	assert.True(t, store.orders[orderID].Paid)

	// redelivery lands on the same flag
	require.NoError(t, svc.HandleCheckoutCompleted(context.Background(), orderID.Hex(), true))
	assert.True(t, store.orders[orderID].Paid)
}

func TestHandleCheckoutCompleted_IgnoresUnpaidSessions(t *testing.T) {
	store := newMockStore()
	orderID, err := store.createOne(context.Background(), &Order{
		OrderStatus: StatusProcessing,
	})
	require.NoError(t, err)

	svc, _, _ := newTestService(store, newMockProducts(), &mockGateway{})

	require.NoError(t, svc.HandleCheckoutCompleted(context.Background(), orderID.Hex(), false))
	assert.False(t, store.orders[orderID].Paid)

	require.NoError(t, svc.HandleCheckoutCompleted(context.Background(), "", true))
	require.NoError(t, svc.HandleCheckoutCompleted(context.Background(), "garbage", true))
}

func TestHandleCheckoutCompleted_UnknownOrderAcknowledged(t *testing.T) {
	store := newMockStore()
	svc, _, _ := newTestService(store, newMockProducts(), &mockGateway{})

	// an event for an order we never stored can't succeed on redelivery
	// either, so it must not surface as an error
	require.NoError(t, svc.HandleCheckoutCompleted(context.Background(), primitive.NewObjectID().Hex(), true))
	assert.Empty(t, store.orders)
}
