package order

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/yosilia/dm-touch-backend/internal/handlerutils"
	"github.com/yosilia/dm-touch-backend/internal/servererrors"
	"github.com/yosilia/dm-touch-backend/internal/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type servicer interface {
	Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error)
	getAllOrders(ctx context.Context, email string, paid *bool) ([]*Order, error)
	getOrder(ctx context.Context, orderID primitive.ObjectID) (*Order, error)
	updateOrderStatus(ctx context.Context, orderID primitive.ObjectID, status OrderStatus) (*Order, error)
	HandleCheckoutCompleted(ctx context.Context, orderIDHex string, paid bool) error
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityType string) handlerutils.APIHandler
}

type handler struct {
	service       servicer
	middleware    middleware
	webhookSecret string
}

func NewHandler(orderService servicer, middleware middleware, webhookSecret string) *handler {
	return &handler{
		service:       orderService,
		middleware:    middleware,
		webhookSecret: webhookSecret,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/checkout",
		handlerutils.MakeHandler(h.checkoutHandler),
	)

	router.Get(
		"/orders",
		handlerutils.MakeHandler(h.getAllOrdersHandler),
	)

	router.Get(
		"/orders/{orderID}",
		handlerutils.MakeHandler(h.getOrderHandler),
	)

	router.Post(
		"/webhooks/stripe",
		h.stripeWebhookHandler,
	)

	// protected routes
	router.Patch(
		"/orders/{orderID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(h.updateOrderStatusHandler, "admin"),
		),
	)
}

func (h *handler) checkoutHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var payload *CheckoutRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	res, err := h.service.Checkout(ctx, payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrPaymentSessionFailed) {
			return servererrors.New(
				http.StatusBadGateway,
				servererrors.ErrPaymentSessionFailed.Error(),
				nil,
			)
		}
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"checkout session created",
		res,
	)
}

func (h *handler) getAllOrdersHandler(w http.ResponseWriter, r *http.Request) error {
	email := r.URL.Query().Get("email")

	var paid *bool
	if raw := r.URL.Query().Get("paid"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrURLQueryParams.Error(),
				nil,
			)
		}
		paid = &parsed
	}

	orders, err := h.service.getAllOrders(r.Context(), email, paid)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all orders retrieved",
		orders,
	)
}

func (h *handler) getOrderHandler(w http.ResponseWriter, r *http.Request) error {
	orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orderID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrOrderNotFound.Error(),
			nil,
		)
	}

	order, err := h.service.getOrder(r.Context(), orderID)
	if err != nil {
		return h.mapNotFound(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order retrieved",
		order,
	)
}

func (h *handler) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orderID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrOrderNotFound.Error(),
			nil,
		)
	}

	var payload *UpdateOrderStatusRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	order, err := h.service.updateOrderStatus(ctx, orderID, OrderStatus(payload.OrderStatus))
	if err != nil {
		if errors.Is(err, servererrors.ErrInvalidOrderStatus) {
			return servererrors.New(
				http.StatusUnprocessableEntity,
				servererrors.ErrInvalidOrderStatus.Error(),
				nil,
			)
		}
		return h.mapNotFound(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order status updated",
		order,
	)
}

func (h *handler) mapNotFound(err error) error {
	if errors.Is(err, servererrors.ErrOrderNotFound) {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrOrderNotFound.Error(),
			nil,
		)
	}

	return err
}
