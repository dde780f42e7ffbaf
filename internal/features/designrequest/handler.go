package designrequest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/yosilia/dm-touch-backend/internal/handlerutils"
	"github.com/yosilia/dm-touch-backend/internal/servererrors"
	"github.com/yosilia/dm-touch-backend/internal/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type servicer interface {
	createDesignRequest(ctx context.Context, req *CreateDesignRequestRequest) (*DesignRequest, error)
	getAllDesignRequests(ctx context.Context, date, email string) ([]*DesignRequest, error)
	getDesignRequest(ctx context.Context, requestID primitive.ObjectID) (*DesignRequest, error)
	updateDesignRequest(ctx context.Context, req *UpdateDesignRequestRequest) (*DesignRequest, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityType string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(designRequestService servicer, middleware middleware) *handler {
	return &handler{
		service:    designRequestService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/design-requests",
		handlerutils.MakeHandler(h.createDesignRequestHandler),
	)

	router.Get(
		"/design-requests",
		handlerutils.MakeHandler(h.getAllDesignRequestsHandler),
	)

	router.Get(
		"/design-requests/{requestID}",
		handlerutils.MakeHandler(h.getDesignRequestHandler),
	)

	// protected routes
	router.Patch(
		"/design-requests",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(h.updateDesignRequestHandler, "admin"),
		),
	)
}

func (h *handler) createDesignRequestHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var payload *CreateDesignRequestRequest
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

	request, err := h.service.createDesignRequest(ctx, payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrDateFullyBooked) {
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrDateFullyBooked.Error(),
				nil,
			)
		}
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"design request created",
		request,
	)
}

func (h *handler) getAllDesignRequestsHandler(w http.ResponseWriter, r *http.Request) error {
	date := r.URL.Query().Get("date")
	email := r.URL.Query().Get("email")

	requests, err := h.service.getAllDesignRequests(r.Context(), date, email)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all design requests retrieved",
		requests,
	)
}

func (h *handler) getDesignRequestHandler(w http.ResponseWriter, r *http.Request) error {
	requestID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "requestID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrRequestNotFound.Error(),
			nil,
		)
	}

	request, err := h.service.getDesignRequest(r.Context(), requestID)
	if err != nil {
		return h.mapNotFound(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"design request retrieved",
		request,
	)
}

func (h *handler) updateDesignRequestHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var payload *UpdateDesignRequestRequest
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

	request, err := h.service.updateDesignRequest(ctx, payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrInvalidStatusChange) {
			return servererrors.New(
				http.StatusUnprocessableEntity,
				servererrors.ErrInvalidStatusChange.Error(),
				nil,
			)
		}
		return h.mapNotFound(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"design request updated",
		request,
	)
}

func (h *handler) mapNotFound(err error) error {
	if errors.Is(err, servererrors.ErrRequestNotFound) {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrRequestNotFound.Error(),
			nil,
		)
	}

	return err
}
