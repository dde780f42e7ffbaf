package query

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/yosilia/dm-touch-backend/internal/handlerutils"
	"github.com/yosilia/dm-touch-backend/internal/servererrors"
	"github.com/yosilia/dm-touch-backend/internal/validate"
)

type servicer interface {
	createGeneralQuery(ctx context.Context, req *CreateGeneralQueryRequest) (*GeneralQuery, error)
	getAllGeneralQueries(ctx context.Context) ([]*GeneralQuery, error)
	updateGeneralQuery(ctx context.Context, req *UpdateGeneralQueryRequest) (*GeneralQuery, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityType string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(queryService servicer, middleware middleware) *handler {
	return &handler{
		service:    queryService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/general-queries",
		handlerutils.MakeHandler(h.createGeneralQueryHandler),
	)

	// protected routes
	router.Get(
		"/general-queries",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(h.getAllGeneralQueriesHandler, "admin"),
		),
	)

	router.Put(
		"/general-queries",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(h.updateGeneralQueryHandler, "admin"),
		),
	)
}

func (h *handler) createGeneralQueryHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var payload *CreateGeneralQueryRequest
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

	generalQuery, err := h.service.createGeneralQuery(ctx, payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"general query created",
		generalQuery,
	)
}

func (h *handler) getAllGeneralQueriesHandler(w http.ResponseWriter, r *http.Request) error {
	queries, err := h.service.getAllGeneralQueries(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all general queries retrieved",
		queries,
	)
}

func (h *handler) updateGeneralQueryHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var payload *UpdateGeneralQueryRequest
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

	generalQuery, err := h.service.updateGeneralQuery(ctx, payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrQueryNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrQueryNotFound.Error(),
				nil,
			)
		}
		if errors.Is(err, servererrors.ErrValidationFailed) {
			return servererrors.New(
				http.StatusUnprocessableEntity,
				servererrors.ErrValidationFailed.Error(),
				nil,
			)
		}
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"general query updated",
		generalQuery,
	)
}
