package category

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
	createCategory(ctx context.Context, req *CreateCategoryRequest) (*Category, error)
	updateCategory(ctx context.Context, req *UpdateCategoryRequest) (*Category, error)
	deleteCategory(ctx context.Context, categoryID primitive.ObjectID) error
	getAllCategories(ctx context.Context) ([]*Category, error)
	InheritedFeatures(ctx context.Context, categoryID primitive.ObjectID) ([]Feature, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityType string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(categoryService servicer, middleware middleware) *handler {
	return &handler{
		service:    categoryService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/categories",
		handlerutils.MakeHandler(h.getAllCategoriesHandler),
	)

	router.Get(
		"/categories/{categoryID}/features",
		handlerutils.MakeHandler(h.inheritedFeaturesHandler),
	)

	// protected routes
	router.Post(
		"/categories",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(h.createCategoryHandler, "admin"),
		),
	)

	router.Put(
		"/categories",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(h.updateCategoryHandler, "admin"),
		),
	)

	router.Delete(
		"/categories/{categoryID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(h.deleteCategoryHandler, "admin"),
		),
	)
}

func (h *handler) getAllCategoriesHandler(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.service.getAllCategories(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all categories retrieved",
		categories,
	)
}

func (h *handler) inheritedFeaturesHandler(w http.ResponseWriter, r *http.Request) error {
	categoryID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "categoryID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrCategoryNotFound.Error(),
			nil,
		)
	}

	features, err := h.service.InheritedFeatures(r.Context(), categoryID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"category features retrieved",
		InheritedFeaturesResponse{
			CategoryID: categoryID.Hex(),
			Features:   features,
		},
	)
}

func (h *handler) createCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var payload *CreateCategoryRequest
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

	category, err := h.service.createCategory(ctx, payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"category created",
		category,
	)
}

func (h *handler) updateCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var payload *UpdateCategoryRequest
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

	category, err := h.service.updateCategory(ctx, payload)
	if err != nil {
		return h.mapNotFound(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"category updated",
		category,
	)
}

func (h *handler) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	categoryID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "categoryID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrCategoryNotFound.Error(),
			nil,
		)
	}

	if err := h.service.deleteCategory(r.Context(), categoryID); err != nil {
		return h.mapNotFound(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"category deleted",
		nil,
	)
}

func (h *handler) mapNotFound(err error) error {
	if errors.Is(err, servererrors.ErrCategoryNotFound) {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrCategoryNotFound.Error(),
			nil,
		)
	}

	return err
}
