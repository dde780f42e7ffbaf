package user

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/yosilia/dm-touch-backend/internal/handlerutils"
	"github.com/yosilia/dm-touch-backend/internal/middlewares"
	"github.com/yosilia/dm-touch-backend/internal/servererrors"
	"github.com/yosilia/dm-touch-backend/internal/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type servicer interface {
	register(ctx context.Context, req *RegisterUserRequest) (*User, error)
	login(ctx context.Context, req *LoginUserRequest) (*LoginUserResponse, error)
	getUser(ctx context.Context, userID primitive.ObjectID) (*User, error)
	updateUser(ctx context.Context, userID primitive.ObjectID, req *UpdateUserRequest) (*User, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityType string) handlerutils.APIHandler
}

type handler struct {
	service              servicer
	middleware           middleware
	accessTokenExpirySec int64
}

func NewHandler(userService servicer, middleware middleware, accessTokenExpirySec int64) *handler {
	return &handler{
		service:              userService,
		middleware:           middleware,
		accessTokenExpirySec: accessTokenExpirySec,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/auth/register",
		handlerutils.MakeHandler(h.registerHandler),
	)

	router.Post(
		"/auth/login",
		handlerutils.MakeHandler(h.loginHandler),
	)

	// protected routes
	router.Get(
		"/users/me",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(h.meHandler, "user"),
		),
	)

	router.Put(
		"/users/me",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(h.updateMeHandler, "user"),
		),
	)
}

func (h *handler) registerHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var payload *RegisterUserRequest
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

	user, err := h.service.register(ctx, payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrUserAlreadyExists) {
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrUserAlreadyExists.Error(),
				nil,
			)
		}
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"user registered",
		user,
	)
}

func (h *handler) loginHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var payload *LoginUserRequest
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

	res, err := h.service.login(ctx, payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrInvalidCredentials) {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrInvalidCredentials.Error(),
				nil,
			)
		}
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    res.AccessToken,
		Path:     "/",
		MaxAge:   int(h.accessTokenExpirySec),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"logged in",
		res,
	)
}

func (h *handler) meHandler(w http.ResponseWriter, r *http.Request) error {
	userID, err := primitive.ObjectIDFromHex(middlewares.GetEntityIDFromContextKey(r.Context()))
	if err != nil {
		return servererrors.New(
			http.StatusUnauthorized,
			servererrors.ErrUnauthorized.Error(),
			nil,
		)
	}

	user, err := h.service.getUser(r.Context(), userID)
	if err != nil {
		return h.mapNotFound(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"user retrieved",
		user,
	)
}

func (h *handler) updateMeHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	userID, err := primitive.ObjectIDFromHex(middlewares.GetEntityIDFromContextKey(r.Context()))
	if err != nil {
		return servererrors.New(
			http.StatusUnauthorized,
			servererrors.ErrUnauthorized.Error(),
			nil,
		)
	}

	var payload *UpdateUserRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	user, err := h.service.updateUser(ctx, userID, payload)
	if err != nil {
		return h.mapNotFound(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"user updated",
		user,
	)
}

func (h *handler) mapNotFound(err error) error {
	if errors.Is(err, servererrors.ErrUserNotFound) {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrUserNotFound.Error(),
			nil,
		)
	}

	return err
}
