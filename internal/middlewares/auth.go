package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/yosilia/dm-touch-backend/internal/handlerutils"
	"github.com/yosilia/dm-touch-backend/internal/servererrors"
)

type contextKey struct{}

var EntityKey contextKey = contextKey{}

// AuthWithContext guards a handler behind a valid access token of the given
// entity type ("user" or "admin") and stashes the entity id in the request
// context.
func (mw *middleware) AuthWithContext(h handlerutils.APIHandler, authEntityType string) handlerutils.APIHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		tokenStr := accessTokenFromRequest(r)
		if tokenStr == "" {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrNoAccessTokenCookie.Error(),
				nil,
			)
		}

		isValid, claims, err := mw.jwtManager.ValidateAccessToken(tokenStr)
		if err != nil {
			return err
		}

		if !isValid {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrUnauthorized.Error(),
				nil,
			)
		}

		// admins clear user-level guards too
		if claims.EntityType != authEntityType && claims.EntityType != "admin" {
			return servererrors.New(
				http.StatusForbidden,
				servererrors.ErrUnauthorizedAccess.Error(),
				nil,
			)
		}

		ctx := context.WithValue(
			r.Context(),
			EntityKey,
			claims.EntityID,
		)

		return h(w, r.WithContext(ctx))
	}
}

// accessTokenFromRequest prefers the accessToken cookie and falls back to a
// bearer Authorization header.
func accessTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if after, found := strings.CutPrefix(header, "Bearer "); found {
		return after
	}

	return ""
}

func GetEntityIDFromContextKey(ctx context.Context) string {
	entityID, ok := ctx.Value(EntityKey).(string)
	if !ok {
		return ""
	}

	return entityID
}
