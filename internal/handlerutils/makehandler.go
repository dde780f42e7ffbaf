package handlerutils

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/yosilia/dm-touch-backend/internal/servererrors"
)

// MakeHandler adapts an [APIHandler] into a [http.HandlerFunc], mapping any
// returned [servererrors.ServerError] onto its status code and everything
// else onto a generic 500 so internals never leak to clients.
func MakeHandler(h APIHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		logrus.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("request failed")

		var serverError *servererrors.ServerError
		if errors.As(err, &serverError) {
			WriteErrorJSON(
				w,
				serverError.StatusCode,
				serverError.Message,
				serverError.Errors,
			)
			return
		}

		WriteErrorJSON(
			w,
			http.StatusInternalServerError,
			"something went wrong",
			nil,
		)
	}
}
