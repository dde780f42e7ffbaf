package servererrors

import "errors"

// Sentinel errors shared across features. Handlers translate these into
// status-coded [ServerError] values; stores and services return them as-is.
var (
	ErrInvalidRequestPayload = errors.New("invalid request payload")
	ErrValidationFailed      = errors.New("validation failed")
	ErrURLQueryParams        = errors.New("invalid url query params")

	ErrUnauthorized        = errors.New("unauthorized")
	ErrUnauthorizedAccess  = errors.New("unauthorized access")
	ErrNoAccessTokenCookie = errors.New("no access token provided")

	ErrProductNotFound      = errors.New("product not found")
	ErrProductAlreadyExists = errors.New("product already exists")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryCycle        = errors.New("category parent chain contains a cycle")
	ErrOrderNotFound        = errors.New("order not found")
	ErrRequestNotFound      = errors.New("design request not found")
	ErrQueryNotFound        = errors.New("general query not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")

	ErrDateFullyBooked      = errors.New("This date is fully booked. Please choose another day.")
	ErrInvalidStatusChange  = errors.New("invalid status transition")
	ErrInvalidOrderStatus   = errors.New("invalid order status")
	ErrPaymentSessionFailed = errors.New("failed to create payment session")
)

// ServerError is an error carrying the HTTP status code a handler wants the
// error middleware to respond with, plus optional field-level details.
type ServerError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Errors     any    `json:"errors,omitempty"`
}

func New(statusCode int, message string, errs any) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		Message:    message,
		Errors:     errs,
	}
}

func (e *ServerError) Error() string {
	return e.Message
}
