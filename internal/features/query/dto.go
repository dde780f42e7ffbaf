package query

// Requests

type CreateGeneralQueryRequest struct {
	ClientName  string `json:"clientName" validate:"required"`
	ClientEmail string `json:"clientEmail" validate:"required,email"`
	Message     string `json:"message" validate:"required"`
}

type UpdateGeneralQueryRequest struct {
	QueryID  string `json:"_id" validate:"required"`
	Response string `json:"response"`
	Status   string `json:"status"`
}
