package designrequest

// Requests

type CreateDesignRequestRequest struct {
	ClientName      string            `json:"clientName" validate:"required"`
	ClientEmail     string            `json:"clientEmail" validate:"required,email"`
	Phone           string            `json:"phone" validate:"required"`
	AppointmentDate string            `json:"appointmentDate" validate:"required,datetime=2006-01-02"`
	AppointmentTime string            `json:"appointmentTime" validate:"required"`
	Measurements    map[string]string `json:"measurements"`
	Notes           string            `json:"notes"`
	Images          []string          `json:"images" validate:"omitempty,dive,url"`
}

type UpdateDesignRequestRequest struct {
	RequestID    string            `json:"_id" validate:"required"`
	Status       string            `json:"status"`
	Measurements map[string]string `json:"measurements"`
}

// DesignRequestUpdatedPayload is the realtime event body pushed on the
// design-requests channel on every update, including sweep completions.
type DesignRequestUpdatedPayload struct {
	RequestID string `json:"designRequestId"`
	Status    string `json:"status"`
}
