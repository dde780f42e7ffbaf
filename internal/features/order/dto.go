package order

// Requests

type CheckoutRequest struct {
	Name          string   `json:"name" validate:"required"`
	Email         string   `json:"email" validate:"required,email"`
	City          string   `json:"city" validate:"required"`
	Postcode      string   `json:"postcode" validate:"required"`
	Phone         string   `json:"phone" validate:"required"`
	StreetAddress string   `json:"streetAddress" validate:"required"`
	Country       string   `json:"country" validate:"required"`
	CartProducts  Cart     `json:"cartProducts"`
}

type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"orderStatus" validate:"required"`
}

// Responses

type CheckoutResponse struct {
	URL string `json:"url"`
}

// OrderUpdatedPayload is the realtime event body pushed on the orders
// channel whenever an admin changes a status.
type OrderUpdatedPayload struct {
	OrderID     string `json:"orderId"`
	OrderStatus string `json:"orderStatus"`
}
