package order

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// LineItem is the payment-provider snapshot shape, captured at checkout time
// and never recomputed. UnitAmount is the unit price in pence; Quantity is a
// separate multiplier consumed downstream.
type LineItem struct {
	Quantity  int64     `json:"quantity" bson:"quantity"`
	PriceData PriceData `json:"price_data" bson:"price_data"`
}

type PriceData struct {
	Currency    string      `json:"currency" bson:"currency"`
	ProductData ProductData `json:"product_data" bson:"product_data"`
	UnitAmount  int64       `json:"unit_amount" bson:"unit_amount"`
}

type ProductData struct {
	Name string `json:"name" bson:"name"`
}

// Order references products only through the snapshot in LineItems; editing
// or deleting a product later never changes what was sold.
type Order struct {
	OrderID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	LineItems     []LineItem         `json:"line_items" bson:"line_items"`
	Name          string             `json:"name" bson:"name"`
	Email         string             `json:"email" bson:"email"`
	City          string             `json:"city" bson:"city"`
	Postcode      string             `json:"postcode" bson:"postcode"`
	Phone         string             `json:"phone" bson:"phone"`
	StreetAddress string             `json:"streetAddress" bson:"streetAddress"`
	Country       string             `json:"country" bson:"country"`
	Paid          bool               `json:"paid" bson:"paid"`
	OrderStatus   OrderStatus        `json:"orderStatus" bson:"orderStatus"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
