package product

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ProductID   primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Title       string              `json:"title" bson:"title"`
	Slug        string              `json:"slug" bson:"slug"`
	Description string              `json:"description" bson:"description"`
	Price       float64             `json:"price" bson:"price"` // major currency units (pounds)
	Photos      []string            `json:"photos" bson:"photos"`
	Category    *primitive.ObjectID `json:"category,omitempty" bson:"category,omitempty"`
	Features    map[string]string   `json:"features" bson:"features"` // open schema, validated at the form layer
	Stock       int64               `json:"stock" bson:"stock"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updatedAt"`
}
