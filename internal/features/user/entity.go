package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	UserID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Email         string             `json:"email" bson:"email"`
	Password      string             `json:"-" bson:"password"`
	Phone         string             `json:"phone" bson:"phone"`
	City          string             `json:"city" bson:"city"`
	Country       string             `json:"country" bson:"country"`
	StreetAddress string             `json:"streetAddress" bson:"streetAddress"`
	Postcode      string             `json:"postcode" bson:"postcode"`
	Measurements  map[string]string  `json:"measurements" bson:"measurements"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
