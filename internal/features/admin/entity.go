package admin

import "go.mongodb.org/mongo-driver/bson/primitive"

// Admin is a membership record: an email listed here logs in with the
// "admin" entity type.
type Admin struct {
	AdminID primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email   string             `json:"email" bson:"email"`
}
