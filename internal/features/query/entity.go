package query

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusUnread     Status = "Unread"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUnread, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// GeneralQuery is a contact-form message and its admin-side handling state.
type GeneralQuery struct {
	QueryID     primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ClientName  string             `json:"clientName" bson:"clientName"`
	ClientEmail string             `json:"clientEmail" bson:"clientEmail"`
	Message     string             `json:"message" bson:"message"`
	Response    string             `json:"response" bson:"response"`
	Status      Status             `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
