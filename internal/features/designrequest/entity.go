package designrequest

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusConfirmed  Status = "Confirmed"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusDeclined   Status = "Declined"
	StatusCancelled  Status = "Cancelled"
)

// transitions is the full lifecycle; Completed, Declined and Cancelled are
// terminal.
var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusInProgress, StatusDeclined},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DesignRequest is a bespoke-garment consultation booking. AppointmentDate
// is kept as a plain YYYY-MM-DD string so capacity counts and past-date
// sweeps are simple equality and ordering comparisons.
type DesignRequest struct {
	RequestID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ClientName      string             `json:"clientName" bson:"clientName"`
	ClientEmail     string             `json:"clientEmail" bson:"clientEmail"`
	Phone           string             `json:"phone" bson:"phone"`
	AppointmentDate string             `json:"appointmentDate" bson:"appointmentDate"`
	AppointmentTime string             `json:"appointmentTime" bson:"appointmentTime"`
	Measurements    map[string]string  `json:"measurements" bson:"measurements"`
	Notes           string             `json:"notes" bson:"notes"`
	Images          []string           `json:"images" bson:"images"`
	Status          Status             `json:"status" bson:"status"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}
