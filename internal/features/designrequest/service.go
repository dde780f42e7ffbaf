package designrequest

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yosilia/dm-touch-backend/internal/realtime"
	"github.com/yosilia/dm-touch-backend/internal/servererrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type storer interface {
	countByDate(ctx context.Context, appointmentDate string) (int64, error)
	createOne(ctx context.Context, request *DesignRequest) (primitive.ObjectID, error)
	findAll(ctx context.Context, filter listFilter) ([]*DesignRequest, error)
	findByID(ctx context.Context, requestID primitive.ObjectID) (*DesignRequest, error)
	findInProgressBefore(ctx context.Context, date string) ([]*DesignRequest, error)
	updateOne(ctx context.Context, requestID primitive.ObjectID, set bson.M) (*DesignRequest, error)
}

type service struct {
	store     storer
	publisher realtime.Publisher
	capacity  int64

	// now is swappable so the past-date sweep is testable
	now func() time.Time
}

func NewService(store storer, publisher realtime.Publisher, capacity int64) *service {
	return &service{
		store:     store,
		publisher: publisher,
		capacity:  capacity,
		now:       time.Now,
	}
}

func (s *service) createDesignRequest(ctx context.Context, req *CreateDesignRequestRequest) (*DesignRequest, error) {
	booked, err := s.store.countByDate(ctx, req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	if booked >= s.capacity {
		return nil, servererrors.ErrDateFullyBooked
	}

	request := &DesignRequest{
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		Phone:           req.Phone,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Measurements:    req.Measurements,
		Notes:           req.Notes,
		Images:          req.Images,
		Status:          StatusPending,
	}

	requestID, err := s.store.createOne(ctx, request)
	if err != nil {
		return nil, err
	}
	request.RequestID = requestID

	return request, nil
}

func (s *service) getAllDesignRequests(ctx context.Context, date, email string) ([]*DesignRequest, error) {
	s.sweepPastAppointments(ctx)

	return s.store.findAll(ctx, listFilter{
		date:  date,
		email: email,
	})
}

func (s *service) getDesignRequest(ctx context.Context, requestID primitive.ObjectID) (*DesignRequest, error) {
	return s.store.findByID(ctx, requestID)
}

func (s *service) updateDesignRequest(ctx context.Context, req *UpdateDesignRequestRequest) (*DesignRequest, error) {
	requestID, err := primitive.ObjectIDFromHex(req.RequestID)
	if err != nil {
		return nil, servererrors.ErrRequestNotFound
	}

	set := bson.M{}

	if req.Status != "" {
		current, err := s.store.findByID(ctx, requestID)
		if err != nil {
			return nil, err
		}

		next := Status(req.Status)
		if !current.Status.CanTransitionTo(next) {
			return nil, servererrors.ErrInvalidStatusChange
		}
		set["status"] = next
	}

	if req.Measurements != nil {
		set["measurements"] = req.Measurements
	}

	if len(set) == 0 {
		return s.store.findByID(ctx, requestID)
	}

	updated, err := s.store.updateOne(ctx, requestID, set)
	if err != nil {
		return nil, err
	}

	s.publishUpdate(ctx, updated)

	return updated, nil
}

// sweepPastAppointments closes out In Progress requests whose appointment
// day has passed. Best effort: a failed sweep never blocks a listing.
func (s *service) sweepPastAppointments(ctx context.Context) {
	today := s.now().Format("2006-01-02")

	stale, err := s.store.findInProgressBefore(ctx, today)
	if err != nil {
		logrus.WithError(err).Warn("design request sweep failed")
		return
	}

	for _, request := range stale {
		updated, err := s.store.updateOne(ctx, request.RequestID, bson.M{"status": StatusCompleted})
		if err != nil {
			logrus.WithError(err).WithField("requestID", request.RequestID.Hex()).
				Warn("failed to auto-complete design request")
			continue
		}

		s.publishUpdate(ctx, updated)
	}
}

func (s *service) publishUpdate(ctx context.Context, request *DesignRequest) {
	err := s.publisher.Publish(
		ctx,
		realtime.DesignRequestsChannel,
		realtime.DesignRequestUpdatedEvent,
		DesignRequestUpdatedPayload{
			RequestID: request.RequestID.Hex(),
			Status:    string(request.Status),
		},
	)
	if err != nil {
		logrus.WithError(err).WithField("requestID", request.RequestID.Hex()).
			Warn("failed to publish design request update")
	}
}
