package query

import (
	"context"

	"github.com/yosilia/dm-touch-backend/internal/servererrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type storer interface {
	createOne(ctx context.Context, generalQuery *GeneralQuery) (primitive.ObjectID, error)
	findAll(ctx context.Context) ([]*GeneralQuery, error)
	updateOne(ctx context.Context, queryID primitive.ObjectID, set bson.M) (*GeneralQuery, error)
}

type service struct {
	store storer
}

func NewService(store storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) createGeneralQuery(ctx context.Context, req *CreateGeneralQueryRequest) (*GeneralQuery, error) {
	generalQuery := &GeneralQuery{
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Message:     req.Message,
		Status:      StatusUnread,
	}

	queryID, err := s.store.createOne(ctx, generalQuery)
	if err != nil {
		return nil, err
	}
	generalQuery.QueryID = queryID

	return generalQuery, nil
}

func (s *service) getAllGeneralQueries(ctx context.Context) ([]*GeneralQuery, error) {
	return s.store.findAll(ctx)
}

func (s *service) updateGeneralQuery(ctx context.Context, req *UpdateGeneralQueryRequest) (*GeneralQuery, error) {
	queryID, err := primitive.ObjectIDFromHex(req.QueryID)
	if err != nil {
		return nil, servererrors.ErrQueryNotFound
	}

	set := bson.M{}

	if req.Response != "" {
		set["response"] = req.Response
	}

	if req.Status != "" {
		status := Status(req.Status)
		if !status.Valid() {
			return nil, servererrors.ErrValidationFailed
		}
		set["status"] = status
	}

	return s.store.updateOne(ctx, queryID, set)
}
