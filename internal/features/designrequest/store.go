package designrequest

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/yosilia/dm-touch-backend/internal/servererrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type store struct {
	coll *mongo.Collection
}

func NewStore(db *mongo.Database) *store {
	return &store{
		coll: db.Collection("designrequests"),
	}
}

func (s *store) countByDate(ctx context.Context, appointmentDate string) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"appointmentDate": appointmentDate})
	if err != nil {
		return 0, errors.Wrap(err, "failed to count design requests for date")
	}

	return count, nil
}

func (s *store) createOne(ctx context.Context, request *DesignRequest) (primitive.ObjectID, error) {
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, request)
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "failed to insert design request")
	}

	return res.InsertedID.(primitive.ObjectID), nil
}

type listFilter struct {
	date  string
	email string
}

func (s *store) findAll(ctx context.Context, filter listFilter) ([]*DesignRequest, error) {
	query := bson.M{}
	if filter.date != "" {
		query["appointmentDate"] = filter.date
	}
	if filter.email != "" {
		query["clientEmail"] = filter.email
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find design requests")
	}
	defer cursor.Close(ctx)

	var requests []*DesignRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, errors.Wrap(err, "failed to decode design requests")
	}

	return requests, nil
}

func (s *store) findByID(ctx context.Context, requestID primitive.ObjectID) (*DesignRequest, error) {
	var request DesignRequest

	err := s.coll.FindOne(ctx, bson.M{"_id": requestID}).Decode(&request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, servererrors.ErrRequestNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find design request")
	}

	return &request, nil
}

// findInProgressBefore returns In Progress requests whose appointment date
// sorts strictly before the given YYYY-MM-DD day.
func (s *store) findInProgressBefore(ctx context.Context, date string) ([]*DesignRequest, error) {
	query := bson.M{
		"status":          StatusInProgress,
		"appointmentDate": bson.M{"$lt": date},
	}

	cursor, err := s.coll.Find(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find past in-progress requests")
	}
	defer cursor.Close(ctx)

	var requests []*DesignRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, errors.Wrap(err, "failed to decode past in-progress requests")
	}

	return requests, nil
}

func (s *store) updateOne(ctx context.Context, requestID primitive.ObjectID, set bson.M) (*DesignRequest, error) {
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var request DesignRequest
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": requestID}, bson.M{"$set": set}, opts).Decode(&request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, servererrors.ErrRequestNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to update design request")
	}

	return &request, nil
}
