package query

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
		coll: db.Collection("generalqueries"),
	}
}

func (s *store) createOne(ctx context.Context, generalQuery *GeneralQuery) (primitive.ObjectID, error) {
	now := time.Now()
	generalQuery.CreatedAt = now
	generalQuery.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, generalQuery)
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "failed to insert general query")
	}

	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *store) findAll(ctx context.Context) ([]*GeneralQuery, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find general queries")
	}
	defer cursor.Close(ctx)

	var queries []*GeneralQuery
	if err := cursor.All(ctx, &queries); err != nil {
		return nil, errors.Wrap(err, "failed to decode general queries")
	}

	return queries, nil
}

func (s *store) updateOne(ctx context.Context, queryID primitive.ObjectID, set bson.M) (*GeneralQuery, error) {
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var generalQuery GeneralQuery
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": queryID}, bson.M{"$set": set}, opts).Decode(&generalQuery)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, servererrors.ErrQueryNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to update general query")
	}

	return &generalQuery, nil
}
