package user

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

// NewStore also ensures the unique email index; duplicate registrations
// surface as ErrUserAlreadyExists from createOne.
func NewStore(ctx context.Context, db *mongo.Database) (*store, error) {
	coll := db.Collection("users")

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to ensure unique email index")
	}

	return &store{coll: coll}, nil
}

func (s *store) createOne(ctx context.Context, user *User) (primitive.ObjectID, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, servererrors.ErrUserAlreadyExists
	}
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "failed to insert user")
	}

	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *store) findByEmail(ctx context.Context, email string) (*User, error) {
	var user User

	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, servererrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return &user, nil
}

func (s *store) findByID(ctx context.Context, userID primitive.ObjectID) (*User, error) {
	var user User

	err := s.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, servererrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return &user, nil
}

func (s *store) updateOne(ctx context.Context, userID primitive.ObjectID, set bson.M) (*User, error) {
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user User
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": userID}, bson.M{"$set": set}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, servererrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	return &user, nil
}
