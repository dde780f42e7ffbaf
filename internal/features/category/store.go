package category

import (
	"context"

	"github.com/pkg/errors"
	"github.com/yosilia/dm-touch-backend/internal/servererrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type store struct {
	coll *mongo.Collection
}

func NewStore(db *mongo.Database) *store {
	return &store{
		coll: db.Collection("categories"),
	}
}

func (s *store) createOne(ctx context.Context, category *Category) (primitive.ObjectID, error) {
	res, err := s.coll.InsertOne(ctx, category)
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "failed to insert category")
	}

	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *store) findAll(ctx context.Context) ([]*Category, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find categories")
	}
	defer cursor.Close(ctx)

	var categories []*Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, errors.Wrap(err, "failed to decode categories")
	}

	return categories, nil
}

func (s *store) findByID(ctx context.Context, categoryID primitive.ObjectID) (*Category, error) {
	var category Category

	err := s.coll.FindOne(ctx, bson.M{"_id": categoryID}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, servererrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find category")
	}

	return &category, nil
}

func (s *store) updateOne(ctx context.Context, category *Category) error {
	update := bson.M{
		"$set": bson.M{
			"name":     category.Name,
			"slug":     category.Slug,
			"features": category.Features,
			"image":    category.Image,
		},
	}

	if category.Parent != nil {
		update["$set"].(bson.M)["parent"] = category.Parent
	} else {
		update["$unset"] = bson.M{"parent": ""}
	}

	res, err := s.coll.UpdateByID(ctx, category.CategoryID, update)
	if err != nil {
		return errors.Wrap(err, "failed to update category")
	}

	if res.MatchedCount == 0 {
		return servererrors.ErrCategoryNotFound
	}

	return nil
}

func (s *store) deleteOne(ctx context.Context, categoryID primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": categoryID})
	if err != nil {
		return errors.Wrap(err, "failed to delete category")
	}

	if res.DeletedCount == 0 {
		return servererrors.ErrCategoryNotFound
	}

	return nil
}
