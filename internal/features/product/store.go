package product

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
		coll: db.Collection("products"),
	}
}

func (s *store) createOne(ctx context.Context, product *Product) (primitive.ObjectID, error) {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, servererrors.ErrProductAlreadyExists
		}
		return primitive.NilObjectID, errors.Wrap(err, "failed to insert product")
	}

	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *store) findAll(ctx context.Context) ([]*Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find products")
	}
	defer cursor.Close(ctx)

	var products []*Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "failed to decode products")
	}

	return products, nil
}

func (s *store) findByID(ctx context.Context, productID primitive.ObjectID) (*Product, error) {
	var product Product

	err := s.coll.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, servererrors.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	return &product, nil
}

func (s *store) findBySlug(ctx context.Context, productSlug string) (*Product, error) {
	var product Product

	err := s.coll.FindOne(ctx, bson.M{"slug": productSlug}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, servererrors.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product by slug")
	}

	return &product, nil
}

// findByIDs resolves a set of product ids in one round trip. Ids with no
// matching document are simply absent from the result; the checkout path
// treats those as no-longer-available items.
func (s *store) findByIDs(ctx context.Context, productIDs []primitive.ObjectID) ([]*Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": productIDs}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find products by ids")
	}
	defer cursor.Close(ctx)

	var products []*Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "failed to decode products by ids")
	}

	return products, nil
}

func (s *store) updateOne(ctx context.Context, product *Product) error {
	update := bson.M{
		"$set": bson.M{
			"title":       product.Title,
			"slug":        product.Slug,
			"description": product.Description,
			"price":       product.Price,
			"photos":      product.Photos,
			"category":    product.Category,
			"features":    product.Features,
			"stock":       product.Stock,
			"updatedAt":   time.Now(),
		},
	}

	res, err := s.coll.UpdateByID(ctx, product.ProductID, update)
	if err != nil {
		return errors.Wrap(err, "failed to update product")
	}

	if res.MatchedCount == 0 {
		return servererrors.ErrProductNotFound
	}

	return nil
}

func (s *store) deleteOne(ctx context.Context, productID primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": productID})
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	if res.DeletedCount == 0 {
		return servererrors.ErrProductNotFound
	}

	return nil
}
