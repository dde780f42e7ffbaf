package order

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
		coll: db.Collection("orders"),
	}
}

func (s *store) createOne(ctx context.Context, order *Order) (primitive.ObjectID, error) {
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "failed to insert order")
	}

	return res.InsertedID.(primitive.ObjectID), nil
}

type listFilter struct {
	email string
	paid  *bool
}

func (s *store) findAll(ctx context.Context, filter listFilter) ([]*Order, error) {
	query := bson.M{}
	if filter.email != "" {
		query["email"] = filter.email
	}
	if filter.paid != nil {
		query["paid"] = *filter.paid
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders")
	}
	defer cursor.Close(ctx)

	var orders []*Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, errors.Wrap(err, "failed to decode orders")
	}

	return orders, nil
}

func (s *store) findByID(ctx context.Context, orderID primitive.ObjectID) (*Order, error) {
	var order Order

	err := s.coll.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, servererrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	return &order, nil
}

func (s *store) updateStatus(ctx context.Context, orderID primitive.ObjectID, status OrderStatus) (*Order, error) {
	update := bson.M{
		"$set": bson.M{
			"orderStatus": status,
			"updatedAt":   time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order Order
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": orderID}, update, opts).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, servererrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}

	return &order, nil
}

// markPaid is a single-document atomic $set, so redelivered webhooks land on
// an already-true flag and change nothing.
func (s *store) markPaid(ctx context.Context, orderID primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			"paid":      true,
			"updatedAt": time.Now(),
		},
	}

	res, err := s.coll.UpdateByID(ctx, orderID, update)
	if err != nil {
		return errors.Wrap(err, "failed to mark order paid")
	}

	if res.MatchedCount == 0 {
		return servererrors.ErrOrderNotFound
	}

	return nil
}
