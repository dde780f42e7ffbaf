package admin

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type store struct {
	coll *mongo.Collection
}

func NewStore(db *mongo.Database) *store {
	return &store{
		coll: db.Collection("admins"),
	}
}

// IsAdmin reports whether the email has an admin membership record.
func (s *store) IsAdmin(ctx context.Context, email string) (bool, error) {
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to look up admin membership")
	}

	return true, nil
}
