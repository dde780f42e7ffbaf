package user

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yosilia/dm-touch-backend/internal/servererrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type storer interface {
	createOne(ctx context.Context, user *User) (primitive.ObjectID, error)
	findByEmail(ctx context.Context, email string) (*User, error)
	findByID(ctx context.Context, userID primitive.ObjectID) (*User, error)
	updateOne(ctx context.Context, userID primitive.ObjectID, set bson.M) (*User, error)
}

type adminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

type tokenIssuer interface {
	NewAccessToken(entityID, entityType string) (string, error)
}

type service struct {
	store  storer
	admins adminChecker
	tokens tokenIssuer
}

func NewService(store storer, admins adminChecker, tokens tokenIssuer) *service {
	return &service{
		store:  store,
		admins: admins,
		tokens: tokens,
	}
}

func (s *service) register(ctx context.Context, req *RegisterUserRequest) (*User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Phone:    req.Phone,
	}

	userID, err := s.store.createOne(ctx, user)
	if err != nil {
		return nil, err
	}
	user.UserID = userID

	return user, nil
}

func (s *service) login(ctx context.Context, req *LoginUserRequest) (*LoginUserResponse, error) {
	user, err := s.store.findByEmail(ctx, req.Email)
	if errors.Is(err, servererrors.ErrUserNotFound) {
		return nil, servererrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, servererrors.ErrInvalidCredentials
	}

	entityType := "user"
	isAdmin, err := s.admins.IsAdmin(ctx, user.Email)
	if err != nil {
		// a failed membership lookup downgrades to a normal user login
		logrus.WithError(err).WithField("email", user.Email).
			Warn("failed to check admin membership")
	}
	if isAdmin {
		entityType = "admin"
	}

	accessToken, err := s.tokens.NewAccessToken(user.UserID.Hex(), entityType)
	if err != nil {
		return nil, err
	}

	return &LoginUserResponse{
		AccessToken: accessToken,
		EntityType:  entityType,
		User:        user,
	}, nil
}

func (s *service) getUser(ctx context.Context, userID primitive.ObjectID) (*User, error) {
	return s.store.findByID(ctx, userID)
}

func (s *service) updateUser(ctx context.Context, userID primitive.ObjectID, req *UpdateUserRequest) (*User, error) {
	set := bson.M{}

	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Phone != "" {
		set["phone"] = req.Phone
	}
	if req.City != "" {
		set["city"] = req.City
	}
	if req.Country != "" {
		set["country"] = req.Country
	}
	if req.StreetAddress != "" {
		set["streetAddress"] = req.StreetAddress
	}
	if req.Postcode != "" {
		set["postcode"] = req.Postcode
	}
	if req.Measurements != nil {
		set["measurements"] = req.Measurements
	}

	if len(set) == 0 {
		return s.store.findByID(ctx, userID)
	}

	return s.store.updateOne(ctx, userID, set)
}
