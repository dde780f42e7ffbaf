package product

import (
	"context"
	"strings"

	"github.com/gosimple/slug"
	"github.com/yosilia/dm-touch-backend/internal/servererrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type storer interface {
	createOne(ctx context.Context, product *Product) (primitive.ObjectID, error)
	findAll(ctx context.Context) ([]*Product, error)
	findByID(ctx context.Context, productID primitive.ObjectID) (*Product, error)
	findBySlug(ctx context.Context, productSlug string) (*Product, error)
	findByIDs(ctx context.Context, productIDs []primitive.ObjectID) ([]*Product, error)
	updateOne(ctx context.Context, product *Product) error
	deleteOne(ctx context.Context, productID primitive.ObjectID) error
}

type service struct {
	store storer
}

func NewService(store storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) createProduct(ctx context.Context, req *CreateProductRequest) (*Product, error) {
	categoryID, err := primitive.ObjectIDFromHex(req.Category)
	if err != nil {
		return nil, servererrors.ErrCategoryNotFound
	}

	product := &Product{
		Title:       strings.TrimSpace(req.Title),
		Slug:        slug.Make(req.Title),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Photos:      req.Photos,
		Category:    &categoryID,
		Features:    req.Features,
		Stock:       req.Stock,
	}

	productID, err := s.store.createOne(ctx, product)
	if err != nil {
		return nil, err
	}
	product.ProductID = productID

	return product, nil
}

func (s *service) updateProduct(ctx context.Context, req *UpdateProductRequest) (*Product, error) {
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, servererrors.ErrProductNotFound
	}

	categoryID, err := primitive.ObjectIDFromHex(req.Category)
	if err != nil {
		return nil, servererrors.ErrCategoryNotFound
	}

	product := &Product{
		ProductID:   productID,
		Title:       strings.TrimSpace(req.Title),
		Slug:        slug.Make(req.Title),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Photos:      req.Photos,
		Category:    &categoryID,
		Features:    req.Features,
		Stock:       req.Stock,
	}

	if err := s.store.updateOne(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *service) deleteProduct(ctx context.Context, productID primitive.ObjectID) error {
	return s.store.deleteOne(ctx, productID)
}

func (s *service) getAllProducts(ctx context.Context) ([]*Product, error) {
	return s.store.findAll(ctx)
}

func (s *service) getProduct(ctx context.Context, productID primitive.ObjectID) (*Product, error) {
	return s.store.findByID(ctx, productID)
}

func (s *service) getProductBySlug(ctx context.Context, productSlug string) (*Product, error) {
	return s.store.findBySlug(ctx, productSlug)
}

// ListByIDs is the catalog lookup the checkout path uses to price a cart.
func (s *service) ListByIDs(ctx context.Context, productIDs []primitive.ObjectID) ([]*Product, error) {
	return s.store.findByIDs(ctx, productIDs)
}
