package category

import (
	"context"
	"strings"

	"github.com/gosimple/slug"
	"github.com/yosilia/dm-touch-backend/internal/servererrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type storer interface {
	createOne(ctx context.Context, category *Category) (primitive.ObjectID, error)
	findAll(ctx context.Context) ([]*Category, error)
	findByID(ctx context.Context, categoryID primitive.ObjectID) (*Category, error)
	updateOne(ctx context.Context, category *Category) error
	deleteOne(ctx context.Context, categoryID primitive.ObjectID) error
}

type service struct {
	store storer
}

func NewService(store storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) createCategory(ctx context.Context, req *CreateCategoryRequest) (*Category, error) {
	parent, err := parseParent(req.ParentCategory)
	if err != nil {
		return nil, err
	}

	category := &Category{
		Name:     strings.TrimSpace(req.Name),
		Slug:     slug.Make(req.Name),
		Parent:   parent,
		Features: req.Features,
		Image:    req.Image,
	}

	categoryID, err := s.store.createOne(ctx, category)
	if err != nil {
		return nil, err
	}
	category.CategoryID = categoryID

	return category, nil
}

func (s *service) updateCategory(ctx context.Context, req *UpdateCategoryRequest) (*Category, error) {
	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		return nil, servererrors.ErrCategoryNotFound
	}

	parent, err := parseParent(req.ParentCategory)
	if err != nil {
		return nil, err
	}

	category := &Category{
		CategoryID: categoryID,
		Name:       strings.TrimSpace(req.Name),
		Slug:       slug.Make(req.Name),
		Parent:     parent,
		Features:   req.Features,
		Image:      req.Image,
	}

	if err := s.store.updateOne(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *service) deleteCategory(ctx context.Context, categoryID primitive.ObjectID) error {
	return s.store.deleteOne(ctx, categoryID)
}

func (s *service) getAllCategories(ctx context.Context) ([]*Category, error) {
	return s.store.findAll(ctx)
}

// InheritedFeatures walks the parent chain from the given category, appending
// each level's features: the category's own first, then its parent's, and so
// on until a root is reached. A revisited category means the parent links
// form a cycle, which is a data-configuration fault we fail fast on instead
// of walking forever.
func (s *service) InheritedFeatures(ctx context.Context, categoryID primitive.ObjectID) ([]Feature, error) {
	features := []Feature{}
	visited := map[primitive.ObjectID]struct{}{}

	currentID := &categoryID
	for currentID != nil {
		if _, seen := visited[*currentID]; seen {
			return nil, servererrors.ErrCategoryCycle
		}
		visited[*currentID] = struct{}{}

		category, err := s.store.findByID(ctx, *currentID)
		if err != nil {
			return nil, err
		}

		features = append(features, category.Features...)
		currentID = category.Parent
	}

	return features, nil
}

func parseParent(parentHex string) (*primitive.ObjectID, error) {
	if parentHex == "" {
		return nil, nil
	}

	parentID, err := primitive.ObjectIDFromHex(parentHex)
	if err != nil {
		return nil, servererrors.ErrCategoryNotFound
	}

	return &parentID, nil
}
