package product

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/mfreitas/storegate/internal/dependencies/clock"
	"github.com/mfreitas/storegate/internal/model"
	"github.com/mfreitas/storegate/internal/storage"
)

// Errors
var (
	ErrTitleRequired = errors.New("title is required")
	ErrNegativePrice = errors.New("price must not be negative")
	ErrNegativeStock = errors.New("stock must not be negative")
)

// CreateInput holds the fields for creating a product
type CreateInput struct {
	Title       string
	Price       float64
	Description string
	Slug        string
	Stock       int
	Sizes       []string
	Gender      string
	Tags        []string
	Images      []string
}

// UpdateInput holds the fields for updating a product.
// Nil fields are left unchanged.
type UpdateInput struct {
	Title       *string
	Price       *float64
	Description *string
	Slug        *string
	Stock       *int
	Sizes       []string
	Gender      *string
	Tags        []string
	Images      []string
}

// Service handles product catalogue operations
type Service struct {
	storage storage.Storage
	clock   clock.Clock
}

// New creates a new ProductService
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// Create creates a product owned by the given user
func (s *Service) Create(ctx context.Context, ownerID model.UserID, input CreateInput) (*model.Product, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.Price < 0 {
		return nil, ErrNegativePrice
	}
	if input.Stock < 0 {
		return nil, ErrNegativeStock
	}
	if !model.ValidGender(input.Gender) {
		return nil, model.ErrInvalidGender
	}

	slug := input.Slug
	if slug == "" {
		slug = input.Title
	}
	slug = Slugify(slug)

	if _, err := s.storage.GetProductBySlug(ctx, slug); err == nil {
		return nil, model.ErrSlugExists
	} else if !errors.Is(err, model.ErrProductNotFound) {
		return nil, err
	}

	now := s.clock.Now()
	product := &model.Product{
		ID:          model.ProductID(uuid.NewString()),
		Title:       input.Title,
		Price:       input.Price,
		Description: input.Description,
		Slug:        slug,
		Stock:       input.Stock,
		Sizes:       input.Sizes,
		Gender:      input.Gender,
		Tags:        input.Tags,
		Images:      input.Images,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.storage.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get looks a product up by ID or slug
func (s *Service) Get(ctx context.Context, term string) (*model.Product, error) {
	if uuid.Validate(term) == nil {
		return s.storage.GetProduct(ctx, model.ProductID(term))
	}
	return s.storage.GetProductBySlug(ctx, term)
}

// List returns a page of products in creation order
func (s *Service) List(ctx context.Context, p model.Pagination) ([]*model.Product, error) {
	return s.storage.ListProducts(ctx, p)
}

// Update applies a partial update to a product
func (s *Service) Update(ctx context.Context, id model.ProductID, input UpdateInput) (*model.Product, error) {
	product, err := s.storage.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	// Copy so a failed save does not leave the stored value half-updated.
	updated := *product

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleRequired
		}
		updated.Title = *input.Title
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, ErrNegativePrice
		}
		updated.Price = *input.Price
	}
	if input.Description != nil {
		updated.Description = *input.Description
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, ErrNegativeStock
		}
		updated.Stock = *input.Stock
	}
	if input.Gender != nil {
		if !model.ValidGender(*input.Gender) {
			return nil, model.ErrInvalidGender
		}
		updated.Gender = *input.Gender
	}
	if input.Sizes != nil {
		updated.Sizes = input.Sizes
	}
	if input.Tags != nil {
		updated.Tags = input.Tags
	}
	if input.Images != nil {
		updated.Images = input.Images
	}

	if input.Slug != nil {
		slug := Slugify(*input.Slug)
		if slug != product.Slug {
			if existing, err := s.storage.GetProductBySlug(ctx, slug); err == nil && existing.ID != id {
				return nil, model.ErrSlugExists
			} else if err != nil && !errors.Is(err, model.ErrProductNotFound) {
				return nil, err
			}
		}
		updated.Slug = slug
	}

	updated.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveProduct(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a product
func (s *Service) Delete(ctx context.Context, id model.ProductID) error {
	if _, err := s.storage.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.storage.DeleteProduct(ctx, id)
}

// Slugify normalizes a title or slug into URL form: lowercased,
// spaces replaced with underscores, apostrophes dropped.
func Slugify(s string) string {
	out := strings.ToLower(strings.TrimSpace(s))
	out = strings.ReplaceAll(out, " ", "_")
	out = strings.ReplaceAll(out, "'", "")
	return out
}
