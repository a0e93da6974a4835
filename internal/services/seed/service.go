package seed

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/mfreitas/storegate/internal/dependencies/clock"
	"github.com/mfreitas/storegate/internal/model"
	"github.com/mfreitas/storegate/internal/services/auth"
	"github.com/mfreitas/storegate/internal/services/product"
	"github.com/mfreitas/storegate/internal/storage"
)

// Result summarizes what a seeding run created
type Result struct {
	Users    int
	Products int
}

// Service resets storage to a known development dataset
type Service struct {
	storage  storage.Storage
	products *product.Service
	clock    clock.Clock
}

// New creates a new SeedService
func New(storage storage.Storage, products *product.Service, clock clock.Clock) *Service {
	return &Service{
		storage:  storage,
		products: products,
		clock:    clock,
	}
}

// Run wipes all users and products and inserts the seed dataset.
// Seeded products are owned by the first seed user (the admin).
func (s *Service) Run(ctx context.Context) (*Result, error) {
	if err := s.storage.DeleteAllProducts(ctx); err != nil {
		return nil, err
	}
	if err := s.storage.DeleteAllUsers(ctx); err != nil {
		return nil, err
	}

	var ownerID model.UserID
	now := s.clock.Now()

	for i, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}

		user := &model.User{
			ID:           model.UserID(auth.GenerateID("u_")),
			Email:        su.Email,
			PasswordHash: string(hash),
			FullName:     su.FullName,
			IsActive:     true,
			Roles:        su.Roles,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.storage.SaveUser(ctx, user); err != nil {
			return nil, err
		}
		if i == 0 {
			ownerID = user.ID
		}
	}

	for _, sp := range seedProducts {
		_, err := s.products.Create(ctx, ownerID, product.CreateInput{
			Title:       sp.Title,
			Price:       sp.Price,
			Description: sp.Description,
			Stock:       sp.Stock,
			Sizes:       sp.Sizes,
			Gender:      sp.Gender,
			Tags:        sp.Tags,
		})
		if err != nil {
			return nil, err
		}
	}

	return &Result{Users: len(seedUsers), Products: len(seedProducts)}, nil
}
