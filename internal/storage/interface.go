package storage

import (
	"context"

	"github.com/mfreitas/storegate/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	DeleteAllUsers(ctx context.Context) error

	// Product operations
	SaveProduct(ctx context.Context, product *model.Product) error
	GetProduct(ctx context.Context, id model.ProductID) (*model.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, error)
	ListProducts(ctx context.Context, p model.Pagination) ([]*model.Product, error)
	DeleteProduct(ctx context.Context, id model.ProductID) error
	DeleteAllProducts(ctx context.Context) error
}
