package response

import (
	"time"

	"github.com/mfreitas/storegate/internal/model"
	"github.com/mfreitas/storegate/internal/services/auth"
	"github.com/mfreitas/storegate/internal/services/seed"
)

// User represents a user in API responses
type User struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	IsActive bool     `json:"is_active"`
	Roles    []string `json:"roles"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:       string(u.ID),
		Email:    u.Email,
		FullName: u.FullName,
		IsActive: u.IsActive,
		Roles:    u.Roles,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// AuthResponseFromIdentity creates an AuthResponse from an identity
func AuthResponseFromIdentity(i *auth.Identity) AuthResponse {
	return AuthResponse{
		User:  UserFromModel(i.User),
		Token: i.Token,
	}
}

// Product represents a product in API responses
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	Stock       int       `json:"stock"`
	Sizes       []string  `json:"sizes"`
	Gender      string    `json:"gender"`
	Tags        []string  `json:"tags,omitempty"`
	Images      []string  `json:"images,omitempty"`
	OwnerID     string    `json:"owner_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductFromModel converts a model.Product to a response Product
func ProductFromModel(p *model.Product) Product {
	return Product{
		ID:          string(p.ID),
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Slug:        p.Slug,
		Stock:       p.Stock,
		Sizes:       p.Sizes,
		Gender:      p.Gender,
		Tags:        p.Tags,
		Images:      p.Images,
		OwnerID:     string(p.OwnerID),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProductsFromModels converts a slice of products
func ProductsFromModels(products []*model.Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = ProductFromModel(p)
	}
	return out
}

// UploadResponse is the response for a successful file upload
type UploadResponse struct {
	FileName string `json:"file_name"`
	URL      string `json:"url"`
}

// SeedResponse is the response for a seeding run
type SeedResponse struct {
	Users    int `json:"users"`
	Products int `json:"products"`
}

// SeedResponseFromResult converts a seed.Result
func SeedResponseFromResult(r *seed.Result) SeedResponse {
	return SeedResponse{
		Users:    r.Users,
		Products: r.Products,
	}
}
