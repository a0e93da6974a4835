package model

import "time"

// ProductID uniquely identifies a product
type ProductID string

// Valid values for Product.Gender
var ProductGenders = []string{"men", "women", "kid", "unisex"}

// Product represents one catalog item
type Product struct {
	ID          ProductID
	Title       string
	Price       float64
	Description string
	Slug        string // unique, derived from the title when not provided
	Stock       int
	Sizes       []string
	Gender      string
	Tags        []string
	Images      []string
	OwnerID     UserID // user that created the product
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidGender reports whether g is an accepted gender value
func ValidGender(g string) bool {
	for _, v := range ProductGenders {
		if v == g {
			return true
		}
	}
	return false
}

// Pagination bounds a list query
type Pagination struct {
	Limit  int
	Offset int
}

// DefaultPageSize is applied when a list query does not set a limit
const DefaultPageSize = 10

// Normalize applies defaults to a pagination request
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
