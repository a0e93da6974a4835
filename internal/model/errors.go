package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Product errors
	ErrProductNotFound = errors.New("product not found")
	ErrSlugExists      = errors.New("a product with this slug already exists")
	ErrInvalidGender   = errors.New("invalid product gender")
)
