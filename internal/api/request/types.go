package request

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateProductRequest is the request body for creating a product
type CreateProductRequest struct {
	Title       string   `json:"title"`
	Price       float64  `json:"price,omitempty"`
	Description string   `json:"description,omitempty"`
	Slug        string   `json:"slug,omitempty"`
	Stock       int      `json:"stock,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Gender      string   `json:"gender"`
	Tags        []string `json:"tags,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// UpdateProductRequest is the request body for a partial product update.
// Absent fields are left unchanged.
type UpdateProductRequest struct {
	Title       *string  `json:"title,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	Slug        *string  `json:"slug,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Gender      *string  `json:"gender,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Images      []string `json:"images,omitempty"`
}
