package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mfreitas/storegate/internal/model"
	"github.com/mfreitas/storegate/internal/services/auth"
	"github.com/mfreitas/storegate/internal/services/files"
	"github.com/mfreitas/storegate/internal/services/product"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeProductNotFound     = "PRODUCT_NOT_FOUND"
	CodeFileNotFound        = "FILE_NOT_FOUND"
	CodeSlugExists          = "SLUG_EXISTS"
	CodeEmailExists         = "EMAIL_EXISTS"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeUserInactive        = "USER_INACTIVE"
	CodeUnsupportedFileType = "UNSUPPORTED_FILE_TYPE"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrProductNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeProductNotFound, "Product not found"}}
	case errors.Is(err, model.ErrSlugExists):
		return &httpError{http.StatusConflict, APIError{CodeSlugExists, "A product with this slug already exists"}}
	case errors.Is(err, model.ErrInvalidGender):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Invalid gender"}}

	// Map product validation errors
	case errors.Is(err, product.ErrTitleRequired):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Title is required"}}
	case errors.Is(err, product.ErrNegativePrice):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Price must not be negative"}}
	case errors.Is(err, product.ErrNegativeStock):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Stock must not be negative"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid credentials"}}
	case errors.Is(err, auth.ErrEmailExists):
		return &httpError{http.StatusConflict, APIError{CodeEmailExists, "Email already registered"}}
	case errors.Is(err, auth.ErrUserInactive):
		return &httpError{http.StatusForbidden, APIError{CodeUserInactive, "User is inactive"}}

	// Map file errors
	case errors.Is(err, files.ErrUnsupportedFileType):
		return &httpError{http.StatusBadRequest, APIError{CodeUnsupportedFileType, "Unsupported file type"}}
	case errors.Is(err, files.ErrFileNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeFileNotFound, "File not found"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Insufficient permissions"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
