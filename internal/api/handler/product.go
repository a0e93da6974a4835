package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mfreitas/storegate/internal/api/middleware"
	"github.com/mfreitas/storegate/internal/api/request"
	"github.com/mfreitas/storegate/internal/api/response"
	"github.com/mfreitas/storegate/internal/model"
	"github.com/mfreitas/storegate/internal/services/product"
)

// ProductHandler handles product catalogue endpoints
type ProductHandler struct {
	productService *product.Service
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *product.Service) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// Create handles POST /api/v1/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	user := middleware.MustGetUser(r.Context())

	created, err := h.productService.Create(r.Context(), user.ID, product.CreateInput{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Slug:        req.Slug,
		Stock:       req.Stock,
		Sizes:       req.Sizes,
		Gender:      req.Gender,
		Tags:        req.Tags,
		Images:      req.Images,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ProductFromModel(created))
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	pagination, err := paginationFromQuery(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	products, err := h.productService.List(r.Context(), pagination)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProductsFromModels(products))
}

// Get handles GET /api/v1/products/{term}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	term := mux.Vars(r)["term"]

	found, err := h.productService.Get(r.Context(), term)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProductFromModel(found))
}

// Update handles PATCH /api/v1/products/{term}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	term := mux.Vars(r)["term"]

	var req request.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	existing, err := h.productService.Get(r.Context(), term)
	if err != nil {
		WriteError(w, err)
		return
	}

	updated, err := h.productService.Update(r.Context(), existing.ID, product.UpdateInput{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Slug:        req.Slug,
		Stock:       req.Stock,
		Sizes:       req.Sizes,
		Gender:      req.Gender,
		Tags:        req.Tags,
		Images:      req.Images,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProductFromModel(updated))
}

// Delete handles DELETE /api/v1/products/{term}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	term := mux.Vars(r)["term"]

	existing, err := h.productService.Get(r.Context(), term)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.productService.Delete(r.Context(), existing.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// paginationFromQuery parses limit/offset query parameters
func paginationFromQuery(r *http.Request) (model.Pagination, error) {
	var p model.Pagination

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return p, NewInvalidRequestError("limit must be a non-negative integer")
		}
		p.Limit = limit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return p, NewInvalidRequestError("offset must be a non-negative integer")
		}
		p.Offset = offset
	}

	return p, nil
}
