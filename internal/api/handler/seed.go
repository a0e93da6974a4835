package handler

import (
	"net/http"

	"github.com/mfreitas/storegate/internal/api/response"
	"github.com/mfreitas/storegate/internal/services/seed"
)

// SeedHandler handles the development dataset reset endpoint
type SeedHandler struct {
	seedService *seed.Service
}

// NewSeedHandler creates a new seed handler
func NewSeedHandler(seedService *seed.Service) *SeedHandler {
	return &SeedHandler{
		seedService: seedService,
	}
}

// Run handles POST /api/v1/seed
func (h *SeedHandler) Run(w http.ResponseWriter, r *http.Request) {
	result, err := h.seedService.Run(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SeedResponseFromResult(result))
}
