package handler

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"github.com/mfreitas/storegate/internal/api/response"
	"github.com/mfreitas/storegate/internal/services/files"
)

// maxUploadSize caps product image uploads at 5 MiB
const maxUploadSize = 5 << 20

// FilesHandler handles product image upload and serving
type FilesHandler struct {
	fileService *files.Service
}

// NewFilesHandler creates a new files handler
func NewFilesHandler(fileService *files.Service) *FilesHandler {
	return &FilesHandler{
		fileService: fileService,
	}
}

// Upload handles POST /api/v1/files/product
func (h *FilesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, NewInvalidRequestError("a file field is required"))
		return
	}
	defer file.Close()

	name, err := h.fileService.Save(header.Filename, file)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.UploadResponse{
		FileName: name,
		URL:      "/api/v1/files/product/" + name,
	})
}

// Serve handles GET /api/v1/files/product/{name}
func (h *FilesHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	f, err := h.fileService.Open(name)
	if err != nil {
		WriteError(w, err)
		return
	}
	defer f.Close()

	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	_, _ = io.Copy(w, f)
}
