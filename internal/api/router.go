package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mfreitas/storegate/internal/api/handler"
	apimiddleware "github.com/mfreitas/storegate/internal/api/middleware"
	"github.com/mfreitas/storegate/internal/middleware"
	"github.com/mfreitas/storegate/internal/services/auth"
	"github.com/mfreitas/storegate/internal/services/files"
	"github.com/mfreitas/storegate/internal/services/product"
	"github.com/mfreitas/storegate/internal/services/seed"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	ProductService *product.Service
	FileService    *files.Service
	SeedService    *seed.Service
	// GatewayHandler serves the websocket handshake endpoint
	GatewayHandler http.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	productHandler := handler.NewProductHandler(cfg.ProductService)
	filesHandler := handler.NewFilesHandler(cfg.FileService)
	seedHandler := handler.NewSeedHandler(cfg.SeedService)

	// Create middleware
	authMiddleware := apimiddleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/check-status", authHandler.CheckStatus).Methods(http.MethodGet)

	// Product routes: reads are public, writes require auth
	api.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/products/{term}", productHandler.Get).Methods(http.MethodGet)

	products := api.PathPrefix("/products").Subrouter()
	products.Use(authMiddleware)
	products.HandleFunc("", productHandler.Create).Methods(http.MethodPost)
	products.HandleFunc("/{term}", productHandler.Update).Methods(http.MethodPatch)

	productDelete := api.PathPrefix("/products").Subrouter()
	productDelete.Use(authMiddleware)
	productDelete.Use(apimiddleware.RequireCapability(apimiddleware.CapProductDelete))
	productDelete.HandleFunc("/{term}", productHandler.Delete).Methods(http.MethodDelete)

	// File routes: serving is public, uploading requires auth
	api.HandleFunc("/files/product/{name}", filesHandler.Serve).Methods(http.MethodGet)

	upload := api.PathPrefix("/files").Subrouter()
	upload.Use(authMiddleware)
	upload.HandleFunc("/product", filesHandler.Upload).Methods(http.MethodPost)

	// Seed route (admin only)
	seedRoute := api.PathPrefix("/seed").Subrouter()
	seedRoute.Use(authMiddleware)
	seedRoute.Use(apimiddleware.RequireCapability(apimiddleware.CapSeedRun))
	seedRoute.HandleFunc("", seedHandler.Run).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Websocket endpoint; the gateway does its own credential check
	// before upgrading
	if cfg.GatewayHandler != nil {
		wsRecovery := middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler)
		r.Handle("/ws", wsRecovery(loggingMiddleware(cfg.GatewayHandler))).Methods(http.MethodGet)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
