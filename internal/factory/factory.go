package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/mfreitas/storegate/internal/dependencies/clock"
	"github.com/mfreitas/storegate/internal/gateway"
	"github.com/mfreitas/storegate/internal/model"
	"github.com/mfreitas/storegate/internal/services/auth"
	"github.com/mfreitas/storegate/internal/services/files"
	"github.com/mfreitas/storegate/internal/services/product"
	"github.com/mfreitas/storegate/internal/services/seed"
	"github.com/mfreitas/storegate/internal/services/token"
	"github.com/mfreitas/storegate/internal/storage"
	"github.com/mfreitas/storegate/internal/storage/memory"
	redisstorage "github.com/mfreitas/storegate/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	TokenService   *token.Service
	AuthService    *auth.Service
	ProductService *product.Service
	FileService    *files.Service
	SeedService    *seed.Service

	// Gateway
	Registry       *gateway.Registry
	Dispatcher     *gateway.Dispatcher
	GatewayHandler *gateway.Handler
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// TokenConfig holds token signing settings; Secret is required
	TokenConfig token.Config
	// FilesConfig holds upload storage settings (optional)
	FilesConfig files.Config
	// GatewayPolicy controls connection registry behaviour (optional)
	GatewayPolicy gateway.Policy
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()

	return newWithDependencies(store, clk, cfg, logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, cfg Config, logger *slog.Logger) (*App, error) {
	tokenService, err := token.New(cfg.TokenConfig, clk)
	if err != nil {
		return nil, err
	}

	authService := auth.New(store, tokenService, clk)
	productService := product.New(store, clk)
	seedService := seed.New(store, productService, clk)

	fileService, err := files.New(cfg.FilesConfig)
	if err != nil {
		return nil, err
	}

	registry := gateway.NewRegistry(cfg.GatewayPolicy)
	dispatcher := gateway.NewDispatcher(registry, logger)
	gatewayHandler := gateway.NewHandler(registry, dispatcher, tokenService, &userDirectory{store: store}, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		TokenService:   tokenService,
		AuthService:    authService,
		ProductService: productService,
		FileService:    fileService,
		SeedService:    seedService,
		Registry:       registry,
		Dispatcher:     dispatcher,
		GatewayHandler: gatewayHandler,
	}, nil
}

// userDirectory resolves display names for the gateway from user storage
type userDirectory struct {
	store storage.Storage
}

func (d *userDirectory) LookupDisplayName(ctx context.Context, id model.UserID) (string, error) {
	user, err := d.store.GetUser(ctx, id)
	if err != nil {
		return "", err
	}
	return user.FullName, nil
}
