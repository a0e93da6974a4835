package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mfreitas/storegate/internal/model"
	"github.com/mfreitas/storegate/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, emailIndexKey(user.Email), string(user.ID), 0)
	pipe.SAdd(ctx, usersIndexKey, userKey(user.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	id, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetUser(ctx, model.UserID(id))
}

func (s *Storage) DeleteAllUsers(ctx context.Context) error {
	keys, err := s.client.SMembers(ctx, usersIndexKey).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, key := range keys {
		data, err := s.client.Get(ctx, key).Bytes()
		if err == nil {
			var user model.User
			if json.Unmarshal(data, &user) == nil {
				pipe.Del(ctx, emailIndexKey(user.Email))
			}
		}
		pipe.Del(ctx, key)
	}
	pipe.Del(ctx, usersIndexKey)
	_, err = pipe.Exec(ctx)
	return err
}

// Product operations

func (s *Storage) SaveProduct(ctx context.Context, product *model.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}

	// A slug change on update must drop the old slug index entry.
	if existing, err := s.GetProduct(ctx, product.ID); err == nil && existing.Slug != product.Slug {
		if err := s.client.Del(ctx, slugIndexKey(existing.Slug)).Err(); err != nil {
			return err
		}
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, productKey(product.ID), data, 0)
	pipe.Set(ctx, slugIndexKey(product.Slug), string(product.ID), 0)
	pipe.ZAddNX(ctx, productsIndexKey, redis.Z{
		Score:  float64(product.CreatedAt.UnixNano()),
		Member: productKey(product.ID),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetProduct(ctx context.Context, id model.ProductID) (*model.Product, error) {
	data, err := s.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrProductNotFound
		}
		return nil, err
	}

	var product model.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Storage) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	id, err := s.client.Get(ctx, slugIndexKey(slug)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrProductNotFound
		}
		return nil, err
	}
	return s.GetProduct(ctx, model.ProductID(id))
}

func (s *Storage) ListProducts(ctx context.Context, p model.Pagination) ([]*model.Product, error) {
	p = p.Normalize()

	start := int64(p.Offset)
	stop := start + int64(p.Limit) - 1

	keys, err := s.client.ZRange(ctx, productsIndexKey, start, stop).Result()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []*model.Product{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*model.Product, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			// Index entry whose value vanished; skip it.
			continue
		}
		var product model.Product
		if err := json.Unmarshal([]byte(str), &product); err != nil {
			return nil, err
		}
		out = append(out, &product)
	}
	return out, nil
}

func (s *Storage) DeleteProduct(ctx context.Context, id model.ProductID) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, productKey(id))
	pipe.Del(ctx, slugIndexKey(product.Slug))
	pipe.ZRem(ctx, productsIndexKey, productKey(id))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) DeleteAllProducts(ctx context.Context) error {
	keys, err := s.client.ZRange(ctx, productsIndexKey, 0, -1).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, key := range keys {
		data, err := s.client.Get(ctx, key).Bytes()
		if err == nil {
			var product model.Product
			if json.Unmarshal(data, &product) == nil {
				pipe.Del(ctx, slugIndexKey(product.Slug))
			}
		}
		pipe.Del(ctx, key)
	}
	pipe.Del(ctx, productsIndexKey)
	_, err = pipe.Exec(ctx)
	return err
}
