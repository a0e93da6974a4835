package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/mfreitas/storegate/internal/model"
	"github.com/mfreitas/storegate/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users      map[model.UserID]*model.User
	emailIndex map[string]model.UserID

	products     map[model.ProductID]*model.Product
	slugIndex    map[string]model.ProductID
	productOrder []model.ProductID // creation order, backs list pagination
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:      make(map[model.UserID]*model.User),
		emailIndex: make(map[string]model.UserID),
		products:   make(map[model.ProductID]*model.Product),
		slugIndex:  make(map[string]model.ProductID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.users[user.ID]; ok {
		delete(s.emailIndex, strings.ToLower(existing.Email))
	}
	s.users[user.ID] = user
	s.emailIndex[strings.ToLower(user.Email)] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[strings.ToLower(email)]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) DeleteAllUsers(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[model.UserID]*model.User)
	s.emailIndex = make(map[string]model.UserID)
	return nil
}

// Product operations

func (s *Storage) SaveProduct(ctx context.Context, product *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.products[product.ID]; ok {
		delete(s.slugIndex, existing.Slug)
	} else {
		s.productOrder = append(s.productOrder, product.ID)
	}
	s.products[product.ID] = product
	s.slugIndex[product.Slug] = product.ID
	return nil
}

func (s *Storage) GetProduct(ctx context.Context, id model.ProductID) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

func (s *Storage) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.slugIndex[slug]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	product, ok := s.products[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

func (s *Storage) ListProducts(ctx context.Context, p model.Pagination) ([]*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p = p.Normalize()
	if p.Offset >= len(s.productOrder) {
		return []*model.Product{}, nil
	}

	end := p.Offset + p.Limit
	if end > len(s.productOrder) {
		end = len(s.productOrder)
	}

	out := make([]*model.Product, 0, end-p.Offset)
	for _, id := range s.productOrder[p.Offset:end] {
		if product, ok := s.products[id]; ok {
			out = append(out, product)
		}
	}
	return out, nil
}

func (s *Storage) DeleteProduct(ctx context.Context, id model.ProductID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil
	}
	delete(s.products, id)
	delete(s.slugIndex, product.Slug)
	for i, pid := range s.productOrder {
		if pid == id {
			s.productOrder = append(s.productOrder[:i], s.productOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Storage) DeleteAllProducts(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make(map[model.ProductID]*model.Product)
	s.slugIndex = make(map[string]model.ProductID)
	s.productOrder = nil
	return nil
}
