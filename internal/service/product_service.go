package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

var ErrInvalidInput = errors.New("invalid input")

// ProductFilter параметры фильтрации каталога; пустые поля не фильтруют
type ProductFilter struct {
	Query      string
	Category   domain.Category
	Featured   bool
	NewArrival bool
}

// CatalogService владеет списком товаров. Изменения живут только в памяти процесса.
type CatalogService struct {
	mu       sync.RWMutex
	products []domain.Product
	nextSeq  int
	log      *zap.Logger
}

func NewCatalogService(seed []domain.Product, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CatalogService{log: logger, nextSeq: 1}
	for _, p := range seed {
		s.products = append(s.products, p.Clone())
		if n, ok := seqOf(p.ID); ok && n >= s.nextSeq {
			s.nextSeq = n + 1
		}
	}
	return s
}

// seqOf parses ids of the form p<N>.
func seqOf(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, "p")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	return s.filter(func(domain.Product) bool { return true }), nil
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	cp := s.products[i].Clone()
	return &cp, nil
}

func (s *CatalogService) ByCategory(ctx context.Context, c domain.Category) ([]domain.Product, error) {
	return s.filter(func(p domain.Product) bool { return p.Category == c }), nil
}

func (s *CatalogService) Featured(ctx context.Context) ([]domain.Product, error) {
	return s.filter(func(p domain.Product) bool { return p.Featured }), nil
}

func (s *CatalogService) NewArrivals(ctx context.Context) ([]domain.Product, error) {
	return s.filter(func(p domain.Product) bool { return p.NewArrival }), nil
}

// Search matches the query case-insensitively against name, description and
// category. A blank query matches everything.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	return s.filter(func(p domain.Product) bool { return matches(p, q) }), nil
}

// Find combines the filter fields; used by the listing endpoint and the CLI.
func (s *CatalogService) Find(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	return s.filter(func(p domain.Product) bool {
		if f.Category != "" && p.Category != f.Category {
			return false
		}
		if f.Featured && !p.Featured {
			return false
		}
		if f.NewArrival && !p.NewArrival {
			return false
		}
		return matches(p, q)
	}), nil
}

func matches(p domain.Product, lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Description), lowerQuery) ||
		strings.Contains(strings.ToLower(string(p.Category)), lowerQuery)
}

// Create appends p under a freshly assigned id. Ids come from a counter that
// never goes back, so deleting p8 and adding a product yields p9, not p8.
func (s *CatalogService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p.Clone()
	for {
		cp.ID = "p" + strconv.Itoa(s.nextSeq)
		s.nextSeq++
		if s.indexOf(cp.ID) < 0 {
			break
		}
	}
	s.products = append(s.products, cp)
	s.log.Info("product added", zap.String("id", cp.ID), zap.String("name", cp.Name))
	out := cp.Clone()
	return &out, nil
}

// Update replaces the product with the same id in place.
func (s *CatalogService) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(p.ID)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	s.products[i] = p.Clone()
	s.log.Info("product updated", zap.String("id", p.ID))
	out := p.Clone()
	return &out, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	s.products = append(s.products[:i:i], s.products[i+1:]...)
	s.log.Info("product deleted", zap.String("id", id))
	return nil
}

// Count is used by the admin stats.
func (s *CatalogService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

func (s *CatalogService) indexOf(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *CatalogService) filter(keep func(domain.Product) bool) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0)
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}
