package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// CartService корзина текущего покупателя; каждое изменение сохраняется целиком
type CartService struct {
	mu       sync.RWMutex
	kv       repository.KV
	log      *zap.Logger
	lines    []domain.CartLine
	priority bool
}

// NewCartService restores the cart from kv. A malformed record is logged and
// the cart starts empty; only storage failures are returned.
func NewCartService(ctx context.Context, kv repository.KV, logger *zap.Logger) (*CartService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CartService{kv: kv, log: logger}

	var lines []domain.CartLine
	if _, err := repository.LoadJSON(ctx, kv, repository.KeyCart, &lines); err != nil {
		if !errors.Is(err, repository.ErrMalformed) {
			return nil, fmt.Errorf("load cart: %w", err)
		}
		logger.Warn("discarding stored cart", zap.Error(err))
		lines = nil
	}
	s.lines = sanitizeLines(lines)

	priority, err := repository.LoadFlag(ctx, kv, repository.KeyPriorityDelivery)
	if err != nil {
		return nil, fmt.Errorf("load priority flag: %w", err)
	}
	s.priority = priority
	return s, nil
}

// sanitizeLines drops non-positive quantities and merges duplicate keys that a
// hand-edited record could contain.
func sanitizeLines(lines []domain.CartLine) []domain.CartLine {
	var out []domain.CartLine
	idx := make(map[domain.LineKey]int, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if i, ok := idx[l.Key()]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		idx[l.Key()] = len(out)
		out = append(out, l)
	}
	return out
}

// Add puts one unit of item into the cart. item.Quantity is ignored.
func (s *CartService) Add(ctx context.Context, item domain.CartLine) error {
	if item.ProductID == "" {
		return fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	return s.mutate(ctx, func(lines []domain.CartLine) []domain.CartLine {
		if i := indexOfLine(lines, item.Key()); i >= 0 {
			lines[i].Quantity++
			return lines
		}
		item.Quantity = 1
		return append(lines, item)
	})
}

func (s *CartService) Remove(ctx context.Context, productID, size, color string) error {
	key := domain.LineKey{ProductID: productID, Size: size, Color: color}
	return s.mutate(ctx, func(lines []domain.CartLine) []domain.CartLine {
		i := indexOfLine(lines, key)
		if i < 0 {
			return lines
		}
		return append(lines[:i], lines[i+1:]...)
	})
}

// SetQuantity overwrites the quantity of an existing line; qty <= 0 removes it.
func (s *CartService) SetQuantity(ctx context.Context, productID, size, color string, qty int) error {
	if qty <= 0 {
		return s.Remove(ctx, productID, size, color)
	}
	key := domain.LineKey{ProductID: productID, Size: size, Color: color}
	return s.mutate(ctx, func(lines []domain.CartLine) []domain.CartLine {
		if i := indexOfLine(lines, key); i >= 0 {
			lines[i].Quantity = qty
		}
		return lines
	})
}

// Clear empties the cart and resets priority delivery.
func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, nil, false)
}

func (s *CartService) SetPriorityDelivery(ctx context.Context, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, s.lines, on)
}

// Snapshot returns the lines by value together with the derived totals.
func (s *CartService) Snapshot(ctx context.Context) domain.CartSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary()
}

// summary builds the snapshot; caller holds the lock.
func (s *CartService) summary() domain.CartSummary {
	sub := domain.Subtotal(s.lines)
	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return domain.CartSummary{
		Lines:            domain.CloneLines(s.lines),
		ItemCount:        count,
		Subtotal:         sub,
		Total:            domain.ApplyPriority(sub, s.priority),
		PriorityDelivery: s.priority,
	}
}

// Checkout hands the current cart to fn and clears the cart once fn succeeds.
// The cart stays locked throughout, so a concurrent Add lands either before
// the summary is taken or in the emptied cart afterwards. An empty cart
// returns ErrEmptyCart without calling fn; an fn error leaves the cart as is.
func (s *CartService) Checkout(ctx context.Context, fn func(domain.CartSummary) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := s.summary()
	if len(sum.Lines) == 0 {
		return ErrEmptyCart
	}
	if err := fn(sum); err != nil {
		return err
	}
	return s.commit(ctx, nil, false)
}

func (s *CartService) Lines(ctx context.Context) []domain.CartLine {
	return s.Snapshot(ctx).Lines
}

func (s *CartService) ItemCount(ctx context.Context) int {
	return s.Snapshot(ctx).ItemCount
}

func (s *CartService) Subtotal(ctx context.Context) decimal.Decimal {
	return s.Snapshot(ctx).Subtotal
}

func (s *CartService) Total(ctx context.Context) decimal.Decimal {
	return s.Snapshot(ctx).Total
}

func (s *CartService) PriorityDelivery(ctx context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.priority
}

// mutate applies fn to a private copy and swaps it in only after the new
// state has been persisted.
func (s *CartService) mutate(ctx context.Context, fn func([]domain.CartLine) []domain.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, fn(domain.CloneLines(s.lines)), s.priority)
}

// commit persists the new state and swaps it in. On failure memory keeps the
// old state and the old records are written back, so a partial write does not
// resurface after a restart. Caller holds the write lock.
func (s *CartService) commit(ctx context.Context, lines []domain.CartLine, priority bool) error {
	if err := s.write(ctx, lines, priority); err != nil {
		if rerr := s.write(ctx, s.lines, s.priority); rerr != nil {
			s.log.Error("restore cart records", zap.Error(rerr))
		}
		return err
	}
	s.lines, s.priority = lines, priority
	return nil
}

func (s *CartService) write(ctx context.Context, lines []domain.CartLine, priority bool) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	if err := repository.SaveJSON(ctx, s.kv, repository.KeyCart, lines); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	if err := repository.SaveFlag(ctx, s.kv, repository.KeyPriorityDelivery, priority); err != nil {
		return fmt.Errorf("save priority flag: %w", err)
	}
	return nil
}

func indexOfLine(lines []domain.CartLine, key domain.LineKey) int {
	for i := range lines {
		if lines[i].Key() == key {
			return i
		}
	}
	return -1
}
