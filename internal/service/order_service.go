package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNameMismatch      = errors.New("customer name does not match order")
	ErrIDExhausted       = errors.New("could not generate a unique order id")
)

const (
	orderIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	orderIDLength   = 8
	maxIDAttempts   = 8
)

// OrderOption настраивает OrderService (часы, генератор случайных чисел, логгер)
type OrderOption func(*OrderService)

func WithClock(now func() time.Time) OrderOption {
	return func(s *OrderService) { s.now = now }
}

func WithRand(r *rand.Rand) OrderOption {
	return func(s *OrderService) { s.rnd = r }
}

func WithLogger(l *zap.Logger) OrderOption {
	return func(s *OrderService) { s.log = l }
}

// OrderService история заказов: создание, поиск, отслеживание и смена статуса
type OrderService struct {
	mu     sync.RWMutex
	kv     repository.KV
	log    *zap.Logger
	now    func() time.Time
	rnd    *rand.Rand
	orders []domain.Order
}

// NewOrderService restores orders from kv; malformed data is logged and dropped.
func NewOrderService(ctx context.Context, kv repository.KV, opts ...OrderOption) (*OrderService, error) {
	s := &OrderService{
		kv:  kv,
		log: zap.NewNop(),
		now: time.Now,
		rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}

	var orders []domain.Order
	if _, err := repository.LoadJSON(ctx, kv, repository.KeyOrders, &orders); err != nil {
		if !errors.Is(err, repository.ErrMalformed) {
			return nil, fmt.Errorf("load orders: %w", err)
		}
		s.log.Warn("discarding stored orders", zap.Error(err))
		orders = nil
	}
	s.orders = orders
	return s, nil
}

// Create stores a pending order built from draft and returns it. Items are
// copied, so later cart changes do not reach the order. Clearing the cart is
// the caller's job.
func (s *OrderService) Create(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error) {
	if strings.TrimSpace(draft.CustomerName) == "" || len(draft.Items) == 0 {
		return nil, ErrInvalidInput
	}
	for _, it := range draft.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.newID()
	if err != nil {
		return nil, err
	}
	created := s.now().UTC()
	o := domain.Order{
		ID:                id,
		CustomerName:      draft.CustomerName,
		Items:             domain.CloneLines(draft.Items),
		Address:           draft.Address,
		Phone:             draft.Phone,
		Email:             draft.Email,
		PriorityDelivery:  draft.PriorityDelivery,
		Total:             draft.Total,
		Status:            domain.OrderStatusPending,
		CreatedAt:         created,
		EstimatedDelivery: created.AddDate(0, 0, s.deliveryDays(draft.PriorityDelivery)),
	}

	prev := s.orders
	s.orders = append(cloneOrders(prev), o)
	if err := s.persist(ctx); err != nil {
		s.orders = prev
		return nil, err
	}
	s.log.Info("order created",
		zap.String("id", o.ID),
		zap.String("customer", o.CustomerName),
		zap.Int("lines", len(o.Items)),
		zap.String("total", o.Total.String()))
	out := o.Clone()
	return &out, nil
}

// newID draws 8 characters uniformly from A-Z0-9 and retries on collision
// with an existing order.
func (s *OrderService) newID() (string, error) {
	var b [orderIDLength]byte
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		for i := range b {
			b[i] = orderIDAlphabet[s.rnd.IntN(len(orderIDAlphabet))]
		}
		id := string(b[:])
		if s.indexOf(id) < 0 {
			return id, nil
		}
		s.log.Warn("order id collision", zap.String("id", id), zap.Int("attempt", attempt+1))
	}
	return "", ErrIDExhausted
}

// deliveryDays: priority ships next day, otherwise 2 or 3 days.
func (s *OrderService) deliveryDays(priority bool) int {
	if priority {
		return 1
	}
	return 2 + s.rnd.IntN(2)
}

// GetOrder возвращает заказ по id
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	o := s.orders[i].Clone()
	return &o, nil
}

// ByCustomer returns the orders placed under name, compared case-insensitively.
func (s *OrderService) ByCustomer(ctx context.Context, name string) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, 0)
	for _, o := range s.orders {
		if o.BelongsTo(name) {
			out = append(out, o.Clone())
		}
	}
	return out, nil
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrders(s.orders), nil
}

// Track looks the order up by id and checks the name. A missing id and a
// wrong name are reported with different errors.
func (s *OrderService) Track(ctx context.Context, id, name string) (*domain.Order, error) {
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.BelongsTo(name) {
		return nil, ErrNameMismatch
	}
	return o, nil
}

// UpdateStatus moves the order one step forward: pending -> delivered -> received.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	from := s.orders[i].Status
	if !from.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, status)
	}

	prev := s.orders
	s.orders = cloneOrders(prev)
	s.orders[i].Status = status
	if err := s.persist(ctx); err != nil {
		s.orders = prev
		return nil, err
	}
	s.log.Info("order status changed",
		zap.String("id", id),
		zap.String("from", string(from)),
		zap.String("to", string(status)))
	o := s.orders[i].Clone()
	return &o, nil
}

// MarkDelivered is the admin action.
func (s *OrderService) MarkDelivered(ctx context.Context, id string) (*domain.Order, error) {
	return s.UpdateStatus(ctx, id, domain.OrderStatusDelivered)
}

// MarkReceived is the shopper action; the name must match the order.
func (s *OrderService) MarkReceived(ctx context.Context, id, name string) (*domain.Order, error) {
	if _, err := s.Track(ctx, id, name); err != nil {
		return nil, err
	}
	return s.UpdateStatus(ctx, id, domain.OrderStatusReceived)
}

// Stats считает заказы по статусам и выручку
func (s *OrderService) Stats(ctx context.Context) domain.OrderStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := domain.OrderStats{Total: len(s.orders), Revenue: decimal.Zero}
	for _, o := range s.orders {
		switch o.Status {
		case domain.OrderStatusPending:
			st.Pending++
		case domain.OrderStatusDelivered:
			st.Delivered++
		case domain.OrderStatusReceived:
			st.Received++
		}
		st.Revenue = st.Revenue.Add(o.Total)
	}
	return st
}

func (s *OrderService) persist(ctx context.Context) error {
	orders := s.orders
	if orders == nil {
		orders = []domain.Order{}
	}
	if err := repository.SaveJSON(ctx, s.kv, repository.KeyOrders, orders); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	return nil
}

func (s *OrderService) indexOf(id string) int {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneOrders(in []domain.Order) []domain.Order {
	out := make([]domain.Order, len(in))
	for i, o := range in {
		out[i] = o.Clone()
	}
	return out
}
