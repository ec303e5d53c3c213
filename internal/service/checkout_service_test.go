package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/repository"
)

type shop struct {
	catalog  *CatalogService
	cart     *CartService
	orders   *OrderService
	session  *SessionService
	checkout *CheckoutService
}

func setupShop(t *testing.T, kv repository.KV) *shop {
	t.Helper()
	ctx := context.Background()
	cart, err := NewCartService(ctx, kv, nil)
	require.NoError(t, err)
	session, err := NewSessionService(ctx, kv, nil)
	require.NoError(t, err)
	orders := newOrders(t, kv)
	return &shop{
		catalog:  NewCatalogService(catalog.Default(), nil),
		cart:     cart,
		orders:   orders,
		session:  session,
		checkout: NewCheckoutService(cart, orders, session, nil),
	}
}

func lineFor(p *domain.Product, size, color string) domain.CartLine {
	return domain.CartLine{ProductID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image, Size: size, Color: color}
}

func TestCheckout_PriorityScenario(t *testing.T) {
	ctx := context.Background()
	s := setupShop(t, repository.NewMemoryKV())

	p1, err := s.catalog.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "24.99", p1.Price.String())

	require.NoError(t, s.cart.Add(ctx, lineFor(p1, "M", "white")))
	assert.Equal(t, "24.99", s.cart.Subtotal(ctx).String())

	require.NoError(t, s.cart.Add(ctx, lineFor(p1, "M", "white")))
	require.Len(t, s.cart.Lines(ctx), 1)
	assert.Equal(t, 2, s.cart.Lines(ctx)[0].Quantity)
	assert.Equal(t, "49.98", s.cart.Subtotal(ctx).String())

	require.NoError(t, s.cart.SetPriorityDelivery(ctx, true))
	assert.Equal(t, "54.978", s.cart.Total(ctx).String())
	assert.Equal(t, "54.98", domain.RoundCents(s.cart.Total(ctx)).StringFixed(2))

	order, err := s.checkout.PlaceOrder(ctx, CheckoutForm{Name: "Jane", Address: "1 Main St", Phone: "555-0100"})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "54.98", domain.RoundCents(order.Total).StringFixed(2))
	assert.True(t, order.PriorityDelivery)
	assert.Equal(t, order.CreatedAt.Add(24*time.Hour), order.EstimatedDelivery)
	assert.Empty(t, order.Email)

	assert.Empty(t, s.cart.Lines(ctx))
	assert.False(t, s.cart.PriorityDelivery(ctx))

	// catalog edits after the fact do not reach the order
	p1.Price = p1.Price.Add(p1.Price)
	_, err = s.catalog.Update(ctx, *p1)
	require.NoError(t, err)
	stored, err := s.orders.Track(ctx, order.ID, "jane")
	require.NoError(t, err)
	assert.Equal(t, "24.99", stored.Items[0].Price.String())
}

func TestCheckout_UsesSessionNameWhenBlank(t *testing.T) {
	ctx := context.Background()
	s := setupShop(t, repository.NewMemoryKV())
	_, err := s.session.Login(ctx, "Ann")
	require.NoError(t, err)
	p, _ := s.catalog.GetByID(ctx, "p5")
	require.NoError(t, s.cart.Add(ctx, lineFor(p, "M", "brown")))

	order, err := s.checkout.PlaceOrder(ctx, CheckoutForm{Address: "2 Side St", Phone: "555-0101", Email: "ann@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", order.CustomerName)
	assert.Equal(t, "ann@example.com", order.Email)

	mine, _ := s.orders.ByCustomer(ctx, "ann")
	assert.Len(t, mine, 1)
}

func TestCheckout_ValidationLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	s := setupShop(t, repository.NewMemoryKV())
	p, _ := s.catalog.GetByID(ctx, "p2")
	require.NoError(t, s.cart.Add(ctx, lineFor(p, "32", "blue")))

	forms := []CheckoutForm{
		{Name: "", Address: "1 Main St", Phone: "555"},
		{Name: "Jane", Address: "  ", Phone: "555"},
		{Name: "Jane", Address: "1 Main St", Phone: ""},
		{Name: "Jane", Address: "1 Main St", Phone: "555", Email: "not-an-email"},
	}
	for _, f := range forms {
		_, err := s.checkout.PlaceOrder(ctx, f)
		assert.True(t, errors.Is(err, ErrInvalidInput), "form %+v: %v", f, err)
	}
	assert.Len(t, s.cart.Lines(ctx), 1)
	all, _ := s.orders.List(ctx)
	assert.Empty(t, all)
}

func TestCheckout_EmptyCart(t *testing.T) {
	ctx := context.Background()
	s := setupShop(t, repository.NewMemoryKV())
	_, err := s.checkout.PlaceOrder(ctx, CheckoutForm{Name: "Jane", Address: "1 Main St", Phone: "555"})
	assert.True(t, errors.Is(err, ErrEmptyCart))
}

func TestCheckout_StateSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	s := setupShop(t, kv)
	_, _ = s.session.Login(ctx, "Jane")
	p, _ := s.catalog.GetByID(ctx, "p3")
	require.NoError(t, s.cart.Add(ctx, lineFor(p, "S", "navy")))
	order, err := s.checkout.PlaceOrder(ctx, CheckoutForm{Address: "1 Main St", Phone: "555"})
	require.NoError(t, err)
	require.NoError(t, s.cart.Add(ctx, lineFor(p, "M", "black")))

	restarted := setupShop(t, kv)
	assert.True(t, restarted.session.IsLoggedIn(ctx))
	assert.Equal(t, 1, restarted.cart.ItemCount(ctx))
	got, err := restarted.orders.Track(ctx, order.ID, "JANE")
	require.NoError(t, err)
	assert.Equal(t, "49.99", got.Total.String())
}

// addDuringCreate creates the order and, while checkout still runs, starts
// another request that adds a line to the same cart.
type addDuringCreate struct {
	orders *OrderService
	cart   *CartService
	line   domain.CartLine
	wg     sync.WaitGroup
	err    error
}

func (a *addDuringCreate) Create(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error) {
	o, err := a.orders.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.err = a.cart.Add(ctx, a.line)
	}()
	return o, nil
}

func TestCheckout_ConcurrentAddIsKept(t *testing.T) {
	ctx := context.Background()
	s := setupShop(t, repository.NewMemoryKV())
	require.NoError(t, s.cart.Add(ctx, tee("M", "white")))

	racer := &addDuringCreate{orders: s.orders, cart: s.cart, line: tee("L", "black")}
	checkout := NewCheckoutService(s.cart, racer, s.session, nil)
	order, err := checkout.PlaceOrder(ctx, CheckoutForm{Name: "Jane", Address: "1 Main St", Phone: "555"})
	require.NoError(t, err)
	racer.wg.Wait()
	require.NoError(t, racer.err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "M", order.Items[0].Size)
	lines := s.cart.Lines(ctx)
	require.Len(t, lines, 1, "line added during checkout must stay in the cart")
	assert.Equal(t, "L", lines[0].Size)
}

func TestCheckout_ClearFailureKeepsOrder(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{MemoryKV: repository.NewMemoryKV()}
	s := setupShop(t, kv)
	require.NoError(t, s.cart.Add(ctx, tee("M", "white")))

	// orders persist, the cart record does not
	kv.failKey = repository.KeyCart
	order, err := s.checkout.PlaceOrder(ctx, CheckoutForm{Name: "Jane", Address: "1 Main St", Phone: "555"})
	require.Error(t, err)
	require.NotNil(t, order)
	assert.Equal(t, 1, s.cart.ItemCount(ctx))
	_, err = s.orders.GetOrder(ctx, order.ID)
	assert.NoError(t, err)
}
