package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"storefront/internal/domain"
)

var ErrEmptyCart = errors.New("cart is empty")

// CheckoutForm данные, введённые покупателем при оформлении
type CheckoutForm struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
}

type cartPort interface {
	Checkout(ctx context.Context, fn func(domain.CartSummary) error) error
}

type orderPort interface {
	Create(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error)
}

type identityPort interface {
	Current(ctx context.Context) (domain.Identity, bool)
}

// CheckoutService places an order as one sequence under the cart lock: read
// the cart, create the order, clear the cart.
type CheckoutService struct {
	cart     cartPort
	orders   orderPort
	session  identityPort
	validate *validator.Validate
	log      *zap.Logger
}

func NewCheckoutService(cart cartPort, orders orderPort, session identityPort, logger *zap.Logger) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		cart:     cart,
		orders:   orders,
		session:  session,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      logger,
	}
}

// PlaceOrder validates form, snapshots the cart into a new order and clears
// the cart. Nothing changes when validation fails or the cart is empty. If
// clearing the cart fails the order still stands and is returned with the error.
func (s *CheckoutService) PlaceOrder(ctx context.Context, form CheckoutForm) (*domain.Order, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Address = strings.TrimSpace(form.Address)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Email = strings.TrimSpace(form.Email)
	if form.Name == "" {
		if id, ok := s.session.Current(ctx); ok {
			form.Name = id.Name
		}
	}
	if err := s.validate.StructCtx(ctx, form); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, describeValidation(err))
	}

	var order *domain.Order
	err := s.cart.Checkout(ctx, func(cart domain.CartSummary) error {
		var err error
		order, err = s.orders.Create(ctx, domain.OrderDraft{
			CustomerName:     form.Name,
			Items:            cart.Lines,
			Address:          form.Address,
			Phone:            form.Phone,
			Email:            form.Email,
			PriorityDelivery: cart.PriorityDelivery,
			Total:            cart.Total,
		})
		return err
	})
	switch {
	case err == nil:
		return order, nil
	case errors.Is(err, ErrEmptyCart):
		return nil, err
	case order != nil:
		s.log.Error("order placed but cart not cleared", zap.String("order", order.ID), zap.Error(err))
		return order, fmt.Errorf("clear cart: %w", err)
	default:
		return nil, fmt.Errorf("create order: %w", err)
	}
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+" "+fe.Tag())
	}
	return strings.Join(parts, ", ")
}
