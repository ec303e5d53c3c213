package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category закрытый набор категорий каталога
type Category string

const (
	CategoryMen         Category = "men"
	CategoryWomen       Category = "women"
	CategoryAccessories Category = "accessories"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryAccessories:
		return true
	}
	return false
}

// Product представляет товар витрины
type Product struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Price       decimal.Decimal `json:"price" yaml:"price"`
	Category    Category        `json:"category" yaml:"category"`
	Description string          `json:"description" yaml:"description"`
	Image       string          `json:"image" yaml:"image"`
	Colors      []string        `json:"colors" yaml:"colors"`
	Sizes       []string        `json:"sizes" yaml:"sizes"`
	Featured    bool            `json:"featured" yaml:"featured"`
	NewArrival  bool            `json:"newArrival" yaml:"newArrival"`
}

// Validate проверяет поля товара, id не проверяется (его выдаёт каталог)
func (p Product) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fieldError("name", "is required")
	case p.Price.IsNegative():
		return fieldError("price", "must not be negative")
	case !p.Category.Valid():
		return fieldError("category", "must be one of men, women, accessories")
	case len(p.Colors) == 0:
		return fieldError("colors", "must not be empty")
	case len(p.Sizes) == 0:
		return fieldError("sizes", "must not be empty")
	}
	return nil
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	cp := p
	cp.Colors = append([]string(nil), p.Colors...)
	cp.Sizes = append([]string(nil), p.Sizes...)
	return cp
}

// LineKey составной ключ позиции корзины
type LineKey struct {
	ProductID string
	Size      string
	Color     string
}

// CartLine позиция корзины; name/price/image копируются из товара в момент добавления
type CartLine struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
}

func (l CartLine) Key() LineKey {
	return LineKey{ProductID: l.ProductID, Size: l.Size, Color: l.Color}
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartSummary производные значения корзины, пересчитываются при каждом чтении
type CartSummary struct {
	Lines            []CartLine      `json:"items"`
	ItemCount        int             `json:"itemCount"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Total            decimal.Decimal `json:"total"`
	PriorityDelivery bool            `json:"priorityDelivery"`
}

// OrderStatus тип статуса заказа
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusReceived  OrderStatus = "received"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusDelivered, OrderStatusReceived:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is the single allowed forward step from s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusDelivered
	case OrderStatusDelivered:
		return next == OrderStatusReceived
	}
	return false
}

// Order сущность заказа; Items, Total и EstimatedDelivery фиксируются при создании
type Order struct {
	ID                string          `json:"id"`
	CustomerName      string          `json:"customerName"`
	Items             []CartLine      `json:"items"`
	Address           string          `json:"address"`
	Phone             string          `json:"phone"`
	Email             string          `json:"email,omitempty"`
	PriorityDelivery  bool            `json:"priorityDelivery"`
	Total             decimal.Decimal `json:"total"`
	Status            OrderStatus     `json:"status"`
	CreatedAt         time.Time       `json:"createdAt"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery"`
}

// BelongsTo compares customer names case-insensitively.
func (o Order) BelongsTo(name string) bool {
	return strings.EqualFold(o.CustomerName, name)
}

func (o Order) Clone() Order {
	cp := o
	cp.Items = CloneLines(o.Items)
	return cp
}

// OrderDraft данные для создания заказа
type OrderDraft struct {
	CustomerName     string
	Items            []CartLine
	Address          string
	Phone            string
	Email            string
	PriorityDelivery bool
	Total            decimal.Decimal
}

// OrderStats сводка для админ-панели
type OrderStats struct {
	Total     int             `json:"total"`
	Pending   int             `json:"pending"`
	Delivered int             `json:"delivered"`
	Received  int             `json:"received"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// Identity имя покупателя, без пароля
type Identity struct {
	Name string `json:"name"`
}

func CloneLines(lines []CartLine) []CartLine {
	if len(lines) == 0 {
		return nil
	}
	dup := make([]CartLine, len(lines))
	copy(dup, lines)
	return dup
}
