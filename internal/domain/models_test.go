package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_ForwardOnly(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusDelivered, true},
		{OrderStatusDelivered, OrderStatusReceived, true},
		{OrderStatusPending, OrderStatusReceived, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusReceived, OrderStatusDelivered, false},
		{OrderStatusReceived, OrderStatusPending, false},
		{OrderStatusPending, OrderStatusPending, false},
		{OrderStatusPending, OrderStatus("shipped"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestProduct_Validate(t *testing.T) {
	valid := Product{
		Name:     "Tee",
		Price:    decimal.RequireFromString("10"),
		Category: CategoryMen,
		Colors:   []string{"white"},
		Sizes:    []string{"M"},
	}
	require.NoError(t, valid.Validate())

	cases := map[string]func(p *Product){
		"name":     func(p *Product) { p.Name = "  " },
		"price":    func(p *Product) { p.Price = decimal.RequireFromString("-1") },
		"category": func(p *Product) { p.Category = "kids" },
		"colors":   func(p *Product) { p.Colors = nil },
		"sizes":    func(p *Product) { p.Sizes = []string{} },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			p := valid.Clone()
			mutate(&p)
			err := p.Validate()
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, field, verr.Field)
		})
	}
}

func TestMoney_PriorityAndRounding(t *testing.T) {
	lines := []CartLine{{ProductID: "p1", Price: decimal.RequireFromString("24.99"), Quantity: 2}}
	sub := Subtotal(lines)
	assert.Equal(t, "49.98", sub.String())
	assert.True(t, ApplyPriority(sub, false).Equal(sub))

	total := ApplyPriority(sub, true)
	assert.Equal(t, "54.978", total.String())
	assert.Equal(t, "54.98", RoundCents(total).StringFixed(2))
}

func TestOrder_BelongsToAndClone(t *testing.T) {
	o := Order{CustomerName: "jane", Items: []CartLine{{ProductID: "p1", Quantity: 1}}}
	assert.True(t, o.BelongsTo("Jane"))
	assert.True(t, o.BelongsTo("JANE"))
	assert.False(t, o.BelongsTo("John"))

	cp := o.Clone()
	cp.Items[0].Quantity = 9
	assert.Equal(t, 1, o.Items[0].Quantity)
}
