package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

func TestNewLogger(t *testing.T) {
	l, err := newLogger("warn", false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	l, err = newLogger("warn", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = newLogger("loud", false)
	assert.Error(t, err)
}

func TestPrintProducts(t *testing.T) {
	var buf bytes.Buffer
	printProducts(&buf, catalog.Default()[:2])
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "ID"))
	assert.Contains(t, out, "p1")
	assert.Contains(t, out, "24.99")
	assert.Contains(t, out, "featured")
}

func TestPrintOrders(t *testing.T) {
	var buf bytes.Buffer
	printOrders(&buf, nil)
	assert.Equal(t, "no orders\n", buf.String())

	buf.Reset()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	printOrders(&buf, []domain.Order{{
		ID:                "ABCD1234",
		Status:            domain.OrderStatusPending,
		Items:             []domain.CartLine{{ProductID: "p1", Quantity: 2}},
		Total:             decimal.RequireFromString("54.978"),
		CreatedAt:         created,
		EstimatedDelivery: created.Add(24 * time.Hour),
	}})
	out := buf.String()
	assert.Contains(t, out, "ABCD1234")
	assert.Contains(t, out, "54.98")
	assert.Contains(t, out, "2024-03-02")
}
