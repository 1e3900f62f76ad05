package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
)

func TestSuggestedOrderQty(t *testing.T) {
	d := decimal.NewFromInt

	cases := []struct {
		name      string
		stockMax  decimal.Decimal
		available decimal.Decimal
		expected  decimal.Decimal
	}{
		{"faltante simple: max 50, disponible 20 → 30", d(50), d(20), d(30)},
		{"disponible igual al max → 0", d(50), d(50), d(0)},
		{"disponible sobre el max → 0 (nunca negativo)", d(50), d(80), d(0)},
		{"disponible negativo aumenta el pedido", d(50), d(-10), d(60)},
		{"max cero sin disponible → 0", d(0), d(0), d(0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.SuggestedOrderQty(tc.stockMax, tc.available)
			assert.True(t, tc.expected.Equal(got), "esperado %s, obtenido %s", tc.expected, got)
		})
	}
}

func TestSuggestedOrderQty_Decimales(t *testing.T) {
	got := inventory.SuggestedOrderQty(decimal.RequireFromString("12.5"), decimal.RequireFromString("7.25"))
	assert.True(t, decimal.RequireFromString("5.25").Equal(got))
}
