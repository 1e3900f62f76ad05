package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockAggregate es el resumen derivado del ledger para un producto: una fila
// de la vista materializada product_stock, o el resultado del SUM de respaldo.
// No es autoritativo; el ledger siempre puede reconstruirlo.
type StockAggregate struct {
	ProductID string
	Stock     decimal.Decimal // suma de signed_qty de todo el ledger del producto
	Reserved  decimal.Decimal // comprometido en órdenes abiertas; 0 en la vía de respaldo
	Available decimal.Decimal // Stock - Reserved (el valor crudo puede ser negativo)
	UpdatedAt time.Time
}

// ZeroAggregate devuelve el agregado vacío de un producto sin movimientos.
func ZeroAggregate(productID string) StockAggregate {
	return StockAggregate{
		ProductID: productID,
		Stock:     decimal.Zero,
		Reserved:  decimal.Zero,
		Available: decimal.Zero,
	}
}
