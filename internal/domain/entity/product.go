package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario. StockMin/StockMax son
// los umbrales de reposición: un producto con StockMax > 0 participa en la
// generación de sugerencias de pedido. El stock actual NO vive aquí: se deriva
// del ledger de movimientos.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	StockMin    decimal.Decimal
	StockMax    decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
