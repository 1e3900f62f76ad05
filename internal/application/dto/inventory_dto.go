package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Quantity es magnitud positiva para todos los tipos salvo ADJUSTMENT, donde el
// caller pasa el delta firmado directamente (asimetría intencional del ledger).
type RegisterMovementRequest struct {
	ProductID     string          `json:"product_id" validate:"required,uuid"`
	Type          string          `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT TRANSFER RETURN EXCHANGE"`
	Quantity      decimal.Decimal `json:"quantity"`
	LocationFrom  string          `json:"location_from,omitempty" validate:"omitempty,max=80"`
	LocationTo    string          `json:"location_to,omitempty" validate:"omitempty,max=80"`
	Reason        string          `json:"reason,omitempty" validate:"omitempty,max=500"`
	RelatedSaleID string          `json:"related_sale_id,omitempty" validate:"omitempty,max=80"`
}

// MovementResponse representación de una fila del ledger.
type MovementResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Type          string          `json:"type"`
	SignedQty     decimal.Decimal `json:"signed_qty"`
	LocationFrom  string          `json:"location_from,omitempty"`
	LocationTo    string          `json:"location_to,omitempty"`
	MovementGroup string          `json:"movement_group,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	RelatedSaleID string          `json:"related_sale_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// StockResponse triple {stock, reserved, available} de un producto.
// Degraded indica que se usó la vía de respaldo (reserved aproximado a 0).
type StockResponse struct {
	ProductID string          `json:"product_id"`
	Stock     decimal.Decimal `json:"stock"`
	Reserved  decimal.Decimal `json:"reserved"`
	Available decimal.Decimal `json:"available"`
	Degraded  bool            `json:"degraded,omitempty"`
}

// ProductRequest body para crear/actualizar productos.
type ProductRequest struct {
	SKU         string          `json:"sku" validate:"required,max=60"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	StockMin    decimal.Decimal `json:"stock_min"`
	StockMax    decimal.Decimal `json:"stock_max"`
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	StockMin    decimal.Decimal `json:"stock_min"`
	StockMax    decimal.Decimal `json:"stock_max"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
