package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReplenishmentSuggestionDTO una sugerencia de reposición: producto bajo su
// tope configurado, con la cantidad faltante hasta stock_max.
type ReplenishmentSuggestionDTO struct {
	ProductID         string          `json:"product_id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Stock             decimal.Decimal `json:"stock"` // disponible al momento del snapshot
	StockMin          decimal.Decimal `json:"stock_min"`
	StockMax          decimal.Decimal `json:"stock_max"`
	OrderSuggestedQty decimal.Decimal `json:"order_suggested_qty"` // max(0, stock_max − disponible)
	Degraded          bool            `json:"degraded,omitempty"`  // stock calculado por la vía de respaldo
}

// OrderItemRequest línea al crear una orden de reposición.
type OrderItemRequest struct {
	ProductID         string          `json:"product_id" validate:"required,uuid"`
	Code              string          `json:"code" validate:"required,max=60"`
	Name              string          `json:"name" validate:"required,max=200"`
	Stock             decimal.Decimal `json:"stock"`
	StockMin          decimal.Decimal `json:"stock_min"`
	StockMax          decimal.Decimal `json:"stock_max"`
	OrderSuggestedQty decimal.Decimal `json:"order_suggested_qty"`
}

// CreateOrderRequest body para POST /api/inventory/replenishment/orders.
type CreateOrderRequest struct {
	Notes string             `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemPatch edición de la cantidad de una línea existente.
type OrderItemPatch struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Qty       decimal.Decimal `json:"qty"`
}

// UpdateOrderRequest patch parcial de una orden: solo los campos presentes se
// aplican. Status admite cualquier valor del conjunto conocido (transiciones
// permisivas, corrección manual siempre posible).
type UpdateOrderRequest struct {
	Status *string          `json:"status,omitempty" validate:"omitempty,oneof=ABERTO EM_PROCESSO FECHADO"`
	Notes  *string          `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Items  []OrderItemPatch `json:"items,omitempty" validate:"omitempty,dive"`
}

// OrderItemResponse línea de orden en respuestas.
type OrderItemResponse struct {
	ProductID         string          `json:"product_id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Stock             decimal.Decimal `json:"stock"`
	StockMin          decimal.Decimal `json:"stock_min"`
	StockMax          decimal.Decimal `json:"stock_max"`
	OrderSuggestedQty decimal.Decimal `json:"order_suggested_qty"`
}

// OrderResponse orden de reposición completa.
type OrderResponse struct {
	ID        string              `json:"id"`
	Status    string              `json:"status"`
	Notes     string              `json:"notes,omitempty"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	ClosedAt  *time.Time          `json:"closed_at,omitempty"`
}
