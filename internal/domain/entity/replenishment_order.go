package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de reposición. Las transiciones son permisivas: el flujo
// esperado es ABERTO → EM_PROCESSO → FECHADO pero se admite cualquier salto
// (corrección manual siempre permitida).
const (
	OrderStatusAberto     = "ABERTO"
	OrderStatusEmProcesso = "EM_PROCESSO"
	OrderStatusFechado    = "FECHADO"
)

// ValidOrderStatus verifica pertenencia al conjunto de estados conocidos.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusAberto, OrderStatusEmProcesso, OrderStatusFechado:
		return true
	}
	return false
}

// ReplenishmentOrderItem es una línea de la orden: snapshot de stock y umbrales
// al momento de generarla, más la cantidad sugerida de pedido. Una vez que un
// humano edita OrderSuggestedQty, el valor guardado es autoritativo y no se
// recalcula.
type ReplenishmentOrderItem struct {
	ProductID         string
	Code              string
	Name              string
	Stock             decimal.Decimal // disponible al momento del snapshot
	StockMin          decimal.Decimal
	StockMax          decimal.Decimal
	OrderSuggestedQty decimal.Decimal
}

// ReplenishmentOrder es la lista de reposición generada y luego editable:
// líneas con cantidades sugeridas, estado con ciclo de vida y notas libres.
type ReplenishmentOrder struct {
	ID        string
	CompanyID string
	Status    string
	Notes     string
	Items     []ReplenishmentOrderItem
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
	ClosedAt  *time.Time // se fija al pasar a FECHADO
}

// ReplenishmentOrderLog es la traza de auditoría append-only de la orden:
// una fila por mutación con el evento y el snapshot serializado del patch.
type ReplenishmentOrderLog struct {
	ID        string
	OrderID   string
	Event     string // CREATE, UPDATE
	Data      json.RawMessage
	CreatedAt time.Time
}
