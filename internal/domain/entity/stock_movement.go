package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger de stock.
const (
	MovementTypeIN         = "IN"         // entrada de mercancía
	MovementTypeOUT        = "OUT"        // salida (venta, consumo)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste con delta firmado por el caller
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre ubicaciones (pareja de filas)
	MovementTypeRETURN     = "RETURN"     // devolución que reingresa a stock
	MovementTypeEXCHANGE   = "EXCHANGE"   // cambio: pieza consumida del stock
)

// StockMovement es una fila del ledger append-only de stock. Una vez creada es
// inmutable: nunca se actualiza ni se borra; las correcciones se hacen con una
// nueva fila ADJUSTMENT. SignedQty ya codifica la dirección (+ entra, − sale).
type StockMovement struct {
	ID            string
	CompanyID     string
	ProductID     string
	Type          string
	SignedQty     decimal.Decimal
	LocationFrom  string // obligatorio junto con LocationTo para TRANSFER
	LocationTo    string
	MovementGroup string // correlaciona la pareja TRANSFER o liga RETURN/EXCHANGE a su venta
	Reason        string
	RelatedSaleID string
	CreatedBy     string
	CreatedAt     time.Time
}

// AffectsOnHand indica si el tipo participa en el cálculo de stock disponible.
// Todos los tipos actuales participan porque el signo ya codifica la dirección.
func AffectsOnHand(movementType string) bool {
	switch movementType {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT,
		MovementTypeTRANSFER, MovementTypeRETURN, MovementTypeEXCHANGE:
		return true
	}
	return false
}
