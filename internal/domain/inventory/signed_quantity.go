package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// ResolveSignedQty implementa la regla de asignación de signo (servicio de dominio).
// El caller siempre pasa magnitud positiva y el tipo determina el signo guardado:
//
//	IN, RETURN            → +magnitud
//	OUT, EXCHANGE         → −magnitud
//	ADJUSTMENT            → el caller pasa el delta firmado tal cual (asimetría intencional)
//	TRANSFER              → se resuelve por pata con TransferLegQty, no aquí
//
// Para ADJUSTMENT se acepta cualquier signo pero nunca cero.
func ResolveSignedQty(movementType string, qty decimal.Decimal) (decimal.Decimal, error) {
	switch movementType {
	case entity.MovementTypeIN, entity.MovementTypeRETURN:
		if !qty.GreaterThan(decimal.Zero) {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return qty, nil
	case entity.MovementTypeOUT, entity.MovementTypeEXCHANGE:
		if !qty.GreaterThan(decimal.Zero) {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return qty.Neg(), nil
	case entity.MovementTypeADJUSTMENT:
		if qty.IsZero() {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return qty, nil
	}
	return decimal.Zero, domain.ErrInvalidInput
}

// TransferLegQty devuelve las cantidades firmadas de las dos patas de un
// TRANSFER: −magnitud en origen, +magnitud en destino. La suma de ambas es
// siempre cero: un traslado no altera el stock total.
func TransferLegQty(qty decimal.Decimal) (origin, destination decimal.Decimal, err error) {
	if !qty.GreaterThan(decimal.Zero) {
		return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
	}
	return qty.Neg(), qty, nil
}
