package inventory

import "github.com/shopspring/decimal"

// SuggestedOrderQty calcula la cantidad sugerida de pedido (servicio de dominio).
// Faltante = max(0, stockMax − disponible): se repone hasta el tope configurado.
func SuggestedOrderQty(stockMax, available decimal.Decimal) decimal.Decimal {
	missing := stockMax.Sub(available)
	if missing.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return missing
}
