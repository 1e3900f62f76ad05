package inventory

import (
	"encoding/csv"
	"strings"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// csvHeader cabecera del export de órdenes de reposición. El separador es
// punto y coma por convención del formato consumido por planillas en es/pt.
var csvHeader = []string{"Codigo", "Nome", "Estoque", "Min", "Max", "Sugerido"}

// ExportOrderCSV serializa las líneas de la orden a texto separado por punto y
// coma: cabecera + una fila por ítem. Función pura y determinista: la misma
// orden produce siempre bytes idénticos. Los campos libres (nombre) que
// contienen el separador quedan entre comillas según RFC 4180, así el conteo
// de filas del parseo coincide con el de ítems.
func ExportOrderCSV(order *entity.ReplenishmentOrder) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = ';'

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, item := range order.Items {
		record := []string{
			item.Code,
			item.Name,
			item.Stock.String(),
			item.StockMin.String(),
			item.StockMax.String(),
			item.OrderSuggestedQty.String(),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
