package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.StockAggregateRepository = (*StockAggregateRepo)(nil)

// StockAggregateRepo lee la vista materializada product_stock. Solo lectura:
// el refresh lo hace el almacén (trigger/REFRESH MATERIALIZED VIEW); si la
// vista no existe o falla, el error se devuelve y el agregador cae al ledger.
type StockAggregateRepo struct {
	q Querier
}

// NewStockAggregateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAggregateRepository(q Querier) *StockAggregateRepo {
	return &StockAggregateRepo{q: q}
}

// GetByProducts devuelve los agregados presentes en la vista para el lote de
// productos. Los productos sin fila simplemente no aparecen en el mapa.
func (r *StockAggregateRepo) GetByProducts(ctx context.Context, companyID string, productIDs []string) (map[string]entity.StockAggregate, error) {
	query := `
		SELECT product_id, COALESCE(stock, 0), COALESCE(reserved, 0), updated_at
		FROM product_stock
		WHERE company_id = $1 AND product_id = ANY($2)`
	rows, err := r.q.Query(ctx, query, companyID, productIDs)
	if err != nil {
		if isUndefinedRelation(err) {
			return nil, fmt.Errorf("vista product_stock inexistente: %w", err)
		}
		return nil, fmt.Errorf("get product stock: %w", err)
	}
	defer rows.Close()

	result := make(map[string]entity.StockAggregate, len(productIDs))
	for rows.Next() {
		var agg entity.StockAggregate
		if err := rows.Scan(&agg.ProductID, &agg.Stock, &agg.Reserved, &agg.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product stock: %w", err)
		}
		agg.Available = agg.Stock.Sub(agg.Reserved)
		result[agg.ProductID] = agg
	}
	return result, rows.Err()
}
