package repository

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// StockAggregateRepository define el puerto de lectura de la vista materializada
// product_stock. La vista la refresca el almacén externo (trigger/refresh); este
// puerto solo lee. Puede faltar o fallar: el agregador cae entonces a
// StockMovementRepository.SumByProduct.
type StockAggregateRepository interface {
	GetByProducts(ctx context.Context, companyID string, productIDs []string) (map[string]entity.StockAggregate, error)
}
