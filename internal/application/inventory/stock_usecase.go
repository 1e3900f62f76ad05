package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// StockUseCase resuelve el triple {stock, reserved, available} de un lote de
// productos. Vía preferida: la vista materializada product_stock. Vía de
// respaldo: SUM(signed_qty) GROUP BY product_id sobre el ledger crudo, con
// reserved = 0 (la información de reservas solo existe en la vista). Lectura
// pura, sin efectos; eventualmente consistente bajo escrituras concurrentes
// durante la vía de respaldo.
type StockUseCase struct {
	aggregateRepo repository.StockAggregateRepository
	movementRepo  repository.StockMovementRepository
	log           *logger.Logger
}

// NewStockUseCase construye el agregador de stock.
func NewStockUseCase(
	aggregateRepo repository.StockAggregateRepository,
	movementRepo repository.StockMovementRepository,
	log *logger.Logger,
) *StockUseCase {
	return &StockUseCase{aggregateRepo: aggregateRepo, movementRepo: movementRepo, log: log}
}

// GetStock devuelve el agregado por producto. El segundo retorno indica si se
// usó la vía de respaldo para al menos un producto (reserved aproximado a 0,
// precisión reducida para el caller que muestre disponible).
func (uc *StockUseCase) GetStock(ctx context.Context, companyID string, productIDs []string) (map[string]entity.StockAggregate, bool, error) {
	ids := dedupe(productIDs)
	result := make(map[string]entity.StockAggregate, len(ids))
	if len(ids) == 0 {
		return result, false, nil
	}

	missing := ids
	aggregates, err := uc.aggregateRepo.GetByProducts(ctx, companyID, ids)
	if err != nil {
		// La vista puede no existir o estar caída; el agregador no aborta.
		uc.log.Warn().Err(err).Int("products", len(ids)).
			Msg("vista product_stock no disponible, recalculando desde el ledger")
	} else {
		missing = make([]string, 0, len(ids))
		for _, id := range ids {
			agg, ok := aggregates[id]
			if !ok {
				missing = append(missing, id)
				continue
			}
			agg.Available = agg.Stock.Sub(agg.Reserved)
			result[id] = agg
		}
	}

	if len(missing) == 0 {
		return result, false, nil
	}

	sums, err := uc.movementRepo.SumByProduct(ctx, companyID, missing)
	if err != nil {
		return nil, false, fmt.Errorf("agregación de respaldo: %w", err)
	}
	for _, id := range missing {
		agg := entity.ZeroAggregate(id)
		if sum, ok := sums[id]; ok {
			agg.Stock = sum
			agg.Available = sum // reserved = 0 en la vía de respaldo
		}
		result[id] = agg
	}
	uc.log.Warn().Int("degraded_products", len(missing)).
		Msg("stock resuelto por la vía de respaldo (reserved=0)")
	return result, true, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
