package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del ledger de stock.
// El ledger es append-only: solo Create; nunca update ni delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, companyID, id string) (*entity.StockMovement, error)
	ListByProduct(ctx context.Context, companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByGroup(ctx context.Context, companyID, movementGroup string) ([]*entity.StockMovement, error)

	// SumByProduct calcula SUM(signed_qty) GROUP BY product_id del lado del
	// servidor para el conjunto de productos. Es la vía de respaldo del
	// agregador cuando la vista materializada no está disponible; empuja la
	// agregación a la base para no traer el ledger completo al cliente.
	SumByProduct(ctx context.Context, companyID string, productIDs []string) (map[string]decimal.Decimal, error)
}
