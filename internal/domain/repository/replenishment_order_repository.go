package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// ReplenishmentOrderRepository define el puerto de persistencia de órdenes de
// reposición: cabecera + líneas, y la traza de auditoría append-only.
type ReplenishmentOrderRepository interface {
	CreateOrder(ctx context.Context, order *entity.ReplenishmentOrder) error
	GetOrder(ctx context.Context, companyID, orderID string) (*entity.ReplenishmentOrder, error)
	ListOrders(ctx context.Context, companyID string, limit, offset int) ([]*entity.ReplenishmentOrder, error)

	// UpdateOrder persiste cabecera (status, notes, updated_at, closed_at).
	UpdateOrder(ctx context.Context, order *entity.ReplenishmentOrder) error
	// UpdateItemQty fija la cantidad editada por el usuario en una línea;
	// el valor editado es autoritativo y no vuelve a calcularse.
	UpdateItemQty(ctx context.Context, orderID, productID string, qty decimal.Decimal) error

	// AppendLog agrega una fila de auditoría. El caller decide la política de
	// error (en el planner es best-effort y nunca bloquea la mutación primaria).
	AppendLog(ctx context.Context, log *entity.ReplenishmentOrderLog) error
}
