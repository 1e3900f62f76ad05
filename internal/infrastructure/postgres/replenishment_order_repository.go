package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.ReplenishmentOrderRepository = (*ReplenishmentOrderRepo)(nil)

// ReplenishmentOrderRepo persistencia de órdenes de reposición: cabecera en
// replenishment_orders, líneas en replenishment_order_items y traza en
// replenishment_order_logs (append-only).
type ReplenishmentOrderRepo struct {
	q Querier
}

// NewReplenishmentOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReplenishmentOrderRepository(q Querier) *ReplenishmentOrderRepo {
	return &ReplenishmentOrderRepo{q: q}
}

// CreateOrder persiste cabecera y líneas. Idealmente se llama dentro de una
// transacción (TxRunner) para que orden y líneas aparezcan juntas.
func (r *ReplenishmentOrderRepo) CreateOrder(ctx context.Context, order *entity.ReplenishmentOrder) error {
	query := `
		INSERT INTO replenishment_orders (id, company_id, status, notes, created_by, created_at, updated_at, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.CompanyID, order.Status, order.Notes,
		nullable(order.CreatedBy), order.CreatedAt, order.UpdatedAt, order.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("insert replenishment order: %w", err)
	}
	for i := range order.Items {
		if err := r.insertItem(ctx, order.ID, i, &order.Items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *ReplenishmentOrderRepo) insertItem(ctx context.Context, orderID string, position int, item *entity.ReplenishmentOrderItem) error {
	query := `
		INSERT INTO replenishment_order_items (id, order_id, position, product_id, code, name, stock, stock_min, stock_max, order_suggested_qty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		uuid.New().String(), orderID, position, item.ProductID, item.Code, item.Name,
		item.Stock, item.StockMin, item.StockMax, item.OrderSuggestedQty,
	)
	if err != nil {
		return fmt.Errorf("insert replenishment order item: %w", err)
	}
	return nil
}

// GetOrder obtiene cabecera + líneas (ordenadas por posición), limitado al tenant.
func (r *ReplenishmentOrderRepo) GetOrder(ctx context.Context, companyID, orderID string) (*entity.ReplenishmentOrder, error) {
	query := `
		SELECT id, company_id, status, notes, created_by, created_at, updated_at, closed_at
		FROM replenishment_orders WHERE company_id = $1 AND id = $2`
	var o entity.ReplenishmentOrder
	var createdBy *string
	err := r.q.QueryRow(ctx, query, companyID, orderID).Scan(
		&o.ID, &o.CompanyID, &o.Status, &o.Notes, &createdBy,
		&o.CreatedAt, &o.UpdatedAt, &o.ClosedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get replenishment order: %w", err)
	}
	o.CreatedBy = deref(createdBy)

	items, err := r.listItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *ReplenishmentOrderRepo) listItems(ctx context.Context, orderID string) ([]entity.ReplenishmentOrderItem, error) {
	query := `
		SELECT product_id, code, name, stock, stock_min, stock_max, order_suggested_qty
		FROM replenishment_order_items WHERE order_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []entity.ReplenishmentOrderItem
	for rows.Next() {
		var it entity.ReplenishmentOrderItem
		if err := rows.Scan(&it.ProductID, &it.Code, &it.Name, &it.Stock, &it.StockMin, &it.StockMax, &it.OrderSuggestedQty); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListOrders lista cabeceras del tenant, más recientes primero. Las líneas se
// cargan al pedir la orden individual.
func (r *ReplenishmentOrderRepo) ListOrders(ctx context.Context, companyID string, limit, offset int) ([]*entity.ReplenishmentOrder, error) {
	query := `
		SELECT id, company_id, status, notes, created_by, created_at, updated_at, closed_at
		FROM replenishment_orders WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list replenishment orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.ReplenishmentOrder
	for rows.Next() {
		var o entity.ReplenishmentOrder
		var createdBy *string
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.Status, &o.Notes, &createdBy,
			&o.CreatedAt, &o.UpdatedAt, &o.ClosedAt); err != nil {
			return nil, fmt.Errorf("scan replenishment order: %w", err)
		}
		o.CreatedBy = deref(createdBy)
		list = append(list, &o)
	}
	return list, rows.Err()
}

// UpdateOrder persiste la cabecera (status, notes, updated_at, closed_at).
func (r *ReplenishmentOrderRepo) UpdateOrder(ctx context.Context, order *entity.ReplenishmentOrder) error {
	query := `
		UPDATE replenishment_orders
		SET status = $3, notes = $4, updated_at = $5, closed_at = $6
		WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		order.CompanyID, order.ID, order.Status, order.Notes, order.UpdatedAt, order.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("update replenishment order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateItemQty fija la cantidad editada de una línea. El valor editado es
// autoritativo: nadie vuelve a calcularlo.
func (r *ReplenishmentOrderRepo) UpdateItemQty(ctx context.Context, orderID, productID string, qty decimal.Decimal) error {
	query := `
		UPDATE replenishment_order_items SET order_suggested_qty = $3
		WHERE order_id = $1 AND product_id = $2`
	cmd, err := r.q.Exec(ctx, query, orderID, productID, qty)
	if err != nil {
		return fmt.Errorf("update order item qty: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendLog agrega una fila a la traza de auditoría de la orden.
func (r *ReplenishmentOrderRepo) AppendLog(ctx context.Context, logRow *entity.ReplenishmentOrderLog) error {
	if logRow.ID == "" {
		logRow.ID = uuid.New().String()
	}
	query := `
		INSERT INTO replenishment_order_logs (id, order_id, event, data, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, logRow.ID, logRow.OrderID, logRow.Event, logRow.Data, logRow.CreatedAt)
	if err != nil {
		return fmt.Errorf("append order log: %w", err)
	}
	return nil
}
