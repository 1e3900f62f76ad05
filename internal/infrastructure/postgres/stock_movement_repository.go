package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// La tabla stock_movements es append-only: este adaptador no expone UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, company_id, product_id, type, signed_qty, location_from, location_to, movement_group, reason, related_sale_id, created_by, created_at`

// Create persiste una fila del ledger.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.CompanyID, movement.ProductID, movement.Type,
		movement.SignedQty, nullable(movement.LocationFrom), nullable(movement.LocationTo),
		nullable(movement.MovementGroup), nullable(movement.Reason),
		nullable(movement.RelatedSaleID), nullable(movement.CreatedBy), movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID, limitado al tenant.
func (r *StockMovementRepo) GetByID(ctx context.Context, companyID, id string) (*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE company_id = $1 AND id = $2`
	row := r.q.QueryRow(ctx, query, companyID, id)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListByProduct lista movimientos de un producto en un rango de fechas.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE company_id = $1 AND product_id = $2`
	args := []any{companyID, productID}
	pos := 3
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByGroup devuelve las filas que comparten un movement_group (la pareja de
// un TRANSFER, o las patas ligadas a una venta).
func (r *StockMovementRepo) ListByGroup(ctx context.Context, companyID, movementGroup string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE company_id = $1 AND movement_group = $2
		ORDER BY signed_qty ASC`
	rows, err := r.q.Query(ctx, query, companyID, movementGroup)
	if err != nil {
		return nil, fmt.Errorf("list movements by group: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// SumByProduct empuja la agregación al servidor: SUM(signed_qty) GROUP BY
// product_id sobre el ledger del tenant. COALESCE protege contra NUMERIC nulos
// heredados de cargas viejas: una fila malformada aporta cero, nunca tumba el
// lote completo.
func (r *StockMovementRepo) SumByProduct(ctx context.Context, companyID string, productIDs []string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT product_id, SUM(COALESCE(signed_qty, 0))
		FROM stock_movements
		WHERE company_id = $1 AND product_id = ANY($2)
		GROUP BY product_id`
	rows, err := r.q.Query(ctx, query, companyID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("sum movements by product: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal, len(productIDs))
	for rows.Next() {
		var productID string
		var sum decimal.Decimal
		if err := rows.Scan(&productID, &sum); err != nil {
			return nil, fmt.Errorf("scan movement sum: %w", err)
		}
		sums[productID] = sum
	}
	return sums, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var locationFrom, locationTo, group, reason, relatedSale, createdBy *string
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.ProductID, &m.Type, &m.SignedQty,
		&locationFrom, &locationTo, &group, &reason, &relatedSale, &createdBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.LocationFrom = deref(locationFrom)
	m.LocationTo = deref(locationTo)
	m.MovementGroup = deref(group)
	m.Reason = deref(reason)
	m.RelatedSaleID = deref(relatedSale)
	m.CreatedBy = deref(createdBy)
	return &m, nil
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
