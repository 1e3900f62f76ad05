package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso de inventario. Simulan la semántica
// relevante de los repositorios Postgres: el ledger append-only, la vista de
// stock y las órdenes; el fakeTxRunner simula Commit/Rollback con snapshot.
// ──────────────────────────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	rows []*entity.StockMovement

	// failAfter > 0 hace fallar el Create número failAfter+1 (0-based). Sirve
	// para simular la caída a mitad de una pareja TRANSFER.
	failAfter int
	created   int
}

func (f *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if f.failAfter > 0 && f.created >= f.failAfter {
		return errors.New("db: fallo simulado de escritura")
	}
	f.created++
	cp := *m
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeMovementRepo) GetByID(_ context.Context, companyID, id string) (*entity.StockMovement, error) {
	for _, r := range f.rows {
		if r.CompanyID == companyID && r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeMovementRepo) ListByProduct(_ context.Context, companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, r := range f.rows {
		if r.CompanyID != companyID || r.ProductID != productID {
			continue
		}
		if from != nil && r.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && r.CreatedAt.After(*to) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeMovementRepo) ListByGroup(_ context.Context, companyID, movementGroup string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, r := range f.rows {
		if r.CompanyID == companyID && r.MovementGroup == movementGroup {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeMovementRepo) SumByProduct(_ context.Context, companyID string, productIDs []string) (map[string]decimal.Decimal, error) {
	wanted := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}
	sums := make(map[string]decimal.Decimal)
	for _, r := range f.rows {
		if r.CompanyID != companyID || !wanted[r.ProductID] {
			continue
		}
		sums[r.ProductID] = sums[r.ProductID].Add(r.SignedQty)
	}
	return sums, nil
}

type fakeAggregateRepo struct {
	byProduct map[string]entity.StockAggregate
	err       error
}

func (f *fakeAggregateRepo) GetByProducts(_ context.Context, _ string, productIDs []string) (map[string]entity.StockAggregate, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]entity.StockAggregate)
	for _, id := range productIDs {
		if agg, ok := f.byProduct[id]; ok {
			out[id] = agg
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) List(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) ListWithStockMax(_ context.Context, companyID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if p.CompanyID == companyID && p.StockMax.GreaterThan(decimal.Zero) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.ReplenishmentOrder
	logs   []*entity.ReplenishmentOrderLog

	// logErr hace fallar AppendLog: simula la traza de auditoría caída.
	logErr error

	// qtyErrFor hace fallar UpdateItemQty para ese producto: simula la caída
	// a mitad del patch de líneas.
	qtyErrFor string
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.ReplenishmentOrder)}
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, o *entity.ReplenishmentOrder) error {
	cp := *o
	cp.Items = append([]entity.ReplenishmentOrderItem(nil), o.Items...)
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) GetOrder(_ context.Context, companyID, orderID string) (*entity.ReplenishmentOrder, error) {
	o, ok := f.orders[orderID]
	if !ok || o.CompanyID != companyID {
		return nil, nil
	}
	cp := *o
	cp.Items = append([]entity.ReplenishmentOrderItem(nil), o.Items...)
	return &cp, nil
}

func (f *fakeOrderRepo) ListOrders(_ context.Context, companyID string, limit, offset int) ([]*entity.ReplenishmentOrder, error) {
	var out []*entity.ReplenishmentOrder
	for _, o := range f.orders {
		if o.CompanyID == companyID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateOrder(_ context.Context, o *entity.ReplenishmentOrder) error {
	stored, ok := f.orders[o.ID]
	if !ok {
		return errors.New("orden no existe")
	}
	stored.Status = o.Status
	stored.Notes = o.Notes
	stored.UpdatedAt = o.UpdatedAt
	stored.ClosedAt = o.ClosedAt
	return nil
}

func (f *fakeOrderRepo) UpdateItemQty(_ context.Context, orderID, productID string, qty decimal.Decimal) error {
	if f.qtyErrFor != "" && f.qtyErrFor == productID {
		return errors.New("db: fallo simulado de escritura de línea")
	}
	stored, ok := f.orders[orderID]
	if !ok {
		return errors.New("orden no existe")
	}
	for i := range stored.Items {
		if stored.Items[i].ProductID == productID {
			stored.Items[i].OrderSuggestedQty = qty
		}
	}
	return nil
}

func (f *fakeOrderRepo) AppendLog(_ context.Context, logRow *entity.ReplenishmentOrderLog) error {
	if f.logErr != nil {
		return f.logErr
	}
	f.logs = append(f.logs, logRow)
	return nil
}

// fakeTxRunner simula la transacción con snapshot del ledger y de las órdenes:
// si fn falla, restaura el estado previo (rollback); si no, lo deja (commit).
type fakeTxRunner struct {
	movements *fakeMovementRepo
	products  *fakeProductRepo
	orders    *fakeOrderRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repos TxRepos) error) error {
	movSnapshot := append([]*entity.StockMovement(nil), f.movements.rows...)
	created := f.movements.created
	orderSnapshot := make(map[string]*entity.ReplenishmentOrder, len(f.orders.orders))
	for id, o := range f.orders.orders {
		cp := *o
		cp.Items = append([]entity.ReplenishmentOrderItem(nil), o.Items...)
		orderSnapshot[id] = &cp
	}
	err := fn(TxRepos{Movements: f.movements, Products: f.products, Orders: f.orders})
	if err != nil {
		f.movements.rows = movSnapshot
		f.movements.created = created
		f.orders.orders = orderSnapshot
		return err
	}
	return nil
}
