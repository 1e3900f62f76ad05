package repository

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para productos (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)

	// ListWithStockMax devuelve los productos de la empresa con umbral de
	// reposición configurado (stock_max > 0), ordenados por nombre.
	ListWithStockMax(ctx context.Context, companyID string) ([]*entity.Product, error)
}
