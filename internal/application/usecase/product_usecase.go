package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock NO se edita aquí:
// se deriva del ledger de movimientos; aquí solo se configuran los umbrales.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto con sus umbrales de reposición.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetByCompanyAndSKU(ctx, companyID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.StockMin.LessThan(decimal.Zero) || in.StockMax.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.StockMax.GreaterThan(decimal.Zero) && in.StockMin.GreaterThan(in.StockMax) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		StockMin:    in.StockMin,
		StockMax:    in.StockMax,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del tenant.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre, descripción y umbrales de un producto.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, nil
	}
	if in.StockMin.LessThan(decimal.Zero) || in.StockMax.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product.Name = in.Name
	product.Description = in.Description
	product.StockMin = in.StockMin
	product.StockMax = in.StockMax
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos del tenant con paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		StockMin:    p.StockMin,
		StockMax:    p.StockMax,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
