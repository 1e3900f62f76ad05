package inventory

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Estoque-api/internal/domain/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// ReplenishmentUseCase calcula sugerencias de pedido comparando el stock
// derivado del ledger contra los umbrales min/max configurados por producto, y
// administra el ciclo de vida de la orden de reposición resultante (estado,
// ediciones, traza de auditoría).
type ReplenishmentUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	orderRepo   repository.ReplenishmentOrderRepository
	stock       *StockUseCase
	log         *logger.Logger
}

// NewReplenishmentUseCase construye el planificador de reposición.
func NewReplenishmentUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	orderRepo repository.ReplenishmentOrderRepository,
	stock *StockUseCase,
	log *logger.Logger,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{txRunner: txRunner, productRepo: productRepo, orderRepo: orderRepo, stock: stock, log: log}
}

// BuildSuggestions devuelve una línea por producto con umbral configurado
// (stock_max > 0) cuyo disponible está por debajo del tope:
// faltante = max(0, stock_max − disponible). Solo se emiten faltantes > 0.
func (uc *ReplenishmentUseCase) BuildSuggestions(ctx context.Context, companyID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.productRepo.ListWithStockMax(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	aggregates, degraded, err := uc.stock.GetStock(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(products))
	for _, p := range products {
		agg, ok := aggregates[p.ID]
		if !ok {
			agg = entity.ZeroAggregate(p.ID)
		}
		missing := domaininv.SuggestedOrderQty(p.StockMax, agg.Available)
		if !missing.GreaterThan(decimal.Zero) {
			continue
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:         p.ID,
			Code:              p.SKU,
			Name:              p.Name,
			Stock:             agg.Available,
			StockMin:          p.StockMin,
			StockMax:          p.StockMax,
			OrderSuggestedQty: missing,
			Degraded:          degraded,
		})
	}

	// Orden estable por nombre para presentación.
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Name < suggestions[j].Name
	})
	return suggestions, nil
}

// CreateOrder persiste una nueva orden con status ABERTO, las líneas tal como
// llegan (el snapshot de sugerencias ya se tomó) y closed_at nulo. La fila de
// auditoría CREATE es best-effort.
func (uc *ReplenishmentUseCase) CreateOrder(ctx context.Context, companyID, userID string, in dto.CreateOrderRequest) (*entity.ReplenishmentOrder, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	order := &entity.ReplenishmentOrder{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Status:    entity.OrderStatusAberto,
		Notes:     in.Notes,
		Items:     make([]entity.ReplenishmentOrderItem, 0, len(in.Items)),
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, it := range in.Items {
		order.Items = append(order.Items, entity.ReplenishmentOrderItem{
			ProductID:         it.ProductID,
			Code:              it.Code,
			Name:              it.Name,
			Stock:             it.Stock,
			StockMin:          it.StockMin,
			StockMax:          it.StockMax,
			OrderSuggestedQty: it.OrderSuggestedQty,
		})
	}
	// Cabecera y líneas se confirman juntas.
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		return repos.Orders.CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.appendLog(ctx, order.ID, "CREATE", map[string]any{
		"status": order.Status,
		"items":  len(order.Items),
	})
	return order, nil
}

// GetOrder lee una orden del tenant.
func (uc *ReplenishmentUseCase) GetOrder(ctx context.Context, companyID, orderID string) (*entity.ReplenishmentOrder, error) {
	order, err := uc.orderRepo.GetOrder(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// ListOrders lista las órdenes del tenant, paginadas.
func (uc *ReplenishmentUseCase) ListOrders(ctx context.Context, companyID string, limit, offset int) ([]*entity.ReplenishmentOrder, error) {
	return uc.orderRepo.ListOrders(ctx, companyID, limit, offset)
}

// UpdateOrder aplica un patch parcial (status, notas, cantidades de líneas) y
// actualiza updated_at; al pasar a FECHADO fija closed_at. Las transiciones de
// status son permisivas: solo se valida pertenencia al conjunto conocido.
// Como efecto secundario agrega una fila UPDATE a la traza de auditoría; ese
// append es best-effort y su fallo jamás revierte ni bloquea la mutación
// primaria (ver logAuditFailure).
func (uc *ReplenishmentUseCase) UpdateOrder(ctx context.Context, companyID, orderID string, patch dto.UpdateOrderRequest) (*entity.ReplenishmentOrder, error) {
	order, err := uc.orderRepo.GetOrder(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	// Toda la validación ocurre antes de la primera escritura.
	for _, item := range patch.Items {
		if item.Qty.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	if patch.Status != nil {
		if !entity.ValidOrderStatus(*patch.Status) {
			return nil, domain.ErrInvalidInput
		}
		order.Status = *patch.Status
		if order.Status == entity.OrderStatusFechado {
			order.ClosedAt = &now
		} else {
			order.ClosedAt = nil
		}
	}
	if patch.Notes != nil {
		order.Notes = *patch.Notes
	}
	order.UpdatedAt = now

	// Cabecera y líneas se confirman juntas: un fallo a mitad del patch no
	// debe dejar la orden con el status nuevo y solo algunas cantidades.
	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		if err := repos.Orders.UpdateOrder(ctx, order); err != nil {
			return err
		}
		for _, item := range patch.Items {
			if err := repos.Orders.UpdateItemQty(ctx, order.ID, item.ProductID, item.Qty); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, item := range patch.Items {
		for i := range order.Items {
			if order.Items[i].ProductID == item.ProductID {
				order.Items[i].OrderSuggestedQty = item.Qty
			}
		}
	}

	// La traza queda fuera de la transacción: su fallo no revierte el patch.
	uc.appendLog(ctx, order.ID, "UPDATE", patch)
	return order, nil
}

// appendLog agrega la fila de auditoría y descarta el fallo de forma explícita:
// la traza es fire-and-forget por diseño, nunca bloquea la mutación primaria.
func (uc *ReplenishmentUseCase) appendLog(ctx context.Context, orderID, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		uc.logAuditFailure(orderID, event, err)
		return
	}
	logRow := &entity.ReplenishmentOrderLog{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		Event:     event,
		Data:      data,
		CreatedAt: time.Now(),
	}
	if err := uc.orderRepo.AppendLog(ctx, logRow); err != nil {
		uc.logAuditFailure(orderID, event, err)
	}
}

// logAuditFailure es el manejador nominal del descarte: deja constancia en el
// log estructurado y nada más.
func (uc *ReplenishmentUseCase) logAuditFailure(orderID, event string, err error) {
	uc.log.Warn().Err(err).
		Str("order_id", orderID).
		Str("event", event).
		Msg("fallo la traza de auditoría de la orden (descartado)")
}
