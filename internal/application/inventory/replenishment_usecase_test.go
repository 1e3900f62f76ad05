package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

const (
	replCompanyID = "11111111-1111-1111-1111-111111111111"
	replUserID    = "22222222-2222-2222-2222-222222222222"
)

type replFixture struct {
	uc       *ReplenishmentUseCase
	orders   *fakeOrderRepo
	products *fakeProductRepo
}

func buildReplFixture(aggregates *fakeAggregateRepo, products ...*entity.Product) *replFixture {
	productRepo := newFakeProductRepo(products...)
	orderRepo := newFakeOrderRepo()
	movements := &fakeMovementRepo{}
	if aggregates == nil {
		aggregates = &fakeAggregateRepo{byProduct: map[string]entity.StockAggregate{}}
	}
	stock := NewStockUseCase(aggregates, movements, logger.Nop())
	tx := &fakeTxRunner{movements: movements, products: productRepo, orders: orderRepo}
	uc := NewReplenishmentUseCase(tx, productRepo, orderRepo, stock, logger.Nop())
	return &replFixture{uc: uc, orders: orderRepo, products: productRepo}
}

func producto(id, sku, name, min, max string) *entity.Product {
	return &entity.Product{
		ID:        id,
		CompanyID: replCompanyID,
		SKU:       sku,
		Name:      name,
		StockMin:  dec(min),
		StockMax:  dec(max),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Sugerencias
// ──────────────────────────────────────────────────────────────────────────────

// max 50, disponible 20 → sugerido 30; disponible >= max → no aparece.
func TestBuildSuggestions_FaltanteHastaElTope(t *testing.T) {
	aggregates := &fakeAggregateRepo{byProduct: map[string]entity.StockAggregate{
		"p1": {ProductID: "p1", Stock: dec("20"), Reserved: dec("0")},
		"p2": {ProductID: "p2", Stock: dec("80"), Reserved: dec("0")},
	}}
	fx := buildReplFixture(aggregates,
		producto("p1", "SKU-1", "Arandela", "10", "50"),
		producto("p2", "SKU-2", "Tuerca", "10", "50"),
	)

	list, err := fx.uc.BuildSuggestions(context.Background(), replCompanyID)
	require.NoError(t, err)
	require.Len(t, list, 1, "solo el producto por debajo del tope genera sugerencia")
	assert.Equal(t, "p1", list[0].ProductID)
	assert.True(t, list[0].OrderSuggestedQty.Equal(dec("30")), "sugerido = 50 − 20")
	assert.False(t, list[0].Degraded)
}

// Disponible negativo: el faltante crece por encima del tope (max − disponible).
func TestBuildSuggestions_DisponibleNegativo(t *testing.T) {
	aggregates := &fakeAggregateRepo{byProduct: map[string]entity.StockAggregate{
		"p1": {ProductID: "p1", Stock: dec("-10"), Reserved: dec("0")},
	}}
	fx := buildReplFixture(aggregates, producto("p1", "SKU-1", "Arandela", "5", "50"))

	list, err := fx.uc.BuildSuggestions(context.Background(), replCompanyID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].OrderSuggestedQty.Equal(dec("60")), "50 − (−10) = 60")
}

// Producto sin movimientos: disponible 0, sugerido = stock_max completo.
func TestBuildSuggestions_ProductoSinMovimientos(t *testing.T) {
	fx := buildReplFixture(nil, producto("p1", "SKU-1", "Arandela", "5", "40"))

	list, err := fx.uc.BuildSuggestions(context.Background(), replCompanyID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].OrderSuggestedQty.Equal(dec("40")))
}

// Las sugerencias llegan ordenadas por nombre.
func TestBuildSuggestions_OrdenPorNombre(t *testing.T) {
	fx := buildReplFixture(nil,
		producto("p1", "SKU-1", "Zuncho", "0", "10"),
		producto("p2", "SKU-2", "Abrazadera", "0", "10"),
		producto("p3", "SKU-3", "Martillo", "0", "10"),
	)

	list, err := fx.uc.BuildSuggestions(context.Background(), replCompanyID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Abrazadera", "Martillo", "Zuncho"},
		[]string{list[0].Name, list[1].Name, list[2].Name})
}

// Con la vista caída las sugerencias siguen saliendo, marcadas degradadas.
func TestBuildSuggestions_ViaDeRespaldoMarcaDegradado(t *testing.T) {
	aggregates := &fakeAggregateRepo{err: errors.New("vista caída")}
	fx := buildReplFixture(aggregates, producto("p1", "SKU-1", "Arandela", "5", "50"))

	list, err := fx.uc.BuildSuggestions(context.Background(), replCompanyID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Degraded)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida de la orden
// ──────────────────────────────────────────────────────────────────────────────

func lineaOrden(productID, code, name, qty string) dto.OrderItemRequest {
	return dto.OrderItemRequest{
		ProductID:         productID,
		Code:              code,
		Name:              name,
		Stock:             dec("0"),
		StockMin:          dec("5"),
		StockMax:          dec("50"),
		OrderSuggestedQty: dec(qty),
	}
}

func TestCreateOrder_NaceAbiertaConTraza(t *testing.T) {
	fx := buildReplFixture(nil)

	order, err := fx.uc.CreateOrder(context.Background(), replCompanyID, replUserID, dto.CreateOrderRequest{
		Notes: "pedido semanal",
		Items: []dto.OrderItemRequest{lineaOrden("p1", "SKU-1", "Arandela", "30")},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusAberto, order.Status)
	assert.Nil(t, order.ClosedAt)
	assert.Equal(t, replUserID, order.CreatedBy)
	require.Len(t, order.Items, 1)

	require.Len(t, fx.orders.logs, 1, "crear la orden agrega una fila CREATE a la traza")
	assert.Equal(t, "CREATE", fx.orders.logs[0].Event)
}

func TestCreateOrder_SinLineas_Invalida(t *testing.T) {
	fx := buildReplFixture(nil)
	_, err := fx.uc.CreateOrder(context.Background(), replCompanyID, replUserID, dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La traza caída no bloquea la creación: la orden queda persistida igual.
func TestCreateOrder_TrazaCaidaNoBloquea(t *testing.T) {
	fx := buildReplFixture(nil)
	fx.orders.logErr = errors.New("tabla de logs caída")

	order, err := fx.uc.CreateOrder(context.Background(), replCompanyID, replUserID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{lineaOrden("p1", "SKU-1", "Arandela", "30")},
	})
	require.NoError(t, err, "el fallo de auditoría se descarta")
	stored, err := fx.uc.GetOrder(context.Background(), replCompanyID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusAberto, stored.Status)
}

func crearOrden(t *testing.T, fx *replFixture) *entity.ReplenishmentOrder {
	t.Helper()
	order, err := fx.uc.CreateOrder(context.Background(), replCompanyID, replUserID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			lineaOrden("p1", "SKU-1", "Arandela", "30"),
			lineaOrden("p2", "SKU-2", "Tuerca", "12"),
		},
	})
	require.NoError(t, err)
	return order
}

func TestUpdateOrder_CerrarFijaClosedAt(t *testing.T) {
	fx := buildReplFixture(nil)
	order := crearOrden(t, fx)

	status := entity.OrderStatusFechado
	updated, err := fx.uc.UpdateOrder(context.Background(), replCompanyID, order.ID, dto.UpdateOrderRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusFechado, updated.Status)
	require.NotNil(t, updated.ClosedAt, "FECHADO debe fijar closed_at")

	// Reabrir es válido (transiciones permisivas) y limpia closed_at.
	reopen := entity.OrderStatusAberto
	updated, err = fx.uc.UpdateOrder(context.Background(), replCompanyID, order.ID, dto.UpdateOrderRequest{Status: &reopen})
	require.NoError(t, err)
	assert.Nil(t, updated.ClosedAt)
}

func TestUpdateOrder_SaltoDirectoPermitido(t *testing.T) {
	fx := buildReplFixture(nil)
	order := crearOrden(t, fx)

	// ABERTO → FECHADO sin pasar por EM_PROCESSO.
	status := entity.OrderStatusFechado
	_, err := fx.uc.UpdateOrder(context.Background(), replCompanyID, order.ID, dto.UpdateOrderRequest{Status: &status})
	assert.NoError(t, err)
}

func TestUpdateOrder_StatusDesconocido_Invalido(t *testing.T) {
	fx := buildReplFixture(nil)
	order := crearOrden(t, fx)

	status := "CANCELADO"
	_, err := fx.uc.UpdateOrder(context.Background(), replCompanyID, order.ID, dto.UpdateOrderRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La cantidad editada por el usuario es autoritativa: se guarda tal cual.
func TestUpdateOrder_EditaCantidadDeLinea(t *testing.T) {
	fx := buildReplFixture(nil)
	order := crearOrden(t, fx)

	updated, err := fx.uc.UpdateOrder(context.Background(), replCompanyID, order.ID, dto.UpdateOrderRequest{
		Items: []dto.OrderItemPatch{{ProductID: "p1", Qty: dec("99")}},
	})
	require.NoError(t, err)

	var found bool
	for _, it := range updated.Items {
		if it.ProductID == "p1" {
			found = true
			assert.True(t, it.OrderSuggestedQty.Equal(dec("99")))
		}
	}
	require.True(t, found)

	stored, err := fx.uc.GetOrder(context.Background(), replCompanyID, order.ID)
	require.NoError(t, err)
	for _, it := range stored.Items {
		if it.ProductID == "p1" {
			assert.True(t, it.OrderSuggestedQty.Equal(dec("99")), "la edición debe persistir")
		}
	}
}

// Cantidad negativa se rechaza antes de escribir nada.
func TestUpdateOrder_CantidadNegativa_Invalida(t *testing.T) {
	fx := buildReplFixture(nil)
	order := crearOrden(t, fx)

	notasNuevas := "no debería aplicarse"
	_, err := fx.uc.UpdateOrder(context.Background(), replCompanyID, order.ID, dto.UpdateOrderRequest{
		Notes: &notasNuevas,
		Items: []dto.OrderItemPatch{{ProductID: "p1", Qty: dec("-1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stored, err := fx.uc.GetOrder(context.Background(), replCompanyID, order.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Notes, "la validación falló antes de aplicar el patch")
}

// Si una línea del patch falla a mitad de camino, el rollback descarta también
// la cabecera y las líneas ya aplicadas: la orden queda exactamente como estaba.
func TestUpdateOrder_FalloDeLinea_RevierteTodoElPatch(t *testing.T) {
	fx := buildReplFixture(nil)
	order := crearOrden(t, fx)
	fx.orders.qtyErrFor = "p2" // la primera línea entra, la segunda falla

	status := entity.OrderStatusFechado
	_, err := fx.uc.UpdateOrder(context.Background(), replCompanyID, order.ID, dto.UpdateOrderRequest{
		Status: &status,
		Items: []dto.OrderItemPatch{
			{ProductID: "p1", Qty: dec("99")},
			{ProductID: "p2", Qty: dec("7")},
		},
	})
	require.Error(t, err)

	fx.orders.qtyErrFor = ""
	stored, err := fx.uc.GetOrder(context.Background(), replCompanyID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusAberto, stored.Status, "el status no debe haberse confirmado")
	assert.Nil(t, stored.ClosedAt)
	for _, it := range stored.Items {
		if it.ProductID == "p1" {
			assert.True(t, it.OrderSuggestedQty.Equal(dec("30")), "la línea ya aplicada debe revertirse")
		}
		if it.ProductID == "p2" {
			assert.True(t, it.OrderSuggestedQty.Equal(dec("12")))
		}
	}
	for _, logRow := range fx.orders.logs {
		assert.NotEqual(t, "UPDATE", logRow.Event, "sin traza UPDATE para un patch revertido")
	}
}

// La traza caída no bloquea la actualización primaria.
func TestUpdateOrder_TrazaCaidaNoBloquea(t *testing.T) {
	fx := buildReplFixture(nil)
	order := crearOrden(t, fx)
	fx.orders.logErr = errors.New("tabla de logs caída")

	status := entity.OrderStatusEmProcesso
	updated, err := fx.uc.UpdateOrder(context.Background(), replCompanyID, order.ID, dto.UpdateOrderRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusEmProcesso, updated.Status)

	stored, err := fx.uc.GetOrder(context.Background(), replCompanyID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusEmProcesso, stored.Status, "la mutación primaria quedó persistida")
}

func TestUpdateOrder_OrdenDeOtroTenant_NotFound(t *testing.T) {
	fx := buildReplFixture(nil)
	order := crearOrden(t, fx)

	status := entity.OrderStatusFechado
	_, err := fx.uc.UpdateOrder(context.Background(), "otro-tenant", order.ID, dto.UpdateOrderRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetOrder_Inexistente_NotFound(t *testing.T) {
	fx := buildReplFixture(nil)
	_, err := fx.uc.GetOrder(context.Background(), replCompanyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
