package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// ReplenishmentHandler maneja la lista de reposición y el ciclo de vida de las
// órdenes (protegido).
type ReplenishmentHandler struct {
	uc       *inventory.ReplenishmentUseCase
	validate *validator.Validate
}

// NewReplenishmentHandler construye el handler.
func NewReplenishmentHandler(uc *inventory.ReplenishmentUseCase) *ReplenishmentHandler {
	return &ReplenishmentHandler{uc: uc, validate: validator.New()}
}

// GetSuggestions godoc
// @Summary      Sugerencias de reposición
// @Description  Productos con stock_max configurado cuyo disponible está por
//
//	debajo del tope; cantidad sugerida = max(0, stock_max − disponible).
//
// @Tags         replenishment
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment/suggestions [get]
func (h *ReplenishmentHandler) GetSuggestions(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	list, err := h.uc.BuildSuggestions(c.Context(), companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "suggestions": list})
}

// CreateOrder godoc
// @Summary      Crear orden de reposición
// @Tags         replenishment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Líneas de la orden (snapshot de sugerencias)"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment/orders [post]
func (h *ReplenishmentHandler) CreateOrder(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	order, err := h.uc.CreateOrder(c.Context(), companyID, userID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}

// ListOrders godoc
// @Summary      Listar órdenes de reposición
// @Tags         replenishment
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/inventory/replenishment/orders [get]
func (h *ReplenishmentHandler) ListOrders(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	orders, err := h.uc.ListOrders(c.Context(), companyID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return c.JSON(fiber.Map{"total": len(out), "orders": out})
}

// GetOrder godoc
// @Summary      Obtener orden de reposición
// @Tags         replenishment
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment/orders/{id} [get]
func (h *ReplenishmentHandler) GetOrder(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	order, err := h.findOrder(c, companyID)
	if order == nil {
		return err
	}
	return c.JSON(toOrderResponse(order))
}

// UpdateOrder godoc
// @Summary      Actualizar orden de reposición
// @Description  Patch parcial: status (ABERTO, EM_PROCESSO, FECHADO), notas y
//
//	cantidades de líneas. Las transiciones de estado son permisivas.
//
// @Tags         replenishment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment/orders/{id} [patch]
func (h *ReplenishmentHandler) UpdateOrder(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	orderID := c.Params("id")
	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	order, err := h.uc.UpdateOrder(c.Context(), companyID, orderID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toOrderResponse(order))
}

// ExportOrder godoc
// @Summary      Exportar orden a CSV
// @Description  CSV con separador punto y coma y cabecera
//
//	Codigo;Nome;Estoque;Min;Max;Sugerido. Exportar no cambia el estado.
//
// @Tags         replenishment
// @Security     Bearer
// @Produce      text/csv
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment/orders/{id}/export [get]
func (h *ReplenishmentHandler) ExportOrder(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	order, err := h.findOrder(c, companyID)
	if order == nil {
		return err
	}
	csvText, err := inventory.ExportOrderCSV(order)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reposicion-`+order.ID+`.csv"`)
	return c.SendString(csvText)
}

// findOrder resuelve el :id de la ruta y carga la orden con chequeo de tenant.
// Si la orden es nil la respuesta de error ya fue escrita; el caller solo
// propaga el error devuelto.
func (h *ReplenishmentHandler) findOrder(c *fiber.Ctx, companyID string) (*entity.ReplenishmentOrder, error) {
	orderID := c.Params("id")
	if orderID == "" {
		return nil, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	order, err := h.uc.GetOrder(c.Context(), companyID, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return nil, c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
		}
		return nil, c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return order, nil
}

func toOrderResponse(o *entity.ReplenishmentOrder) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:         it.ProductID,
			Code:              it.Code,
			Name:              it.Name,
			Stock:             it.Stock,
			StockMin:          it.StockMin,
			StockMax:          it.StockMax,
			OrderSuggestedQty: it.OrderSuggestedQty,
		})
	}
	return dto.OrderResponse{
		ID:        o.ID,
		Status:    o.Status,
		Notes:     o.Notes,
		Items:     items,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		ClosedAt:  o.ClosedAt,
	}
}
