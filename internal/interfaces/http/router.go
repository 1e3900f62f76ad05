package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Estoque-api/internal/application/auth"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC        *usecase.CompanyUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	StockUC          *inventory.StockUseCase
	ReplenishmentUC  *inventory.ReplenishmentUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; escritura solo admin/bodeguero)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole("admin", "bodeguero"), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole("admin", "bodeguero"), productHandler.Update)

	// Inventory: ledger de movimientos + stock agregado (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.StockUC)
	invGroup.Post("/movements", RequireRole("admin", "bodeguero", "vendedor"), inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/stock", inventoryHandler.GetStock)

	// Replenishment: sugerencias y órdenes de reposición (protegido)
	replGroup := invGroup.Group("/replenishment")
	replHandler := NewReplenishmentHandler(deps.ReplenishmentUC)
	replGroup.Get("/suggestions", replHandler.GetSuggestions)
	replGroup.Post("/orders", RequireRole("admin", "bodeguero"), replHandler.CreateOrder)
	replGroup.Get("/orders", replHandler.ListOrders)
	replGroup.Get("/orders/:id", replHandler.GetOrder)
	replGroup.Patch("/orders/:id", RequireRole("admin", "bodeguero"), replHandler.UpdateOrder)
	replGroup.Get("/orders/:id/export", replHandler.ExportOrder)
}
