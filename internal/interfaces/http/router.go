package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hkxdv/pim-api/internal/application/inventory"
	"github.com/hkxdv/pim-api/internal/application/sales"
	"github.com/hkxdv/pim-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	ApplyMovement *inventory.ApplyMovementUseCase
	ListMovements *inventory.ListMovementsUseCase
	CreateSale    *sales.CreateSaleUseCase
	SaleQuery     *sales.GetSaleUseCase
	DashboardUC   *usecase.DashboardUseCase
	AssistantUC   *usecase.AssistantUseCase
	AssistantRL   *RateLimiter
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Stock movements
	movements := api.Group("/stock-movements")
	movementHandler := NewMovementHandler(deps.ApplyMovement, deps.ListMovements)
	movements.Post("/", movementHandler.Apply)
	movements.Get("/", movementHandler.List)

	// Sales
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleQuery)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)

	// Dashboard
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)

	// Assistant (limitado por IP: llama a un proveedor externo pago)
	assistant := api.Group("/assistant")
	if deps.AssistantRL != nil {
		assistant.Use(deps.AssistantRL.Middleware())
	}
	assistantHandler := NewAssistantHandler(deps.AssistantUC)
	assistant.Post("/ask", assistantHandler.Ask)
}
