package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/ledger"
	"github.com/jhoicas/kardex-api/internal/application/purchasing"
	"github.com/jhoicas/kardex-api/internal/application/transfer"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC     *ledger.UseCase
	QueryUC      *inventory.QueryUseCase
	ReconcileUC  *inventory.ReconcileUseCase
	PurchaseUC   *purchasing.PurchaseUseCase
	ProductionUC *purchasing.ProductionUseCase
	TransferUC   *transfer.UseCase
	WarehouseUC  *usecase.WarehouseUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Todo el dominio requiere Bearer Token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventario: libro, agregado y reconciliación
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.QueryUC, deps.ReconcileUC)
	invGroup.Post("/movements", RequireRole("bodeguero"), inventoryHandler.RegisterMovement)
	invGroup.Get("/items", inventoryHandler.ListItems)
	invGroup.Get("/items/:id", inventoryHandler.GetItem)
	invGroup.Get("/items/:id/movements", inventoryHandler.ListMovements)
	invGroup.Get("/items/:id/balance", inventoryHandler.GetBalance)
	invGroup.Post("/items/:id/recalculate", RequireRole(), inventoryHandler.RecalculateItem)
	invGroup.Post("/recalculate", RequireRole(), inventoryHandler.RecalculateAll)

	// Compras (cascada de entradas al libro)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", RequireRole("bodeguero"), purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Delete("/:id", RequireRole(), purchaseHandler.Delete)

	// Órdenes de producción
	production := protected.Group("/production-orders")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	production.Post("/", RequireRole("bodeguero"), productionHandler.Create)
	production.Get("/", productionHandler.List)
	production.Get("/:id", productionHandler.GetByID)
	production.Delete("/:id", RequireRole(), productionHandler.Delete)

	// Traslados entre bodegas (workflow)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", RequireRole("bodeguero"), transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/approve", RequireRole("aprobador"), transferHandler.Approve)
	transfers.Post("/:id/reject", RequireRole("aprobador"), transferHandler.Reject)
	transfers.Post("/:id/dispatch", RequireRole("bodeguero"), transferHandler.Dispatch)
	transfers.Post("/:id/receive", RequireRole("bodeguero"), transferHandler.Receive)
	transfers.Post("/:id/complete", RequireRole("bodeguero"), transferHandler.Complete)
	transfers.Post("/:id/cancel", RequireRole("aprobador", "bodeguero"), transferHandler.Cancel)

	// Bodegas
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.ReconcileUC)
	warehouses.Post("/", RequireRole(), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", RequireRole(), warehouseHandler.Update)
	warehouses.Post("/:id/recalculate-usage", RequireRole(), warehouseHandler.RecalculateUsage)
}
