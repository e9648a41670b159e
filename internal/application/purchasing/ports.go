package purchasing

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// CascadeTxRunner ejecuta la cascada compra/producción → libro → agregado
// dentro de una transacción, con todos los repositorios atados a esa tx.
type CascadeTxRunner interface {
	RunCascade(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
		warehouseRepo repository.WarehouseRepository,
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		orderRepo repository.ProductionOrderRepository,
	) error) error
}
