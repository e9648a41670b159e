package ledger

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando los
// repositorios del motor de inventario atados a esa tx. Garantiza que el
// movimiento, el agregado y el contador de ocupación se escriban como una
// sola unidad lógica de trabajo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
		warehouseRepo repository.WarehouseRepository,
	) error) error
}
