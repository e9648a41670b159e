package transfer

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// TransferTxRunner ejecuta una transición del workflow de traslados dentro de
// una transacción: el traslado, sus movimientos y los agregados afectados se
// escriben como una sola unidad lógica de trabajo.
type TransferTxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
		warehouseRepo repository.WarehouseRepository,
		productRepo repository.ProductRepository,
		transferRepo repository.StockTransferRepository,
	) error) error
}
