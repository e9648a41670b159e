// Package inventory contiene el servicio de reconciliación (reconstrucción de
// agregados desde el libro) y la política de resolución de ítems.
package inventory

import (
	"fmt"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	domaininv "github.com/jhoicas/kardex-api/internal/domain/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// ReconcileUseCase reconstruye agregados de stock desde el libro de
// movimientos. Es el respaldo de correctitud del motor: solo lee movimientos y
// sobrescribe la caché, así que es seguro ejecutarlo con escritores activos.
type ReconcileUseCase struct {
	movRepo       repository.MovementRepository
	itemRepo      repository.InventoryItemRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
}

// NewReconcileUseCase construye el servicio de reconciliación.
func NewReconcileUseCase(
	movRepo repository.MovementRepository,
	itemRepo repository.InventoryItemRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{movRepo: movRepo, itemRepo: itemRepo, warehouseRepo: warehouseRepo, log: log}
}

// RecalculateOne recalcula el stock de un ítem desde sus movimientos.
// Si el ítem no tiene movimientos, CurrentStock se deja intacto (siembra
// legacy desde el campo estático). El estado se rederiva del stock frente al
// mínimo, preservando un Discontinued fijado manualmente.
func (uc *ReconcileUseCase) RecalculateOne(itemID string) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem de inventario %s", domain.ErrNotFound, itemID)
	}

	movs, err := uc.movRepo.ListByItem(itemID)
	if err != nil {
		return nil, err
	}
	if len(movs) == 0 {
		return item, nil
	}

	before := item.CurrentStock
	item.CurrentStock = domaininv.Balance(movs)
	item.Status = entity.DeriveStatus(item.CurrentStock, item.MinimumStock, item.Status)
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	if !before.Equal(item.CurrentStock) {
		uc.log.Debug().
			Str("item_id", item.ID).
			Str("before", before.String()).
			Str("after", item.CurrentStock.String()).
			Msg("stock reconciliado desde el libro")
	}
	return item, nil
}

// ReconcileResult resume una reconciliación batch.
type ReconcileResult struct {
	Total      int      `json:"total"`
	Updated    int      `json:"updated"`
	Errors     int      `json:"errors"`
	ErrorsList []string `json:"errors_list,omitempty"`
}

// RecalculateAll recorre todos los agregados en orden estrictamente secuencial
// (memoria acotada, fallas aisladas por ítem). Los errores individuales se
// acumulan y nunca abortan el batch. Es idempotente y re-entrante.
func (uc *ReconcileUseCase) RecalculateAll() (*ReconcileResult, error) {
	items, err := uc.itemRepo.ListAll()
	if err != nil {
		return nil, err
	}
	res := &ReconcileResult{Total: len(items)}
	fallas := &domain.PartialFailure{Op: "reconciliación batch"}
	for _, item := range items {
		if _, err := uc.RecalculateOne(item.ID); err != nil {
			fallas.Errors = append(fallas.Errors, fmt.Errorf("ítem %s (%s): %w", item.ID, item.Name, err))
			uc.log.Error().Err(err).Str("item_id", item.ID).Msg("falla reconciliando ítem")
			continue
		}
		res.Updated++
	}
	if !fallas.Empty() {
		res.Errors = len(fallas.Errors)
		res.ErrorsList = fallas.Messages()
	}
	return res, nil
}

// RecalculateWarehouseUsage re-suma el contador de ocupación de una bodega
// desde el libro, con el mismo patrón de reconciliación que los agregados.
func (uc *ReconcileUseCase) RecalculateWarehouseUsage(warehouseID string) (*entity.Warehouse, error) {
	wh, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, warehouseID)
	}
	movs, err := uc.movRepo.ListByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	wh.CurrentUsage = domaininv.WarehouseUsage(movs)
	if err := uc.warehouseRepo.Update(wh); err != nil {
		return nil, err
	}
	return wh, nil
}
