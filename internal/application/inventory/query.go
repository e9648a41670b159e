package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// QueryUseCase lecturas del inventario para la capa HTTP (solo consulta;
// nunca muta el estado del motor).
type QueryUseCase struct {
	movRepo  repository.MovementRepository
	itemRepo repository.InventoryItemRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(movRepo repository.MovementRepository, itemRepo repository.InventoryItemRepository) *QueryUseCase {
	return &QueryUseCase{movRepo: movRepo, itemRepo: itemRepo}
}

// GetItem devuelve un agregado por ID.
func (uc *QueryUseCase) GetItem(id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem de inventario %s", domain.ErrNotFound, id)
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// ListItems lista agregados de una bodega con paginación.
func (uc *QueryUseCase) ListItems(warehouseID string, limit, offset int) ([]dto.InventoryItemResponse, error) {
	list, err := uc.itemRepo.ListByWarehouse(warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, toItemResponse(it))
	}
	return items, nil
}

// ListMovements lista los movimientos de un ítem con rango de fechas y paginación.
func (uc *QueryUseCase) ListMovements(itemID string, from, to *time.Time, limit, offset int) ([]dto.MovementResponse, error) {
	list, err := uc.movRepo.ListByItemPaged(itemID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	movs := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		movs = append(movs, dto.MovementResponse{
			ID:              m.ID,
			ItemID:          m.ItemID,
			WarehouseID:     m.WarehouseID,
			Direction:       m.Direction,
			Quantity:        m.Quantity,
			Reason:          m.Reason,
			ReferenceNumber: m.ReferenceNumber,
			CreatedAt:       m.CreatedAt,
			CreatedBy:       m.CreatedBy,
		})
	}
	return movs, nil
}

func toItemResponse(i *entity.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:           i.ID,
		ProductID:    i.ProductID,
		WarehouseID:  i.WarehouseID,
		Name:         i.Name,
		Code:         i.Code,
		CurrentStock: i.CurrentStock,
		MinimumStock: i.MinimumStock,
		Status:       i.Status,
		UpdatedAt:    i.UpdatedAt,
	}
}
