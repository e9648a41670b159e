package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// UseCase es el libro de inventario: agrega movimientos append-only y mantiene
// sincronizados el agregado de stock y el contador de ocupación de la bodega.
// El libro es la fuente de verdad; el agregado es caché de baja latencia que la
// reconciliación siempre puede reconstruir.
type UseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
	itemRepo repository.InventoryItemRepository
	log      *logger.Logger
}

// NewUseCase construye el caso de uso del libro.
func NewUseCase(txRunner TxRunner, movRepo repository.MovementRepository, itemRepo repository.InventoryItemRepository, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, movRepo: movRepo, itemRepo: itemRepo, log: log}
}

// AppendInput entrada para agregar un movimiento al libro.
type AppendInput struct {
	ItemID          string
	Direction       string // in | out
	Quantity        decimal.Decimal // > 0
	Reason          string
	ReferenceNumber string
	CreatedBy       string
}

// Append registra un movimiento en su propia transacción.
func (uc *UseCase) Append(ctx context.Context, input AppendInput) (*entity.Movement, error) {
	var mov *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
		warehouseRepo repository.WarehouseRepository,
	) error {
		var err error
		mov, err = uc.AppendInTx(movRepo, itemRepo, warehouseRepo, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// AppendInTx registra un movimiento usando los repositorios del caller (misma
// transacción). Valida, persiste la entrada del libro y actualiza de forma
// síncrona el agregado (+cantidad para in, -cantidad para out) y la ocupación
// de la bodega. Una resta que dejaría el saldo negativo se clava en cero y se
// reporta como advertencia, nunca como error.
func (uc *UseCase) AppendInTx(
	movRepo repository.MovementRepository,
	itemRepo repository.InventoryItemRepository,
	warehouseRepo repository.WarehouseRepository,
	input AppendInput,
) (*entity.Movement, error) {
	if input.Direction != entity.DirectionIn && input.Direction != entity.DirectionOut {
		return nil, fmt.Errorf("%w: dirección %q", domain.ErrInvalidInput, input.Direction)
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if input.ItemID == "" {
		return nil, fmt.Errorf("%w: item_id requerido", domain.ErrInvalidInput)
	}

	// Bloquea la fila del agregado (SELECT FOR UPDATE) antes del read-modify-write.
	item, err := itemRepo.GetForUpdate(input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem de inventario %s", domain.ErrNotFound, input.ItemID)
	}

	now := time.Now()
	mov := &entity.Movement{
		ID:              uuid.New().String(),
		ItemID:          item.ID,
		WarehouseID:     item.WarehouseID,
		Direction:       input.Direction,
		Quantity:        input.Quantity,
		Reason:          input.Reason,
		ReferenceNumber: input.ReferenceNumber,
		CreatedAt:       now,
		CreatedBy:       input.CreatedBy,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}

	delta := input.Quantity
	if input.Direction == entity.DirectionOut {
		delta = delta.Neg()
	}
	if clamped := item.ApplyStock(item.CurrentStock.Add(delta), now); clamped {
		uc.log.Warn().
			Str("item_id", item.ID).
			Str("reference", input.ReferenceNumber).
			Msg("la salida dejaría stock negativo; se clava en cero")
	}
	if err := itemRepo.Update(item); err != nil {
		return nil, err
	}

	if err := uc.adjustUsage(warehouseRepo, item.WarehouseID, delta, now); err != nil {
		return nil, err
	}
	return mov, nil
}

// adjustUsage actualiza el contador de ocupación de la bodega. Es un contador
// secundario derivado: si la bodega no existe se advierte y se continúa.
func (uc *UseCase) adjustUsage(warehouseRepo repository.WarehouseRepository, warehouseID string, delta decimal.Decimal, now time.Time) error {
	wh, err := warehouseRepo.GetForUpdate(warehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		uc.log.Warn().Str("warehouse_id", warehouseID).Msg("bodega no encontrada al ajustar ocupación")
		return nil
	}
	if clamped := wh.AdjustUsage(delta, now); clamped {
		uc.log.Warn().Str("warehouse_id", warehouseID).Msg("ocupación negativa; se clava en cero")
	}
	return warehouseRepo.Update(wh)
}

// ComputeBalance reproduce todos los movimientos del ítem en orden de
// inserción y devuelve el saldo (ver inventory.Balance para la semántica de
// siembra de "Initial Stock").
func (uc *UseCase) ComputeBalance(itemID string) (decimal.Decimal, error) {
	movs, err := uc.movRepo.ListByItem(itemID)
	if err != nil {
		return decimal.Zero, err
	}
	return inventory.Balance(movs), nil
}

// Available devuelve el saldo disponible de un ítem: si tiene movimientos se
// recalcula en vivo desde el libro; si no, se usa la caché del agregado
// (siembra legacy desde el campo estático).
func (uc *UseCase) Available(item *entity.InventoryItem) (decimal.Decimal, error) {
	movs, err := uc.movRepo.ListByItem(item.ID)
	if err != nil {
		return decimal.Zero, err
	}
	if len(movs) == 0 {
		return item.CurrentStock, nil
	}
	return inventory.Balance(movs), nil
}

// ReverseResult resume una reversión en cascada.
type ReverseResult struct {
	Reversed int
	Errors   []error
}

// Reverse ejecuta la reversión en su propia transacción.
func (uc *UseCase) Reverse(ctx context.Context, referenceNumber string) (ReverseResult, error) {
	var res ReverseResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
		warehouseRepo repository.WarehouseRepository,
	) error {
		res = uc.ReverseInTx(movRepo, itemRepo, warehouseRepo, referenceNumber)
		return nil
	})
	return res, err
}

// ReverseInTx localiza todos los movimientos de entrada con el número de
// referencia dado, resta cada cantidad del agregado (piso en cero, advirtiendo
// la discrepancia: significa que el stock ya se consumió aguas abajo), baja la
// ocupación de la bodega y borra las filas del libro. Es la única vía por la
// que se eliminan filas del libro, y la corrección del agregado ocurre en la
// misma transacción. Las fallas individuales se acumulan, nunca abortan.
func (uc *UseCase) ReverseInTx(
	movRepo repository.MovementRepository,
	itemRepo repository.InventoryItemRepository,
	warehouseRepo repository.WarehouseRepository,
	referenceNumber string,
) ReverseResult {
	res := ReverseResult{}
	movs, err := movRepo.ListInboundByReference(referenceNumber)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Errorf("buscar movimientos de %s: %w", referenceNumber, err))
		return res
	}
	now := time.Now()
	for _, m := range movs {
		if err := uc.reverseOne(movRepo, itemRepo, warehouseRepo, m, now); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("revertir movimiento %s: %w", m.ID, err))
			continue
		}
		res.Reversed++
	}
	return res
}

func (uc *UseCase) reverseOne(
	movRepo repository.MovementRepository,
	itemRepo repository.InventoryItemRepository,
	warehouseRepo repository.WarehouseRepository,
	m *entity.Movement,
	now time.Time,
) error {
	item, err := itemRepo.GetForUpdate(m.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("%w: ítem %s", domain.ErrNotFound, m.ItemID)
	}
	if clamped := item.ApplyStock(item.CurrentStock.Sub(m.Quantity), now); clamped {
		// El stock de la entrada revertida ya salió por otro movimiento.
		uc.log.Warn().
			Str("item_id", item.ID).
			Str("reference", m.ReferenceNumber).
			Str("quantity", m.Quantity.String()).
			Msg("discrepancia al revertir: stock ya consumido aguas abajo")
	}
	if err := itemRepo.Update(item); err != nil {
		return err
	}
	if err := uc.adjustUsage(warehouseRepo, m.WarehouseID, m.Quantity.Neg(), now); err != nil {
		return err
	}
	return movRepo.Delete(m.ID)
}
