// Package transfer implementa el workflow de traslados entre bodegas:
// Pending → Approved → In Transit → Delivered → Completed, con Cancelled
// alcanzable antes de completar y Rejected desde Pending.
//
// Los movimientos de salida se postean en el despacho (el stock sale
// físicamente de la bodega origen); los de entrada, al completar, usando la
// cantidad realmente recibida. Una cancelación posterior al despacho revierte
// las salidas ya posteadas con entradas compensatorias en la bodega origen.
package transfer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	appinv "github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/ledger"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// UseCase gobierna el ciclo de vida del traslado consumiendo el agregado de
// stock y el libro para validar disponibilidad antes de cada transición.
type UseCase struct {
	txRunner      TransferTxRunner
	ledger        *ledger.UseCase
	resolver      *appinv.Resolver
	itemRepo      repository.InventoryItemRepository
	warehouseRepo repository.WarehouseRepository
	transferRepo  repository.StockTransferRepository
	log           *logger.Logger
}

// NewUseCase construye el caso de uso de traslados.
func NewUseCase(
	txRunner TransferTxRunner,
	ledgerUC *ledger.UseCase,
	resolver *appinv.Resolver,
	itemRepo repository.InventoryItemRepository,
	warehouseRepo repository.WarehouseRepository,
	transferRepo repository.StockTransferRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		ledger:        ledgerUC,
		resolver:      resolver,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
		transferRepo:  transferRepo,
		log:           log,
	}
}

// Create valida y crea un traslado en estado Pending. El stock insuficiente es
// una precondición rechazada: nunca se crean traslados parciales. La
// disponibilidad se valida contra el recálculo en vivo del libro cuando el
// ítem tiene movimientos; si no, contra la caché del agregado.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.FromWarehouseID == "" || in.ToWarehouseID == "" {
		return nil, fmt.Errorf("%w: bodegas origen y destino requeridas", domain.ErrInvalidInput)
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, fmt.Errorf("%w: la bodega origen y destino no pueden ser la misma", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el traslado requiere al menos una línea", domain.ErrInvalidInput)
	}
	for _, whID := range []string{in.FromWarehouseID, in.ToWarehouseID} {
		wh, err := uc.warehouseRepo.GetByID(whID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, whID)
		}
	}

	transfer := &entity.StockTransfer{
		ID:              uuid.New().String(),
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Status:          entity.TransferStatusPending,
		CreatedAt:       time.Now(),
		CreatedBy:       userID,
	}
	for i, line := range in.Items {
		if !line.RequestedQuantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: línea %d con cantidad inválida", domain.ErrInvalidInput, i+1)
		}
		item, err := uc.itemRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("%w: ítem de inventario %s", domain.ErrNotFound, line.ItemID)
		}
		if item.WarehouseID != in.FromWarehouseID {
			return nil, fmt.Errorf("%w: el ítem %q no está en la bodega origen", domain.ErrInvalidInput, item.Name)
		}
		available, err := uc.ledger.Available(item)
		if err != nil {
			return nil, err
		}
		if line.RequestedQuantity.GreaterThan(available) {
			return nil, &domain.InsufficientStockError{
				ItemID:    item.ID,
				ItemName:  item.Name,
				Available: available,
				Requested: line.RequestedQuantity,
			}
		}
		transfer.Items = append(transfer.Items, entity.TransferItem{
			ItemID:            item.ID,
			ItemName:          item.Name,
			RequestedQuantity: line.RequestedQuantity,
			UnitPrice:         line.UnitPrice,
		})
	}
	transfer.ComputeTotalValue()

	err := uc.txRunner.RunTransfer(ctx, func(
		_ repository.MovementRepository,
		_ repository.InventoryItemRepository,
		_ repository.WarehouseRepository,
		_ repository.ProductRepository,
		transferRepo repository.StockTransferRepository,
	) error {
		seq, err := transferRepo.NextSequence()
		if err != nil {
			return err
		}
		transfer.TransferNumber = fmt.Sprintf("TR-%05d", seq)
		return transferRepo.Create(transfer)
	})
	if err != nil {
		return nil, err
	}
	resp := toTransferResponse(transfer)
	return &resp, nil
}

// Approve aprueba un traslado Pending y estampa aprobador y hora.
func (uc *UseCase) Approve(ctx context.Context, id, actor, notes string) (*dto.TransferResponse, error) {
	return uc.transition(ctx, id, entity.TransferActionApprove, func(
		_ repository.MovementRepository,
		_ repository.InventoryItemRepository,
		_ repository.WarehouseRepository,
		_ repository.ProductRepository,
		t *entity.StockTransfer,
	) error {
		t.Status = entity.TransferStatusApproved
		t.Approval = &entity.ActionStamp{Actor: actor, Timestamp: time.Now(), Notes: notes}
		return nil
	})
}

// Reject rechaza un traslado Pending (estado terminal).
func (uc *UseCase) Reject(ctx context.Context, id, actor, notes string) (*dto.TransferResponse, error) {
	return uc.transition(ctx, id, entity.TransferActionReject, func(
		_ repository.MovementRepository,
		_ repository.InventoryItemRepository,
		_ repository.WarehouseRepository,
		_ repository.ProductRepository,
		t *entity.StockTransfer,
	) error {
		t.Status = entity.TransferStatusRejected
		t.Approval = &entity.ActionStamp{Actor: actor, Timestamp: time.Now(), Notes: notes}
		return nil
	})
}

// Dispatch despacha un traslado Approved: estampa despachador y postea las
// salidas de la bodega origen (una por línea, con la cantidad solicitada).
func (uc *UseCase) Dispatch(ctx context.Context, id, actor, notes string) (*dto.TransferResponse, error) {
	return uc.transition(ctx, id, entity.TransferActionDispatch, func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
		warehouseRepo repository.WarehouseRepository,
		_ repository.ProductRepository,
		t *entity.StockTransfer,
	) error {
		for _, line := range t.Items {
			if _, err := uc.ledger.AppendInTx(movRepo, itemRepo, warehouseRepo, ledger.AppendInput{
				ItemID:          line.ItemID,
				Direction:       entity.DirectionOut,
				Quantity:        line.RequestedQuantity,
				Reason:          entity.ReasonTransferOut,
				ReferenceNumber: t.TransferNumber,
				CreatedBy:       actor,
			}); err != nil {
				return err
			}
		}
		t.Status = entity.TransferStatusInTransit
		t.Dispatch = &entity.ActionStamp{Actor: actor, Timestamp: time.Now(), Notes: notes}
		return nil
	})
}

// Receive registra la recepción de un traslado In Transit: fija la cantidad
// real por línea, registra una discrepancia por cada diferencia frente a lo
// solicitado y recalcula el valor total con las cantidades reales. Las
// discrepancias se registran, nunca rechazan: el workflow las reporta para
// reconciliación manual. Las líneas no reportadas se asumen recibidas completas.
func (uc *UseCase) Receive(ctx context.Context, id, actor string, in dto.ReceiveTransferRequest) (*dto.TransferResponse, error) {
	received := make(map[string]dto.ReceivedItemRequest, len(in.Items))
	for _, r := range in.Items {
		received[r.ItemID] = r
	}
	return uc.transition(ctx, id, entity.TransferActionReceive, func(
		_ repository.MovementRepository,
		_ repository.InventoryItemRepository,
		_ repository.WarehouseRepository,
		_ repository.ProductRepository,
		t *entity.StockTransfer,
	) error {
		known := make(map[string]bool, len(t.Items))
		for i := range t.Items {
			known[t.Items[i].ItemID] = true
		}
		for itemID := range received {
			if !known[itemID] {
				return fmt.Errorf("%w: el ítem %s no pertenece al traslado", domain.ErrInvalidInput, itemID)
			}
		}
		for i := range t.Items {
			line := &t.Items[i]
			line.ActualQuantity = line.RequestedQuantity
			reason := ""
			if r, ok := received[line.ItemID]; ok {
				if r.ActualQuantity.LessThan(decimal.Zero) {
					return fmt.Errorf("%w: cantidad recibida negativa para %q", domain.ErrInvalidInput, line.ItemName)
				}
				line.ActualQuantity = r.ActualQuantity
				reason = r.Reason
			}
			if !line.ActualQuantity.Equal(line.RequestedQuantity) {
				t.Discrepancies = append(t.Discrepancies, entity.Discrepancy{
					ItemID:     line.ItemID,
					ItemName:   line.ItemName,
					Expected:   line.RequestedQuantity,
					Received:   line.ActualQuantity,
					Difference: line.ActualQuantity.Sub(line.RequestedQuantity),
					Reason:     reason,
				})
			}
		}
		t.Status = entity.TransferStatusDelivered
		t.Receipt = &entity.ActionStamp{Actor: actor, Timestamp: time.Now(), Notes: in.Notes}
		t.ComputeTotalValue()
		return nil
	})
}

// Complete cierra un traslado Delivered: estampa la fecha real de entrega y
// postea las entradas en la bodega destino usando la cantidad REAL recibida
// (nunca la solicitada): el destino solo se acredita por lo que llegó.
func (uc *UseCase) Complete(ctx context.Context, id, actor string) (*dto.TransferResponse, error) {
	return uc.transition(ctx, id, entity.TransferActionComplete, func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
		warehouseRepo repository.WarehouseRepository,
		productRepo repository.ProductRepository,
		t *entity.StockTransfer,
	) error {
		for _, line := range t.Items {
			if !line.ActualQuantity.GreaterThan(decimal.Zero) {
				continue
			}
			destItem, err := uc.resolver.ResolveOrCreate(itemRepo, productRepo, appinv.ResolveInput{
				Name:        line.ItemName,
				WarehouseID: t.ToWarehouseID,
			})
			if err != nil {
				return err
			}
			if _, err := uc.ledger.AppendInTx(movRepo, itemRepo, warehouseRepo, ledger.AppendInput{
				ItemID:          destItem.ID,
				Direction:       entity.DirectionIn,
				Quantity:        line.ActualQuantity,
				Reason:          entity.ReasonTransferIn,
				ReferenceNumber: t.TransferNumber,
				CreatedBy:       actor,
			}); err != nil {
				return err
			}
		}
		now := time.Now()
		t.Status = entity.TransferStatusCompleted
		t.ActualDeliveryDate = &now
		return nil
	})
}

// Cancel cancela un traslado no terminal. El motivo es obligatorio. Si aún no
// se despachó no hay efecto en el libro; si ya estaba In Transit, las salidas
// posteadas en el despacho se revierten con entradas compensatorias en la
// bodega origen.
func (uc *UseCase) Cancel(ctx context.Context, id, actor, reason string) (*dto.TransferResponse, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: el motivo de cancelación es obligatorio", domain.ErrInvalidInput)
	}
	return uc.transition(ctx, id, entity.TransferActionCancel, func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
		warehouseRepo repository.WarehouseRepository,
		_ repository.ProductRepository,
		t *entity.StockTransfer,
	) error {
		if t.Status == entity.TransferStatusInTransit {
			for _, line := range t.Items {
				if _, err := uc.ledger.AppendInTx(movRepo, itemRepo, warehouseRepo, ledger.AppendInput{
					ItemID:          line.ItemID,
					Direction:       entity.DirectionIn,
					Quantity:        line.RequestedQuantity,
					Reason:          entity.ReasonTransferCancelled,
					ReferenceNumber: t.TransferNumber,
					CreatedBy:       actor,
				}); err != nil {
					return err
				}
			}
		}
		t.Status = entity.TransferStatusCancelled
		t.CancelReason = reason
		return nil
	})
}

// transition carga el traslado con bloqueo de fila, valida la acción contra el
// estado actual ANTES de cualquier mutación y aplica fn dentro de la misma
// transacción.
func (uc *UseCase) transition(
	ctx context.Context,
	id, action string,
	fn func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
		warehouseRepo repository.WarehouseRepository,
		productRepo repository.ProductRepository,
		t *entity.StockTransfer,
	) error,
) (*dto.TransferResponse, error) {
	var transfer *entity.StockTransfer
	err := uc.txRunner.RunTransfer(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
		warehouseRepo repository.WarehouseRepository,
		productRepo repository.ProductRepository,
		transferRepo repository.StockTransferRepository,
	) error {
		t, err := transferRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("%w: traslado %s", domain.ErrNotFound, id)
		}
		if !t.CanTransition(action) {
			return &domain.InvalidTransitionError{Current: t.Status, Action: action}
		}
		if err := fn(movRepo, itemRepo, warehouseRepo, productRepo, t); err != nil {
			return err
		}
		if err := transferRepo.Update(t); err != nil {
			return err
		}
		transfer = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("transfer", transfer.TransferNumber).
		Str("action", action).
		Str("status", transfer.Status).
		Msg("transición de traslado aplicada")
	resp := toTransferResponse(transfer)
	return &resp, nil
}

// GetByID devuelve un traslado.
func (uc *UseCase) GetByID(id string) (*dto.TransferResponse, error) {
	t, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: traslado %s", domain.ErrNotFound, id)
	}
	resp := toTransferResponse(t)
	return &resp, nil
}

// List lista traslados, opcionalmente filtrados por estado.
func (uc *UseCase) List(status string, limit, offset int) ([]dto.TransferResponse, error) {
	list, err := uc.transferRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, toTransferResponse(t))
	}
	return items, nil
}

func toTransferResponse(t *entity.StockTransfer) dto.TransferResponse {
	items := make([]dto.TransferItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, dto.TransferItemResponse{
			ItemID:            it.ItemID,
			ItemName:          it.ItemName,
			RequestedQuantity: it.RequestedQuantity,
			ActualQuantity:    it.ActualQuantity,
			UnitPrice:         it.UnitPrice,
		})
	}
	var discrepancies []dto.DiscrepancyResponse
	for _, d := range t.Discrepancies {
		discrepancies = append(discrepancies, dto.DiscrepancyResponse{
			ItemID:     d.ItemID,
			ItemName:   d.ItemName,
			Expected:   d.Expected,
			Received:   d.Received,
			Difference: d.Difference,
			Reason:     d.Reason,
		})
	}
	return dto.TransferResponse{
		ID:                 t.ID,
		TransferNumber:     t.TransferNumber,
		FromWarehouseID:    t.FromWarehouseID,
		ToWarehouseID:      t.ToWarehouseID,
		Items:              items,
		Status:             t.Status,
		Approval:           toStampResponse(t.Approval),
		Dispatch:           toStampResponse(t.Dispatch),
		Receipt:            toStampResponse(t.Receipt),
		Discrepancies:      discrepancies,
		TotalValue:         t.TotalValue,
		ActualDeliveryDate: t.ActualDeliveryDate,
		CancelReason:       t.CancelReason,
		CreatedAt:          t.CreatedAt,
		CreatedBy:          t.CreatedBy,
	}
}

func toStampResponse(s *entity.ActionStamp) *dto.ActionStampResponse {
	if s == nil {
		return nil
	}
	return &dto.ActionStampResponse{Actor: s.Actor, Timestamp: s.Timestamp, Notes: s.Notes}
}
