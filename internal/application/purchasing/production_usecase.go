package purchasing

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

// ProductionUseCase procesa órdenes de producción terminada con la misma
// cascada que las compras: entradas al crear, reversión al borrar.
type ProductionUseCase struct {
	txRunner      CascadeTxRunner
	ledger        *ledger.UseCase
	resolver      *appinv.Resolver
	orderRepo     repository.ProductionOrderRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(
	txRunner CascadeTxRunner,
	ledgerUC *ledger.UseCase,
	resolver *appinv.Resolver,
	orderRepo repository.ProductionOrderRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *ProductionUseCase {
	return &ProductionUseCase{
		txRunner:      txRunner,
		ledger:        ledgerUC,
		resolver:      resolver,
		orderRepo:     orderRepo,
		warehouseRepo: warehouseRepo,
		log:           log,
	}
}

// Create valida la orden, persiste el encabezado y postea una entrada por
// producto terminado. Fallas por línea se acumulan sin bloquear el encabezado.
func (uc *ProductionUseCase) Create(ctx context.Context, userID string, in dto.CreateProductionRequest) (*dto.CreateProductionResult, error) {
	if in.WarehouseID == "" {
		return nil, fmt.Errorf("%w: warehouse_id requerido", domain.ErrInvalidInput)
	}
	if len(in.Outputs) == 0 {
		return nil, fmt.Errorf("%w: la orden requiere al menos un producto terminado", domain.ErrInvalidInput)
	}
	for i, out := range in.Outputs {
		if strings.TrimSpace(out.ProductName) == "" {
			return nil, fmt.Errorf("%w: salida %d sin nombre de producto", domain.ErrInvalidInput, i+1)
		}
		if !out.Quantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: salida %d con cantidad inválida", domain.ErrInvalidInput, i+1)
		}
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, in.WarehouseID)
	}

	now := time.Now()
	order := &entity.ProductionOrder{
		ID:          uuid.New().String(),
		WarehouseID: in.WarehouseID,
		Notes:       in.Notes,
		CreatedAt:   now,
		CreatedBy:   userID,
	}
	for _, out := range in.Outputs {
		order.Outputs = append(order.Outputs, entity.ProductionOutput{
			ProductName: strings.TrimSpace(out.ProductName),
			Quantity:    out.Quantity,
			Unit:        out.Unit,
		})
	}

	fallas := &domain.PartialFailure{Op: "cascada de producción"}
	err = uc.txRunner.RunCascade(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
		warehouseRepo repository.WarehouseRepository,
		productRepo repository.ProductRepository,
		_ repository.PurchaseRepository,
		orderRepo repository.ProductionOrderRepository,
	) error {
		seq, err := orderRepo.NextSequence()
		if err != nil {
			return err
		}
		order.OrderNumber = fmt.Sprintf("PRO-%05d", seq)
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, out := range order.Outputs {
			item, err := uc.resolver.ResolveOrCreate(itemRepo, productRepo, appinv.ResolveInput{
				Name:        out.ProductName,
				Unit:        out.Unit,
				WarehouseID: order.WarehouseID,
			})
			if err == nil {
				_, err = uc.ledger.AppendInTx(movRepo, itemRepo, warehouseRepo, ledger.AppendInput{
					ItemID:          item.ID,
					Direction:       entity.DirectionIn,
					Quantity:        out.Quantity,
					Reason:          entity.ReasonProduction,
					ReferenceNumber: order.OrderNumber,
					CreatedBy:       userID,
				})
			}
			if err != nil {
				fallas.Errors = append(fallas.Errors, fmt.Errorf("%s: %w", out.ProductName, err))
				uc.log.Warn().Err(err).
					Str("order", order.OrderNumber).
					Str("product", out.ProductName).
					Msg("falla posteando salida de producción; el encabezado se conserva")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &dto.CreateProductionResult{Order: toProductionResponse(order)}
	if !fallas.Empty() {
		res.StockErrors = fallas.Messages()
	}
	return res, nil
}

// Delete revierte las entradas de la orden y borra el encabezado al final.
func (uc *ProductionUseCase) Delete(ctx context.Context, id string) (*dto.DeleteCascadeResult, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden de producción %s", domain.ErrNotFound, id)
	}

	res := &dto.DeleteCascadeResult{}
	fallas := &domain.PartialFailure{Op: "reversión de producción"}
	err = uc.txRunner.RunCascade(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
		warehouseRepo repository.WarehouseRepository,
		_ repository.ProductRepository,
		_ repository.PurchaseRepository,
		orderRepo repository.ProductionOrderRepository,
	) error {
		rev := uc.ledger.ReverseInTx(movRepo, itemRepo, warehouseRepo, order.OrderNumber)
		res.Reversed = rev.Reversed
		fallas.Errors = rev.Errors
		return orderRepo.Delete(order.ID)
	})
	if err != nil {
		return nil, err
	}
	if !fallas.Empty() {
		res.Errors = fallas.Messages()
		uc.log.Warn().Err(fallas).
			Str("order", order.OrderNumber).
			Msg("orden borrada con errores de reversión")
	}
	return res, nil
}

// GetByID devuelve una orden de producción.
func (uc *ProductionUseCase) GetByID(id string) (*dto.ProductionOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden de producción %s", domain.ErrNotFound, id)
	}
	resp := toProductionResponse(order)
	return &resp, nil
}

// List lista órdenes con paginación.
func (uc *ProductionUseCase) List(limit, offset int) ([]dto.ProductionOrderResponse, error) {
	list, err := uc.orderRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductionOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, toProductionResponse(o))
	}
	return items, nil
}

func toProductionResponse(o *entity.ProductionOrder) dto.ProductionOrderResponse {
	outputs := make([]dto.ProductionOutputRequest, 0, len(o.Outputs))
	for _, out := range o.Outputs {
		outputs = append(outputs, dto.ProductionOutputRequest{
			ProductName: out.ProductName,
			Quantity:    out.Quantity,
			Unit:        out.Unit,
		})
	}
	return dto.ProductionOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		WarehouseID: o.WarehouseID,
		Outputs:     outputs,
		Notes:       o.Notes,
		CreatedAt:   o.CreatedAt,
		CreatedBy:   o.CreatedBy,
	}
}
