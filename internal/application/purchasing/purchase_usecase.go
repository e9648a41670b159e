// Package purchasing implementa el procesador de cascada: traduce compras y
// órdenes de producción en movimientos del libro y actualizaciones del
// agregado, incluida la reversión al borrar.
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

// PurchaseUseCase procesa compras: cada línea genera un movimiento de entrada
// referenciado por el número de compra (dual-write: el libro es la fuente de
// verdad; el agregado, caché que la reconciliación puede reconstruir).
type PurchaseUseCase struct {
	txRunner      CascadeTxRunner
	ledger        *ledger.UseCase
	resolver      *appinv.Resolver
	purchaseRepo  repository.PurchaseRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner CascadeTxRunner,
	ledgerUC *ledger.UseCase,
	resolver *appinv.Resolver,
	purchaseRepo repository.PurchaseRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:      txRunner,
		ledger:        ledgerUC,
		resolver:      resolver,
		purchaseRepo:  purchaseRepo,
		warehouseRepo: warehouseRepo,
		log:           log,
	}
}

// Create valida la compra, persiste el encabezado y postea una entrada por
// línea. Las fallas por línea se acumulan en StockErrors y no bloquean el
// encabezado (falla parcial, no todo-o-nada).
func (uc *PurchaseUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.CreatePurchaseResult, error) {
	// Validación estructural: aborta antes de cualquier mutación.
	if in.WarehouseID == "" {
		return nil, fmt.Errorf("%w: warehouse_id requerido", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la compra requiere al menos una línea", domain.ErrInvalidInput)
	}
	for i, it := range in.Items {
		if strings.TrimSpace(it.ProductName) == "" {
			return nil, fmt.Errorf("%w: línea %d sin nombre de producto", domain.ErrInvalidInput, i+1)
		}
		if !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: línea %d con cantidad inválida", domain.ErrInvalidInput, i+1)
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
	purchase := &entity.Purchase{
		ID:          uuid.New().String(),
		Supplier:    in.Supplier,
		WarehouseID: in.WarehouseID,
		CreatedAt:   now,
		CreatedBy:   userID,
	}
	for _, it := range in.Items {
		purchase.Items = append(purchase.Items, entity.PurchaseItem{
			ProductName: strings.TrimSpace(it.ProductName),
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
		})
	}
	purchase.ComputeTotal()

	fallas := &domain.PartialFailure{Op: "cascada de compra"}
	err = uc.txRunner.RunCascade(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
		warehouseRepo repository.WarehouseRepository,
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.ProductionOrderRepository,
	) error {
		seq, err := purchaseRepo.NextSequence()
		if err != nil {
			return err
		}
		purchase.PurchaseNumber = fmt.Sprintf("PUR-%05d", seq)
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		for _, line := range purchase.Items {
			if err := uc.postLine(movRepo, itemRepo, warehouseRepo, productRepo, purchase, line, userID); err != nil {
				fallas.Errors = append(fallas.Errors, fmt.Errorf("%s: %w", line.ProductName, err))
				uc.log.Warn().Err(err).
					Str("purchase", purchase.PurchaseNumber).
					Str("product", line.ProductName).
					Msg("falla posteando línea de compra; el encabezado se conserva")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &dto.CreatePurchaseResult{Purchase: toPurchaseResponse(purchase)}
	if !fallas.Empty() {
		res.StockErrors = fallas.Messages()
	}
	return res, nil
}

// postLine resuelve (o crea) el agregado de la línea y agrega la entrada al libro.
func (uc *PurchaseUseCase) postLine(
	movRepo repository.MovementRepository,
	itemRepo repository.InventoryItemRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	purchase *entity.Purchase,
	line entity.PurchaseItem,
	userID string,
) error {
	item, err := uc.resolver.ResolveOrCreate(itemRepo, productRepo, appinv.ResolveInput{
		Name:        line.ProductName,
		Unit:        line.Unit,
		WarehouseID: purchase.WarehouseID,
	})
	if err != nil {
		return err
	}
	_, err = uc.ledger.AppendInTx(movRepo, itemRepo, warehouseRepo, ledger.AppendInput{
		ItemID:          item.ID,
		Direction:       entity.DirectionIn,
		Quantity:        line.Quantity,
		Reason:          entity.ReasonPurchase,
		ReferenceNumber: purchase.PurchaseNumber,
		CreatedBy:       userID,
	})
	return err
}

// Delete revierte en cascada todas las entradas de la compra (agregado y
// ocupación incluidos) y borra el encabezado al final, después de todos los
// intentos de reversión. Los errores de reversión se acumulan pero nunca
// bloquean el borrado.
func (uc *PurchaseUseCase) Delete(ctx context.Context, id string) (*dto.DeleteCascadeResult, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, fmt.Errorf("%w: compra %s", domain.ErrNotFound, id)
	}

	res := &dto.DeleteCascadeResult{}
	fallas := &domain.PartialFailure{Op: "reversión de compra"}
	err = uc.txRunner.RunCascade(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
		warehouseRepo repository.WarehouseRepository,
		_ repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.ProductionOrderRepository,
	) error {
		rev := uc.ledger.ReverseInTx(movRepo, itemRepo, warehouseRepo, purchase.PurchaseNumber)
		res.Reversed = rev.Reversed
		fallas.Errors = rev.Errors
		// El encabezado se borra de último, pase lo que pase con las reversiones.
		return purchaseRepo.Delete(purchase.ID)
	})
	if err != nil {
		return nil, err
	}
	if !fallas.Empty() {
		res.Errors = fallas.Messages()
		uc.log.Warn().Err(fallas).
			Str("purchase", purchase.PurchaseNumber).
			Msg("compra borrada con errores de reversión")
	}
	return res, nil
}

// GetByID devuelve una compra.
func (uc *PurchaseUseCase) GetByID(id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, fmt.Errorf("%w: compra %s", domain.ErrNotFound, id)
	}
	resp := toPurchaseResponse(purchase)
	return &resp, nil
}

// List lista compras con paginación.
func (uc *PurchaseUseCase) List(limit, offset int) ([]dto.PurchaseResponse, error) {
	list, err := uc.purchaseRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toPurchaseResponse(p))
	}
	return items, nil
}

func toPurchaseResponse(p *entity.Purchase) dto.PurchaseResponse {
	items := make([]dto.PurchaseItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, dto.PurchaseItemResponse{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
		})
	}
	return dto.PurchaseResponse{
		ID:             p.ID,
		PurchaseNumber: p.PurchaseNumber,
		Supplier:       p.Supplier,
		WarehouseID:    p.WarehouseID,
		Items:          items,
		TotalAmount:    p.TotalAmount,
		CreatedAt:      p.CreatedAt,
		CreatedBy:      p.CreatedBy,
	}
}
