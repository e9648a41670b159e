package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	domaininv "github.com/jhoicas/kardex-api/internal/domain/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// Resolver implementa la política de resolución de ítems de inventario con una
// precedencia única y explícita:
//
//  1. producto del catálogo por nombre normalizado → ítem por (producto, bodega)
//  2. ítem existente por (nombre normalizado, bodega) — evita filas duplicadas
//     sin vínculo a catálogo
//  3. crear perezosamente un ítem nuevo (vinculado al producto si se encontró)
//
// No hay bodegas por defecto implícitas: la bodega siempre viene del documento
// origen.
type Resolver struct{}

// NewResolver construye la política de resolución.
func NewResolver() *Resolver { return &Resolver{} }

// ResolveInput describe el ítem buscado.
type ResolveInput struct {
	Name         string
	Unit         string
	WarehouseID  string
	MinimumStock decimal.Decimal
}

// ResolveOrCreate aplica la precedencia documentada sobre los repositorios del
// caller (misma transacción cuando se invoca dentro de una cascada).
func (r *Resolver) ResolveOrCreate(
	itemRepo repository.InventoryItemRepository,
	productRepo repository.ProductRepository,
	in ResolveInput,
) (*entity.InventoryItem, error) {
	if strings.TrimSpace(in.Name) == "" || in.WarehouseID == "" {
		return nil, fmt.Errorf("%w: nombre y bodega requeridos para resolver ítem", domain.ErrInvalidInput)
	}
	nameKey := domaininv.NormalizeName(in.Name)

	// 1. Vínculo canónico: producto del catálogo + bodega.
	product, err := productRepo.GetByNameKey(nameKey)
	if err != nil {
		return nil, err
	}
	if product != nil {
		item, err := itemRepo.GetByProductAndWarehouse(product.ID, in.WarehouseID)
		if err != nil {
			return nil, err
		}
		if item != nil {
			return item, nil
		}
	}

	// 2. Ítem sin vínculo: mismo nombre en la misma bodega.
	item, err := itemRepo.GetByNameAndWarehouse(nameKey, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if item != nil {
		return item, nil
	}

	// 3. Creación perezosa con el primer movimiento.
	now := time.Now()
	item = &entity.InventoryItem{
		ID:           uuid.New().String(),
		WarehouseID:  in.WarehouseID,
		Name:         strings.TrimSpace(in.Name),
		Code:         newItemCode(),
		CurrentStock: decimal.Zero,
		MinimumStock: in.MinimumStock,
		Status:       entity.ItemStatusOutOfStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if product != nil {
		pid := product.ID
		item.ProductID = &pid
		if product.SKU != "" {
			item.Code = product.SKU
		}
	}
	if err := itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// newItemCode genera un código corto para ítems sin SKU de catálogo.
func newItemCode() string {
	return "ITM-" + strings.ToUpper(uuid.New().String()[:8])
}
