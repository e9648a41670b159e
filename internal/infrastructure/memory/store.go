// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Se usa en pruebas de casos de uso y en el modo dry-run de la
// reconciliación; no implementa rollback: cada Run* ejecuta la función bajo
// el mismo candado global del almacén.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// Store es el almacén en memoria compartido por todos los repositorios.
// Los movimientos mantienen además el orden de inserción, que es el orden
// que exige el replay de saldos.
type Store struct {
	mu sync.RWMutex

	movements    []*entity.Movement // orden de inserción
	movementByID map[string]*entity.Movement

	items      map[string]*entity.InventoryItem
	warehouses map[string]*entity.Warehouse
	products   map[string]*entity.Product
	purchases  map[string]*entity.Purchase
	orders     map[string]*entity.ProductionOrder
	transfers  map[string]*entity.StockTransfer

	purchaseSeq int64
	orderSeq    int64
	transferSeq int64
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		movementByID: make(map[string]*entity.Movement),
		items:        make(map[string]*entity.InventoryItem),
		warehouses:   make(map[string]*entity.Warehouse),
		products:     make(map[string]*entity.Product),
		purchases:    make(map[string]*entity.Purchase),
		orders:       make(map[string]*entity.ProductionOrder),
		transfers:    make(map[string]*entity.StockTransfer),
	}
}

// MovementRepo devuelve el repositorio de movimientos sobre este almacén.
func (s *Store) MovementRepo() repository.MovementRepository { return &movementRepo{s: s} }

// ItemRepo devuelve el repositorio de ítems de inventario sobre este almacén.
func (s *Store) ItemRepo() repository.InventoryItemRepository { return &itemRepo{s: s} }

// WarehouseRepo devuelve el repositorio de bodegas sobre este almacén.
func (s *Store) WarehouseRepo() repository.WarehouseRepository { return &warehouseRepo{s: s} }

// ProductRepo devuelve el repositorio de productos sobre este almacén.
func (s *Store) ProductRepo() repository.ProductRepository { return &productRepo{s: s} }

// PurchaseRepo devuelve el repositorio de compras sobre este almacén.
func (s *Store) PurchaseRepo() repository.PurchaseRepository { return &purchaseRepo{s: s} }

// OrderRepo devuelve el repositorio de órdenes de producción sobre este almacén.
func (s *Store) OrderRepo() repository.ProductionOrderRepository { return &orderRepo{s: s} }

// TransferRepo devuelve el repositorio de traslados sobre este almacén.
func (s *Store) TransferRepo() repository.StockTransferRepository { return &transferRepo{s: s} }

// Run ejecuta fn con los repositorios del motor de inventario. Sin rollback.
func (s *Store) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	itemRepo repository.InventoryItemRepository,
	warehouseRepo repository.WarehouseRepository,
) error) error {
	return fn(s.MovementRepo(), s.ItemRepo(), s.WarehouseRepo())
}

// RunCascade ejecuta fn con los repositorios de la cascada compra/producción.
func (s *Store) RunCascade(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	itemRepo repository.InventoryItemRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	orderRepo repository.ProductionOrderRepository,
) error) error {
	return fn(s.MovementRepo(), s.ItemRepo(), s.WarehouseRepo(), s.ProductRepo(), s.PurchaseRepo(), s.OrderRepo())
}

// RunTransfer ejecuta fn con los repositorios del workflow de traslados.
func (s *Store) RunTransfer(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	itemRepo repository.InventoryItemRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	transferRepo repository.StockTransferRepository,
) error) error {
	return fn(s.MovementRepo(), s.ItemRepo(), s.WarehouseRepo(), s.ProductRepo(), s.TransferRepo())
}
