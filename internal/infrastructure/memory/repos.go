package memory

import (
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// ─────────────────────────────────────────────
// Movimientos
// ─────────────────────────────────────────────

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movementByID[m.ID]; ok {
		return fmt.Errorf("create movement: %w", domain.ErrDuplicate)
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	r.s.movementByID[cp.ID] = &cp
	return nil
}

func (r *movementRepo) GetByID(id string) (*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.movementByID[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *movementRepo) ListByItem(itemID string) ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.ItemID == itemID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *movementRepo) ListByWarehouse(warehouseID string) ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.WarehouseID == warehouseID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *movementRepo) ListByItemPaged(itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var filtered []*entity.Movement
	for _, m := range r.s.movements {
		if m.ItemID != itemID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		cp := *m
		filtered = append(filtered, &cp)
	}
	// Más recientes primero, como la consulta del endpoint.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return paginate(filtered, limit, offset), nil
}

func (r *movementRepo) ListInboundByReference(referenceNumber string) ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.ReferenceNumber == referenceNumber && m.Direction == entity.DirectionIn {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *movementRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movementByID[id]; !ok {
		return nil
	}
	delete(r.s.movementByID, id)
	for i, m := range r.s.movements {
		if m.ID == id {
			r.s.movements = append(r.s.movements[:i], r.s.movements[i+1:]...)
			break
		}
	}
	return nil
}

// ─────────────────────────────────────────────
// Ítems de inventario
// ─────────────────────────────────────────────

type itemRepo struct{ s *Store }

func (r *itemRepo) Create(item *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.ID]; ok {
		return fmt.Errorf("create inventory item: %w", domain.ErrDuplicate)
	}
	cp := cloneItem(item)
	r.s.items[item.ID] = cp
	return nil
}

func (r *itemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	item, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return cloneItem(item), nil
}

// GetForUpdate en memoria no bloquea fila alguna; el candado global del
// Store ya serializa las escrituras.
func (r *itemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return r.GetByID(id)
}

func (r *itemRepo) GetByProductAndWarehouse(productID, warehouseID string) (*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, item := range r.s.items {
		if item.ProductID != nil && *item.ProductID == productID && item.WarehouseID == warehouseID {
			return cloneItem(item), nil
		}
	}
	return nil, nil
}

func (r *itemRepo) GetByNameAndWarehouse(nameKey, warehouseID string) (*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, item := range r.s.items {
		if item.WarehouseID == warehouseID && itemNameKey(item) == nameKey {
			return cloneItem(item), nil
		}
	}
	return nil, nil
}

func (r *itemRepo) Update(item *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.ID]; !ok {
		return fmt.Errorf("update inventory item: %w", domain.ErrNotFound)
	}
	r.s.items[item.ID] = cloneItem(item)
	return nil
}

func (r *itemRepo) ListAll() ([]*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.InventoryItem, 0, len(r.s.items))
	for _, item := range r.s.items {
		out = append(out, cloneItem(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *itemRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.InventoryItem
	for _, item := range r.s.items {
		if item.WarehouseID == warehouseID {
			out = append(out, cloneItem(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

// ─────────────────────────────────────────────
// Bodegas
// ─────────────────────────────────────────────

type warehouseRepo struct{ s *Store }

func (r *warehouseRepo) Create(w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warehouses[w.ID]; ok {
		return fmt.Errorf("create warehouse: %w", domain.ErrDuplicate)
	}
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *warehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *warehouseRepo) GetForUpdate(id string) (*entity.Warehouse, error) {
	return r.GetByID(id)
}

func (r *warehouseRepo) Update(w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warehouses[w.ID]; !ok {
		return fmt.Errorf("update warehouse: %w", domain.ErrNotFound)
	}
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *warehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Warehouse, 0, len(r.s.warehouses))
	for _, w := range r.s.warehouses {
		cp := *w
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

// ─────────────────────────────────────────────
// Productos (proyección del catálogo)
// ─────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r *productRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return fmt.Errorf("create product: %w", domain.ErrDuplicate)
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) GetByNameKey(nameKey string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if productNameKey(p) == nameKey {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

// ─────────────────────────────────────────────
// Compras
// ─────────────────────────────────────────────

type purchaseRepo struct{ s *Store }

func (r *purchaseRepo) Create(p *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.purchases[p.ID]; ok {
		return fmt.Errorf("create purchase: %w", domain.ErrDuplicate)
	}
	r.s.purchases[p.ID] = clonePurchase(p)
	return nil
}

func (r *purchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	return clonePurchase(p), nil
}

func (r *purchaseRepo) GetByNumber(purchaseNumber string) (*entity.Purchase, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.purchases {
		if p.PurchaseNumber == purchaseNumber {
			return clonePurchase(p), nil
		}
	}
	return nil, nil
}

func (r *purchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Purchase, 0, len(r.s.purchases))
	for _, p := range r.s.purchases {
		out = append(out, clonePurchase(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *purchaseRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.purchases, id)
	return nil
}

func (r *purchaseRepo) NextSequence() (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.purchaseSeq++
	return r.s.purchaseSeq, nil
}

// ─────────────────────────────────────────────
// Órdenes de producción
// ─────────────────────────────────────────────

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(o *entity.ProductionOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[o.ID]; ok {
		return fmt.Errorf("create production order: %w", domain.ErrDuplicate)
	}
	r.s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *orderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *orderRepo) GetByNumber(orderNumber string) (*entity.ProductionOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.orders {
		if o.OrderNumber == orderNumber {
			return cloneOrder(o), nil
		}
	}
	return nil, nil
}

func (r *orderRepo) List(limit, offset int) ([]*entity.ProductionOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.ProductionOrder, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *orderRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.orders, id)
	return nil
}

func (r *orderRepo) NextSequence() (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orderSeq++
	return r.s.orderSeq, nil
}

// ─────────────────────────────────────────────
// Traslados
// ─────────────────────────────────────────────

type transferRepo struct{ s *Store }

func (r *transferRepo) Create(t *entity.StockTransfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transfers[t.ID]; ok {
		return fmt.Errorf("create stock transfer: %w", domain.ErrDuplicate)
	}
	r.s.transfers[t.ID] = cloneTransfer(t)
	return nil
}

func (r *transferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.transfers[id]
	if !ok {
		return nil, nil
	}
	return cloneTransfer(t), nil
}

func (r *transferRepo) GetForUpdate(id string) (*entity.StockTransfer, error) {
	return r.GetByID(id)
}

func (r *transferRepo) GetByNumber(transferNumber string) (*entity.StockTransfer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.transfers {
		if t.TransferNumber == transferNumber {
			return cloneTransfer(t), nil
		}
	}
	return nil, nil
}

func (r *transferRepo) Update(t *entity.StockTransfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transfers[t.ID]; !ok {
		return fmt.Errorf("update stock transfer: %w", domain.ErrNotFound)
	}
	r.s.transfers[t.ID] = cloneTransfer(t)
	return nil
}

func (r *transferRepo) List(status string, limit, offset int) ([]*entity.StockTransfer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.StockTransfer
	for _, t := range r.s.transfers {
		if status == "" || t.Status == status {
			out = append(out, cloneTransfer(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *transferRepo) NextSequence() (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transferSeq++
	return r.s.transferSeq, nil
}
