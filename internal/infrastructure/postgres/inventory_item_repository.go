package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	domaininv "github.com/jhoicas/kardex-api/internal/domain/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación del agregado de stock sobre PostgreSQL
// (usable con pool o tx). name_key guarda el nombre normalizado para los
// lookups de la política de resolución.
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = "id, product_id, warehouse_id, name, code, current_stock, minimum_stock, status, created_at, updated_at"

// Create persiste un agregado nuevo.
func (r *InventoryItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, product_id, warehouse_id, name, name_key, code, current_stock, minimum_stock, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ProductID, item.WarehouseID, item.Name,
		domaininv.NormalizeName(item.Name), item.Code,
		item.CurrentStock, item.MinimumStock, item.Status,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un agregado por ID.
func (r *InventoryItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	return r.one(query, id)
}

// GetForUpdate obtiene el agregado y bloquea la fila (SELECT FOR UPDATE).
func (r *InventoryItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	return r.one(query, id)
}

// GetByProductAndWarehouse busca el agregado vinculado a un producto del catálogo.
func (r *InventoryItemRepo) GetByProductAndWarehouse(productID, warehouseID string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE product_id = $1 AND warehouse_id = $2`
	return r.one(query, productID, warehouseID)
}

// GetByNameAndWarehouse busca por nombre normalizado (ítems sin vínculo a catálogo).
func (r *InventoryItemRepo) GetByNameAndWarehouse(nameKey, warehouseID string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE name_key = $1 AND warehouse_id = $2`
	return r.one(query, nameKey, warehouseID)
}

// Update sobrescribe el agregado (stock, estado, mínimo y nombre).
func (r *InventoryItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET product_id = $2, name = $3, name_key = $4, code = $5,
		    current_stock = $6, minimum_stock = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ProductID, item.Name, domaininv.NormalizeName(item.Name), item.Code,
		item.CurrentStock, item.MinimumStock, item.Status, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// ListAll devuelve todos los agregados (recorrido de la reconciliación batch).
func (r *InventoryItemRepo) ListAll() ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items ORDER BY created_at ASC`
	return r.list(query)
}

// ListByWarehouse lista agregados de una bodega con paginación.
func (r *InventoryItemRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + `
		FROM inventory_items WHERE warehouse_id = $1 ORDER BY name ASC LIMIT $2 OFFSET $3`
	return r.list(query, warehouseID, limit, offset)
}

func (r *InventoryItemRepo) one(query string, args ...any) (*entity.InventoryItem, error) {
	i, err := scanItem(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return i, nil
}

func (r *InventoryItemRepo) list(query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	if err := row.Scan(&i.ID, &i.ProductID, &i.WarehouseID, &i.Name, &i.Code,
		&i.CurrentStock, &i.MinimumStock, &i.Status, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}
