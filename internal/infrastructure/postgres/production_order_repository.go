package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

// ProductionOrderRepo implementación de ProductionOrderRepository sobre
// PostgreSQL. Los productos terminados se guardan como JSONB.
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador.
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

const productionOrderColumns = "id, order_number, warehouse_id, outputs, notes, created_at, created_by"

// Create persiste el encabezado de la orden con sus productos terminados.
func (r *ProductionOrderRepo) Create(order *entity.ProductionOrder) error {
	outputs, err := json.Marshal(order.Outputs)
	if err != nil {
		return fmt.Errorf("marshal production outputs: %w", err)
	}
	query := `
		INSERT INTO production_orders (id, order_number, warehouse_id, outputs, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.WarehouseID, outputs,
		order.Notes, order.CreatedAt, order.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create production order: %w", errDuplicate)
		}
		return fmt.Errorf("create production order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *ProductionOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders WHERE id = $1`
	return r.one(query, id)
}

// GetByNumber obtiene una orden por número de negocio.
func (r *ProductionOrderRepo) GetByNumber(orderNumber string) (*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders WHERE order_number = $1`
	return r.one(query, orderNumber)
}

// List lista órdenes con paginación.
func (r *ProductionOrderRepo) List(limit, offset int) ([]*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionOrder
	for rows.Next() {
		o, err := scanProductionOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Delete elimina el encabezado de la orden.
func (r *ProductionOrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM production_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete production order: %w", err)
	}
	return nil
}

// NextSequence devuelve el siguiente consecutivo para numerar órdenes.
func (r *ProductionOrderRepo) NextSequence() (int64, error) {
	var seq int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('production_order_number_seq')`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next production order sequence: %w", err)
	}
	return seq, nil
}

func (r *ProductionOrderRepo) one(query string, args ...any) (*entity.ProductionOrder, error) {
	o, err := scanProductionOrder(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	return o, nil
}

func scanProductionOrder(row pgx.Row) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	var outputs []byte
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.WarehouseID, &outputs,
		&o.Notes, &o.CreatedAt, &o.CreatedBy); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(outputs, &o.Outputs); err != nil {
		return nil, fmt.Errorf("unmarshal production outputs: %w", err)
	}
	return &o, nil
}
