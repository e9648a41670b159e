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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL
// (usable con pool o tx). Las líneas se guardan como JSONB.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = "id, purchase_number, supplier, warehouse_id, items, total_amount, created_at, created_by"

// Create persiste el encabezado de compra con sus líneas.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	items, err := json.Marshal(purchase.Items)
	if err != nil {
		return fmt.Errorf("marshal purchase items: %w", err)
	}
	query := `
		INSERT INTO purchases (id, purchase_number, supplier, warehouse_id, items, total_amount, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(context.Background(), query,
		purchase.ID, purchase.PurchaseNumber, purchase.Supplier, purchase.WarehouseID,
		items, purchase.TotalAmount, purchase.CreatedAt, purchase.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create purchase: %w", errDuplicate)
		}
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por ID.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`
	return r.one(query, id)
}

// GetByNumber obtiene una compra por número de negocio.
func (r *PurchaseRepo) GetByNumber(purchaseNumber string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE purchase_number = $1`
	return r.one(query, purchaseNumber)
}

// List lista compras con paginación.
func (r *PurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina el encabezado (las reversiones del libro van aparte, en la misma tx).
func (r *PurchaseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return nil
}

// NextSequence devuelve el siguiente consecutivo para numerar compras.
func (r *PurchaseRepo) NextSequence() (int64, error) {
	var seq int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('purchase_number_seq')`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next purchase sequence: %w", err)
	}
	return seq, nil
}

func (r *PurchaseRepo) one(query string, args ...any) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	var items []byte
	if err := row.Scan(&p.ID, &p.PurchaseNumber, &p.Supplier, &p.WarehouseID,
		&items, &p.TotalAmount, &p.CreatedAt, &p.CreatedBy); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &p.Items); err != nil {
		return nil, fmt.Errorf("unmarshal purchase items: %w", err)
	}
	return &p, nil
}
