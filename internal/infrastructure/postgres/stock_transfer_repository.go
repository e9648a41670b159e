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

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

// StockTransferRepo implementación de StockTransferRepository sobre
// PostgreSQL. Líneas, sellos de acción y discrepancias van como JSONB;
// el estado y los campos de consulta van en columnas propias.
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository construye el adaptador.
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

const stockTransferColumns = `id, transfer_number, from_warehouse_id, to_warehouse_id, items, status,
		approval, dispatch, receipt, discrepancies, total_value, actual_delivery_date,
		cancel_reason, created_at, created_by`

// Create persiste un traslado recién solicitado (estado Pending).
func (r *StockTransferRepo) Create(transfer *entity.StockTransfer) error {
	doc, err := marshalTransferDocs(transfer)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO stock_transfers
			(id, transfer_number, from_warehouse_id, to_warehouse_id, items, status,
			 approval, dispatch, receipt, discrepancies, total_value, actual_delivery_date,
			 cancel_reason, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.q.Exec(context.Background(), query,
		transfer.ID, transfer.TransferNumber, transfer.FromWarehouseID, transfer.ToWarehouseID,
		doc.items, transfer.Status, doc.approval, doc.dispatch, doc.receipt, doc.discrepancies,
		transfer.TotalValue, transfer.ActualDeliveryDate, transfer.CancelReason,
		transfer.CreatedAt, transfer.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create stock transfer: %w", errDuplicate)
		}
		return fmt.Errorf("create stock transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID.
func (r *StockTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	query := `SELECT ` + stockTransferColumns + ` FROM stock_transfers WHERE id = $1`
	return r.one(query, id)
}

// GetForUpdate bloquea la fila del traslado durante la transición de estado.
// Solo tiene sentido dentro de una transacción.
func (r *StockTransferRepo) GetForUpdate(id string) (*entity.StockTransfer, error) {
	query := `SELECT ` + stockTransferColumns + ` FROM stock_transfers WHERE id = $1 FOR UPDATE`
	return r.one(query, id)
}

// GetByNumber obtiene un traslado por número de negocio.
func (r *StockTransferRepo) GetByNumber(transferNumber string) (*entity.StockTransfer, error) {
	query := `SELECT ` + stockTransferColumns + ` FROM stock_transfers WHERE transfer_number = $1`
	return r.one(query, transferNumber)
}

// Update persiste el traslado completo tras una transición.
func (r *StockTransferRepo) Update(transfer *entity.StockTransfer) error {
	doc, err := marshalTransferDocs(transfer)
	if err != nil {
		return err
	}
	query := `
		UPDATE stock_transfers SET
			items = $2, status = $3, approval = $4, dispatch = $5, receipt = $6,
			discrepancies = $7, total_value = $8, actual_delivery_date = $9, cancel_reason = $10
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		transfer.ID, doc.items, transfer.Status, doc.approval, doc.dispatch, doc.receipt,
		doc.discrepancies, transfer.TotalValue, transfer.ActualDeliveryDate, transfer.CancelReason,
	)
	if err != nil {
		return fmt.Errorf("update stock transfer: %w", err)
	}
	return nil
}

// List lista traslados, filtrando por estado cuando status no es vacío.
func (r *StockTransferRepo) List(status string, limit, offset int) ([]*entity.StockTransfer, error) {
	query := `SELECT ` + stockTransferColumns + ` FROM stock_transfers
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransfer
	for rows.Next() {
		t, err := scanStockTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// NextSequence devuelve el siguiente consecutivo para el número de traslado.
func (r *StockTransferRepo) NextSequence() (int64, error) {
	var seq int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('transfer_number_seq')`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next transfer sequence: %w", err)
	}
	return seq, nil
}

func (r *StockTransferRepo) one(query string, args ...any) (*entity.StockTransfer, error) {
	t, err := scanStockTransfer(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transfer: %w", err)
	}
	return t, nil
}

// transferDocs agrupa los campos JSONB ya serializados de un traslado.
type transferDocs struct {
	items         []byte
	approval      []byte
	dispatch      []byte
	receipt       []byte
	discrepancies []byte
}

func marshalTransferDocs(t *entity.StockTransfer) (*transferDocs, error) {
	var d transferDocs
	var err error
	if d.items, err = json.Marshal(t.Items); err != nil {
		return nil, fmt.Errorf("marshal transfer items: %w", err)
	}
	if d.approval, err = marshalNullable(t.Approval); err != nil {
		return nil, fmt.Errorf("marshal transfer approval: %w", err)
	}
	if d.dispatch, err = marshalNullable(t.Dispatch); err != nil {
		return nil, fmt.Errorf("marshal transfer dispatch: %w", err)
	}
	if d.receipt, err = marshalNullable(t.Receipt); err != nil {
		return nil, fmt.Errorf("marshal transfer receipt: %w", err)
	}
	if d.discrepancies, err = json.Marshal(t.Discrepancies); err != nil {
		return nil, fmt.Errorf("marshal transfer discrepancies: %w", err)
	}
	return &d, nil
}

// marshalNullable serializa un sello de acción opcional; nil se guarda como
// NULL en la columna JSONB.
func marshalNullable(stamp *entity.ActionStamp) ([]byte, error) {
	if stamp == nil {
		return nil, nil
	}
	return json.Marshal(stamp)
}

func scanStockTransfer(row pgx.Row) (*entity.StockTransfer, error) {
	var t entity.StockTransfer
	var items, approval, dispatch, receipt, discrepancies []byte
	if err := row.Scan(&t.ID, &t.TransferNumber, &t.FromWarehouseID, &t.ToWarehouseID,
		&items, &t.Status, &approval, &dispatch, &receipt, &discrepancies,
		&t.TotalValue, &t.ActualDeliveryDate, &t.CancelReason, &t.CreatedAt, &t.CreatedBy); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &t.Items); err != nil {
		return nil, fmt.Errorf("unmarshal transfer items: %w", err)
	}
	if err := json.Unmarshal(discrepancies, &t.Discrepancies); err != nil {
		return nil, fmt.Errorf("unmarshal transfer discrepancies: %w", err)
	}
	if err := unmarshalNullable(approval, &t.Approval); err != nil {
		return nil, fmt.Errorf("unmarshal transfer approval: %w", err)
	}
	if err := unmarshalNullable(dispatch, &t.Dispatch); err != nil {
		return nil, fmt.Errorf("unmarshal transfer dispatch: %w", err)
	}
	if err := unmarshalNullable(receipt, &t.Receipt); err != nil {
		return nil, fmt.Errorf("unmarshal transfer receipt: %w", err)
	}
	return &t, nil
}

func unmarshalNullable(raw []byte, dst **entity.ActionStamp) error {
	if len(raw) == 0 {
		*dst = nil
		return nil
	}
	var stamp entity.ActionStamp
	if err := json.Unmarshal(raw, &stamp); err != nil {
		return err
	}
	*dst = &stamp
	return nil
}
