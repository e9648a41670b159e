package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del traslado entre bodegas.
// Pending → Approved → In Transit → Delivered → Completed.
// Cancelled es alcanzable desde Pending/Approved/In Transit; Rejected solo desde Pending.
const (
	TransferStatusPending   = "Pending"
	TransferStatusApproved  = "Approved"
	TransferStatusInTransit = "In Transit"
	TransferStatusDelivered = "Delivered"
	TransferStatusCompleted = "Completed"
	TransferStatusCancelled = "Cancelled"
	TransferStatusRejected  = "Rejected"
)

// Acciones del workflow (para errores de transición y auditoría).
const (
	TransferActionApprove  = "approve"
	TransferActionReject   = "reject"
	TransferActionDispatch = "dispatch"
	TransferActionReceive  = "receive"
	TransferActionComplete = "complete"
	TransferActionCancel   = "cancel"
)

// transferTransitions define desde qué estados es válida cada acción.
var transferTransitions = map[string][]string{
	TransferActionApprove:  {TransferStatusPending},
	TransferActionReject:   {TransferStatusPending},
	TransferActionDispatch: {TransferStatusApproved},
	TransferActionReceive:  {TransferStatusInTransit},
	TransferActionComplete: {TransferStatusDelivered},
	TransferActionCancel:   {TransferStatusPending, TransferStatusApproved, TransferStatusInTransit},
}

// CanTransition indica si la acción es válida desde el estado actual.
func (t *StockTransfer) CanTransition(action string) bool {
	for _, s := range transferTransitions[action] {
		if t.Status == s {
			return true
		}
	}
	return false
}

// IsTerminal indica si el traslado ya no admite transiciones.
func (t *StockTransfer) IsTerminal() bool {
	switch t.Status {
	case TransferStatusCompleted, TransferStatusCancelled, TransferStatusRejected:
		return true
	}
	return false
}

// TransferItem es una línea del traslado. ActualQuantity queda en cero hasta
// la recepción; a partir de ahí es la cantidad que realmente llegó.
type TransferItem struct {
	ItemID            string
	ItemName          string
	RequestedQuantity decimal.Decimal
	ActualQuantity    decimal.Decimal
	UnitPrice         decimal.Decimal
}

// Discrepancy registra una diferencia entre lo solicitado y lo recibido en una
// línea. Se registra y se reporta; nunca bloquea el workflow.
type Discrepancy struct {
	ItemID   string
	ItemName string
	Expected decimal.Decimal
	Received decimal.Decimal
	// Difference = Received - Expected (negativo si llegó de menos).
	Difference decimal.Decimal
	Reason     string
}

// ActionStamp registra quién ejecutó una acción del workflow y cuándo.
type ActionStamp struct {
	Actor     string
	Timestamp time.Time
	Notes     string
}

// StockTransfer es una solicitud multi-ítem de traslado de stock entre dos
// bodegas, gobernada por el workflow aprobación/despacho/recepción.
type StockTransfer struct {
	ID                 string
	TransferNumber     string // único, secuencial con relleno de ceros
	FromWarehouseID    string
	ToWarehouseID      string
	Items              []TransferItem
	Status             string
	Approval           *ActionStamp
	Dispatch           *ActionStamp
	Receipt            *ActionStamp
	Discrepancies      []Discrepancy
	TotalValue         decimal.Decimal
	ActualDeliveryDate *time.Time
	CancelReason       string
	CreatedAt          time.Time
	CreatedBy          string
}

// ComputeTotalValue recalcula TotalValue. Antes de la recepción se valora con
// las cantidades solicitadas; después, solo con lo que realmente llegó.
func (t *StockTransfer) ComputeTotalValue() {
	total := decimal.Zero
	received := t.Receipt != nil
	for _, it := range t.Items {
		qty := it.RequestedQuantity
		if received {
			qty = it.ActualQuantity
		}
		total = total.Add(qty.Mul(it.UnitPrice))
	}
	t.TotalValue = total
}
