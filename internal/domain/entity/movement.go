package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de movimiento en el libro de inventario.
const (
	DirectionIn  = "in"  // entrada
	DirectionOut = "out" // salida
)

// Motivos conocidos de movimiento. Reason es texto libre, pero estos valores
// tienen semántica propia en el motor (ver ReasonInitialStock).
const (
	ReasonInitialStock      = "Initial Stock" // siembra: resetea el saldo al replay
	ReasonPurchase          = "Purchase"
	ReasonProduction        = "Production"
	ReasonManualAdjustment  = "Manual Adjustment"
	ReasonSale              = "Sale"
	ReasonTransferOut       = "Transfer Out"
	ReasonTransferIn        = "Transfer In"
	ReasonTransferCancelled = "Transfer Cancelled"
)

// Movement es una entrada inmutable del libro de inventario (append-only).
// La única operación destructiva permitida es el borrado durante una
// reversión en cascada (ver ledger.Reverse).
type Movement struct {
	ID              string
	ItemID          string // ítem de inventario (agregado producto+bodega)
	WarehouseID     string
	Direction       string // in | out
	Quantity        decimal.Decimal // siempre > 0; la dirección da el signo
	Reason          string
	ReferenceNumber string // número de negocio de la transacción origen
	CreatedAt       time.Time
	CreatedBy       string // UserID
}

// IsInbound indica si el movimiento suma stock.
func (m *Movement) IsInbound() bool { return m.Direction == DirectionIn }
