package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferItemRequest línea para crear un traslado.
type TransferItemRequest struct {
	ItemID            string          `json:"item_id"`
	RequestedQuantity decimal.Decimal `json:"requested_quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	FromWarehouseID string                `json:"from_warehouse_id"`
	ToWarehouseID   string                `json:"to_warehouse_id"`
	Items           []TransferItemRequest `json:"items"`
}

// TransferActionRequest body para approve/reject/dispatch/cancel.
type TransferActionRequest struct {
	Notes string `json:"notes,omitempty"`
	// Reason es obligatorio para cancel.
	Reason string `json:"reason,omitempty"`
}

// ReceivedItemRequest cantidad realmente recibida por línea.
type ReceivedItemRequest struct {
	ItemID         string          `json:"item_id"`
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
	Reason         string          `json:"reason,omitempty"` // causa de la diferencia, si la hay
}

// ReceiveTransferRequest body para POST /api/transfers/:id/receive.
type ReceiveTransferRequest struct {
	Items []ReceivedItemRequest `json:"items"`
	Notes string                `json:"notes,omitempty"`
}

// TransferItemResponse línea de traslado.
type TransferItemResponse struct {
	ItemID            string          `json:"item_id"`
	ItemName          string          `json:"item_name"`
	RequestedQuantity decimal.Decimal `json:"requested_quantity"`
	ActualQuantity    decimal.Decimal `json:"actual_quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
}

// ActionStampResponse quién ejecutó una acción del workflow y cuándo.
type ActionStampResponse struct {
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

// DiscrepancyResponse diferencia registrada en la recepción.
type DiscrepancyResponse struct {
	ItemID     string          `json:"item_id"`
	ItemName   string          `json:"item_name"`
	Expected   decimal.Decimal `json:"expected"`
	Received   decimal.Decimal `json:"received"`
	Difference decimal.Decimal `json:"difference"`
	Reason     string          `json:"reason,omitempty"`
}

// TransferResponse traslado completo.
type TransferResponse struct {
	ID                 string                 `json:"id"`
	TransferNumber     string                 `json:"transfer_number"`
	FromWarehouseID    string                 `json:"from_warehouse_id"`
	ToWarehouseID      string                 `json:"to_warehouse_id"`
	Items              []TransferItemResponse `json:"items"`
	Status             string                 `json:"status"`
	Approval           *ActionStampResponse   `json:"approval,omitempty"`
	Dispatch           *ActionStampResponse   `json:"dispatch,omitempty"`
	Receipt            *ActionStampResponse   `json:"receipt,omitempty"`
	Discrepancies      []DiscrepancyResponse  `json:"discrepancies,omitempty"`
	TotalValue         decimal.Decimal        `json:"total_value"`
	ActualDeliveryDate *time.Time             `json:"actual_delivery_date,omitempty"`
	CancelReason       string                 `json:"cancel_reason,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	CreatedBy          string                 `json:"created_by,omitempty"`
}
