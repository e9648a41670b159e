package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements (ajuste manual).
type RegisterMovementRequest struct {
	ItemID    string          `json:"item_id"`
	Direction string          `json:"direction"` // in | out
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason,omitempty"`
	Reference string          `json:"reference,omitempty"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID              string          `json:"id"`
	ItemID          string          `json:"item_id"`
	WarehouseID     string          `json:"warehouse_id"`
	Direction       string          `json:"direction"`
	Quantity        decimal.Decimal `json:"quantity"`
	Reason          string          `json:"reason"`
	ReferenceNumber string          `json:"reference_number"`
	CreatedAt       time.Time       `json:"created_at"`
	CreatedBy       string          `json:"created_by,omitempty"`
}

// InventoryItemResponse salida del agregado de stock por (producto, bodega).
type InventoryItemResponse struct {
	ID           string          `json:"id"`
	ProductID    *string         `json:"product_id,omitempty"`
	WarehouseID  string          `json:"warehouse_id"`
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	Status       string          `json:"status"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
