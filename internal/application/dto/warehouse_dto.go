package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name     string          `json:"name"`
	Address  string          `json:"address,omitempty"`
	Capacity decimal.Decimal `json:"capacity,omitempty"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
type UpdateWarehouseRequest struct {
	Name     *string          `json:"name,omitempty"`
	Address  *string          `json:"address,omitempty"`
	Capacity *decimal.Decimal `json:"capacity,omitempty"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Address      string          `json:"address,omitempty"`
	Capacity     decimal.Decimal `json:"capacity"`
	CurrentUsage decimal.Decimal `json:"current_usage"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
