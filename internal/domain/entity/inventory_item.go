package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ítem de inventario. Todos menos Discontinued se derivan
// del stock actual frente al mínimo; Discontinued se fija manualmente.
const (
	ItemStatusActive       = "Active"
	ItemStatusLowStock     = "LowStock"
	ItemStatusOutOfStock   = "OutOfStock"
	ItemStatusDiscontinued = "Discontinued"
)

// InventoryItem es el agregado de stock por (producto, bodega): una vista
// materializada del libro de movimientos. CurrentStock es caché derivada;
// la reconciliación siempre puede reconstruirla desde los movimientos.
// Se crea perezosamente con el primer movimiento y nunca se borra mientras
// existan movimientos históricos que lo referencien.
type InventoryItem struct {
	ID           string
	ProductID    *string // opcional: puede no estar vinculado al catálogo
	WarehouseID  string
	Name         string // denormalizado del catálogo o del documento origen
	Code         string
	CurrentStock decimal.Decimal
	MinimumStock decimal.Decimal
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DeriveStatus devuelve el estado que corresponde a un stock dado.
// Un estado Discontinued ya fijado se preserva: la reconciliación no lo pisa.
func DeriveStatus(current, minimum decimal.Decimal, currentStatus string) string {
	if currentStatus == ItemStatusDiscontinued {
		return ItemStatusDiscontinued
	}
	switch {
	case current.LessThanOrEqual(decimal.Zero):
		return ItemStatusOutOfStock
	case current.LessThanOrEqual(minimum):
		return ItemStatusLowStock
	default:
		return ItemStatusActive
	}
}

// ApplyStock fija el stock (clavado en cero como piso) y rederiva el estado.
// Devuelve true si la resta pedida hubiera dejado el stock negativo.
func (i *InventoryItem) ApplyStock(newStock decimal.Decimal, now time.Time) (clamped bool) {
	if newStock.LessThan(decimal.Zero) {
		newStock = decimal.Zero
		clamped = true
	}
	i.CurrentStock = newStock
	i.Status = DeriveStatus(i.CurrentStock, i.MinimumStock, i.Status)
	i.UpdatedAt = now
	return clamped
}
