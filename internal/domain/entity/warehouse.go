package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Warehouse representa una bodega o sucursal donde se almacena inventario (multi-bodega).
// CurrentUsage es un contador derivado de ocupación: sube con entradas, baja con
// salidas y reversiones, con piso en cero. Se puede re-sumar desde el libro.
type Warehouse struct {
	ID           string
	Name         string
	Address      string
	Capacity     decimal.Decimal
	CurrentUsage decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AdjustUsage aplica un delta (positivo o negativo) al contador de ocupación,
// con piso en cero. Devuelve true si hubo que clavar en cero.
func (w *Warehouse) AdjustUsage(delta decimal.Decimal, now time.Time) (clamped bool) {
	usage := w.CurrentUsage.Add(delta)
	if usage.LessThan(decimal.Zero) {
		usage = decimal.Zero
		clamped = true
	}
	w.CurrentUsage = usage
	w.UpdatedAt = now
	return clamped
}
