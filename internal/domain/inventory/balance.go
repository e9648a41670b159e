// Package inventory contiene la lógica pura del motor de inventario:
// replay del libro de movimientos y normalización de nombres para la
// política de resolución de ítems.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// Balance reproduce los movimientos de un ítem en orden de inserción y
// devuelve el saldo, con piso en cero.
//
// Regla asimétrica de siembra: un movimiento con Reason "Initial Stock"
// RESETEA el saldo acumulado a su propia cantidad en lugar de sumarla.
// Todos los demás movimientos suman (in) o restan (out) sobre el acumulado.
func Balance(movements []*entity.Movement) decimal.Decimal {
	balance := decimal.Zero
	for _, m := range movements {
		if m.Reason == entity.ReasonInitialStock {
			balance = m.Quantity
			continue
		}
		if m.Direction == entity.DirectionIn {
			balance = balance.Add(m.Quantity)
		} else {
			balance = balance.Sub(m.Quantity)
		}
	}
	if balance.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return balance
}

// WarehouseUsage suma la ocupación de una bodega desde sus movimientos:
// entradas suman, salidas restan, piso en cero. Mismo patrón de
// reconciliación que Balance, sin semántica de siembra (la ocupación
// física no se resetea).
func WarehouseUsage(movements []*entity.Movement) decimal.Decimal {
	usage := decimal.Zero
	for _, m := range movements {
		if m.Direction == entity.DirectionIn {
			usage = usage.Add(m.Quantity)
		} else {
			usage = usage.Sub(m.Quantity)
		}
	}
	if usage.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return usage
}
