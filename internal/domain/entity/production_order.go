package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionOutput es un producto terminado resultante de una orden de producción.
type ProductionOutput struct {
	ProductName string
	Quantity    decimal.Decimal
	Unit        string
}

// ProductionOrder registra una producción terminada que ingresa stock a una
// bodega. Sigue la misma cascada que las compras: entradas al crear,
// reversión al borrar, correlacionadas por OrderNumber.
type ProductionOrder struct {
	ID          string
	OrderNumber string
	WarehouseID string
	Outputs     []ProductionOutput
	Notes       string
	CreatedAt   time.Time
	CreatedBy   string
}
