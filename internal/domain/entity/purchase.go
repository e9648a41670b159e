package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItem es una línea de compra: colección explícita y ordenada,
// sin campos dinámicos por tipo de producto.
type PurchaseItem struct {
	ProductName string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// Purchase es el encabezado de una compra. Al crearla, cada línea genera un
// movimiento de entrada referenciado por PurchaseNumber; al borrarla, esos
// movimientos se revierten en cascada antes de eliminar el encabezado.
type Purchase struct {
	ID             string
	PurchaseNumber string // número de negocio; correlaciona los movimientos
	Supplier       string
	WarehouseID    string
	Items          []PurchaseItem
	TotalAmount    decimal.Decimal
	CreatedAt      time.Time
	CreatedBy      string
}

// ComputeTotal recalcula TotalPrice por línea y TotalAmount del encabezado.
func (p *Purchase) ComputeTotal() {
	total := decimal.Zero
	for i := range p.Items {
		p.Items[i].TotalPrice = p.Items[i].Quantity.Mul(p.Items[i].UnitPrice)
		total = total.Add(p.Items[i].TotalPrice)
	}
	p.TotalAmount = total
}
