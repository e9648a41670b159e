package entity

import "time"

// Product es la proyección local del catálogo de productos. El catálogo es un
// colaborador externo; aquí solo se usa para vincular ítems de inventario a un
// producto canónico por nombre (política de resolución).
type Product struct {
	ID        string
	Name      string
	SKU       string
	Unit      string // unidad de medida: und, kg, lt, ...
	CreatedAt time.Time
	UpdatedAt time.Time
}
