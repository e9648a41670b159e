package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de compra: colección explícita y ordenada.
type PurchaseItemRequest struct {
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	Supplier    string                `json:"supplier"`
	WarehouseID string                `json:"warehouse_id"`
	Items       []PurchaseItemRequest `json:"items"`
}

// PurchaseItemResponse línea de compra en respuestas.
type PurchaseItemResponse struct {
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// PurchaseResponse encabezado de compra.
type PurchaseResponse struct {
	ID             string                 `json:"id"`
	PurchaseNumber string                 `json:"purchase_number"`
	Supplier       string                 `json:"supplier"`
	WarehouseID    string                 `json:"warehouse_id"`
	Items          []PurchaseItemResponse `json:"items"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	CreatedAt      time.Time              `json:"created_at"`
	CreatedBy      string                 `json:"created_by,omitempty"`
}

// CreatePurchaseResult respuesta de creación: el encabezado siempre se
// persiste; las líneas que fallaron al postear stock se enumeran para
// corrección manual (falla parcial, no todo-o-nada).
type CreatePurchaseResult struct {
	Purchase    PurchaseResponse `json:"purchase"`
	StockErrors []string         `json:"stock_errors,omitempty"`
}

// DeleteCascadeResult respuesta de borrado con reversión en cascada.
type DeleteCascadeResult struct {
	Reversed int      `json:"reversed"`
	Errors   []string `json:"errors,omitempty"`
}

// ProductionOutputRequest producto terminado de una orden de producción.
type ProductionOutputRequest struct {
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
}

// CreateProductionRequest body para POST /api/production-orders.
type CreateProductionRequest struct {
	WarehouseID string                    `json:"warehouse_id"`
	Outputs     []ProductionOutputRequest `json:"outputs"`
	Notes       string                    `json:"notes,omitempty"`
}

// ProductionOrderResponse encabezado de orden de producción.
type ProductionOrderResponse struct {
	ID          string                    `json:"id"`
	OrderNumber string                    `json:"order_number"`
	WarehouseID string                    `json:"warehouse_id"`
	Outputs     []ProductionOutputRequest `json:"outputs"`
	Notes       string                    `json:"notes,omitempty"`
	CreatedAt   time.Time                 `json:"created_at"`
	CreatedBy   string                    `json:"created_by,omitempty"`
}

// CreateProductionResult respuesta de creación de producción (falla parcial).
type CreateProductionResult struct {
	Order       ProductionOrderResponse `json:"order"`
	StockErrors []string                `json:"stock_errors,omitempty"`
}
