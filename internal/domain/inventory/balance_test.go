package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
)

func mov(direction, reason string, qty int64) *entity.Movement {
	return &entity.Movement{
		Direction: direction,
		Reason:    reason,
		Quantity:  decimal.NewFromInt(qty),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Replay de saldo
// ──────────────────────────────────────────────────────────────────────────────

func TestBalance_SumaEntradasYRestaSalidas(t *testing.T) {
	movs := []*entity.Movement{
		mov(entity.DirectionIn, entity.ReasonPurchase, 10),
		mov(entity.DirectionIn, entity.ReasonProduction, 5),
		mov(entity.DirectionOut, entity.ReasonSale, 3),
	}
	assert.True(t, inventory.Balance(movs).Equal(decimal.NewFromInt(12)))
}

// La siembra resetea el acumulado: lo anterior al "Initial Stock" se descarta.
func TestBalance_InitialStockReseteaElAcumulado(t *testing.T) {
	movs := []*entity.Movement{
		mov(entity.DirectionIn, entity.ReasonPurchase, 100),
		mov(entity.DirectionIn, entity.ReasonInitialStock, 40),
		mov(entity.DirectionOut, entity.ReasonSale, 15),
	}
	// 40 - 15; los 100 previos a la siembra no cuentan.
	assert.True(t, inventory.Balance(movs).Equal(decimal.NewFromInt(25)))
}

// Una siembra con dirección out también resetea: manda el Reason, no la dirección.
func TestBalance_InitialStockManda_SinImportarDireccion(t *testing.T) {
	movs := []*entity.Movement{
		mov(entity.DirectionOut, entity.ReasonInitialStock, 7),
	}
	assert.True(t, inventory.Balance(movs).Equal(decimal.NewFromInt(7)))
}

func TestBalance_PisoEnCero(t *testing.T) {
	movs := []*entity.Movement{
		mov(entity.DirectionIn, entity.ReasonPurchase, 5),
		mov(entity.DirectionOut, entity.ReasonSale, 9),
	}
	assert.True(t, inventory.Balance(movs).IsZero(),
		"el replay nunca devuelve saldo negativo")
}

func TestBalance_SinMovimientos_DevuelveCero(t *testing.T) {
	assert.True(t, inventory.Balance(nil).IsZero())
}

// Varias siembras: gana la última en orden de inserción.
func TestBalance_UltimaSiembraGana(t *testing.T) {
	movs := []*entity.Movement{
		mov(entity.DirectionIn, entity.ReasonInitialStock, 50),
		mov(entity.DirectionOut, entity.ReasonSale, 10),
		mov(entity.DirectionIn, entity.ReasonInitialStock, 8),
		mov(entity.DirectionIn, entity.ReasonPurchase, 2),
	}
	assert.True(t, inventory.Balance(movs).Equal(decimal.NewFromInt(10)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Ocupación de bodega
// ──────────────────────────────────────────────────────────────────────────────

func TestWarehouseUsage_SumaYResta_SinSemanticaDeSiembra(t *testing.T) {
	movs := []*entity.Movement{
		mov(entity.DirectionIn, entity.ReasonInitialStock, 20),
		mov(entity.DirectionIn, entity.ReasonPurchase, 10),
		mov(entity.DirectionOut, entity.ReasonTransferOut, 5),
	}
	// La ocupación física no se resetea: 20 + 10 - 5.
	assert.True(t, inventory.WarehouseUsage(movs).Equal(decimal.NewFromInt(25)))
}

func TestWarehouseUsage_PisoEnCero(t *testing.T) {
	movs := []*entity.Movement{
		mov(entity.DirectionOut, entity.ReasonSale, 3),
	}
	assert.True(t, inventory.WarehouseUsage(movs).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Normalización de nombres
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeName_TildesMayusculasYEspacios(t *testing.T) {
	assert.Equal(t, "azucar morena", inventory.NormalizeName("  Azúcar   Morena "))
	assert.Equal(t, "cafe", inventory.NormalizeName("CAFÉ"))
	assert.Equal(t, inventory.NormalizeName("Almidón de Yuca"), inventory.NormalizeName("almidon de yuca"))
}
