package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/ledger"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newLedger(t *testing.T) (*ledger.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := ledger.NewUseCase(store, store.MovementRepo(), store.ItemRepo(), logger.Nop())
	return uc, store
}

func seedWarehouse(t *testing.T, store *memory.Store, id string) {
	t.Helper()
	require.NoError(t, store.WarehouseRepo().Create(&entity.Warehouse{
		ID:        id,
		Name:      "Bodega " + id,
		Capacity:  decimal.NewFromInt(1000),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}))
}

func seedItem(t *testing.T, store *memory.Store, id, warehouseID string, stock int64) {
	t.Helper()
	require.NoError(t, store.ItemRepo().Create(&entity.InventoryItem{
		ID:           id,
		WarehouseID:  warehouseID,
		Name:         "Ítem " + id,
		Code:         "ITM-" + id,
		CurrentStock: decimal.NewFromInt(stock),
		MinimumStock: decimal.NewFromInt(2),
		Status:       entity.ItemStatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Append
// ──────────────────────────────────────────────────────────────────────────────

func TestAppend_EntradaActualizaAgregadoYOcupacion(t *testing.T) {
	uc, store := newLedger(t)
	seedWarehouse(t, store, "w1")
	seedItem(t, store, "i1", "w1", 0)

	mov, err := uc.Append(context.Background(), ledger.AppendInput{
		ItemID:          "i1",
		Direction:       entity.DirectionIn,
		Quantity:        decimal.NewFromInt(10),
		Reason:          entity.ReasonPurchase,
		ReferenceNumber: "PUR-00001",
		CreatedBy:       "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, "w1", mov.WarehouseID, "la bodega se toma del agregado")

	item, err := store.ItemRepo().GetByID("i1")
	require.NoError(t, err)
	assert.True(t, item.CurrentStock.Equal(decimal.NewFromInt(10)))

	wh, err := store.WarehouseRepo().GetByID("w1")
	require.NoError(t, err)
	assert.True(t, wh.CurrentUsage.Equal(decimal.NewFromInt(10)), "la entrada sube la ocupación")
}

func TestAppend_SalidaQueExcedeElStock_ClavaEnCero(t *testing.T) {
	uc, store := newLedger(t)
	seedWarehouse(t, store, "w1")
	seedItem(t, store, "i1", "w1", 5)

	_, err := uc.Append(context.Background(), ledger.AppendInput{
		ItemID:    "i1",
		Direction: entity.DirectionOut,
		Quantity:  decimal.NewFromInt(9),
		Reason:    entity.ReasonSale,
	})
	require.NoError(t, err, "la salida excesiva no es error duro: se clava y se advierte")

	item, err := store.ItemRepo().GetByID("i1")
	require.NoError(t, err)
	assert.True(t, item.CurrentStock.IsZero())
	assert.Equal(t, entity.ItemStatusOutOfStock, item.Status)

	// El movimiento queda registrado con su cantidad original.
	movs, err := store.MovementRepo().ListByItem("i1")
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(9)))
}

func TestAppend_ValidacionesRechazanAntesDeMutar(t *testing.T) {
	uc, store := newLedger(t)
	seedWarehouse(t, store, "w1")
	seedItem(t, store, "i1", "w1", 5)

	casos := []ledger.AppendInput{
		{ItemID: "i1", Direction: "sideways", Quantity: decimal.NewFromInt(1)},
		{ItemID: "i1", Direction: entity.DirectionIn, Quantity: decimal.Zero},
		{ItemID: "i1", Direction: entity.DirectionIn, Quantity: decimal.NewFromInt(-3)},
		{ItemID: "", Direction: entity.DirectionIn, Quantity: decimal.NewFromInt(1)},
	}
	for _, in := range casos {
		_, err := uc.Append(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	movs, err := store.MovementRepo().ListByItem("i1")
	require.NoError(t, err)
	assert.Empty(t, movs, "ninguna validación fallida debe dejar movimientos")
}

func TestAppend_ItemInexistente(t *testing.T) {
	uc, store := newLedger(t)
	seedWarehouse(t, store, "w1")

	_, err := uc.Append(context.Background(), ledger.AppendInput{
		ItemID:    "fantasma",
		Direction: entity.DirectionIn,
		Quantity:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Available
// ──────────────────────────────────────────────────────────────────────────────

// Sin movimientos manda la caché del agregado (siembra legacy); con
// movimientos manda el replay del libro.
func TestAvailable_PrefiereReplayCuandoHayMovimientos(t *testing.T) {
	uc, store := newLedger(t)
	seedWarehouse(t, store, "w1")
	seedItem(t, store, "i1", "w1", 42)

	item, err := store.ItemRepo().GetByID("i1")
	require.NoError(t, err)

	avail, err := uc.Available(item)
	require.NoError(t, err)
	assert.True(t, avail.Equal(decimal.NewFromInt(42)), "sin movimientos: caché")

	_, err = uc.Append(context.Background(), ledger.AppendInput{
		ItemID:    "i1",
		Direction: entity.DirectionIn,
		Quantity:  decimal.NewFromInt(3),
		Reason:    entity.ReasonInitialStock,
	})
	require.NoError(t, err)

	item, err = store.ItemRepo().GetByID("i1")
	require.NoError(t, err)
	avail, err = uc.Available(item)
	require.NoError(t, err)
	assert.True(t, avail.Equal(decimal.NewFromInt(3)), "con movimientos: replay, y la siembra resetea")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reverse
// ──────────────────────────────────────────────────────────────────────────────

func TestReverse_EliminaEntradasYCorrigeAgregado(t *testing.T) {
	uc, store := newLedger(t)
	seedWarehouse(t, store, "w1")
	seedItem(t, store, "i1", "w1", 0)
	seedItem(t, store, "i2", "w1", 0)

	for _, in := range []ledger.AppendInput{
		{ItemID: "i1", Direction: entity.DirectionIn, Quantity: decimal.NewFromInt(10), Reason: entity.ReasonPurchase, ReferenceNumber: "PUR-00007"},
		{ItemID: "i2", Direction: entity.DirectionIn, Quantity: decimal.NewFromInt(4), Reason: entity.ReasonPurchase, ReferenceNumber: "PUR-00007"},
		{ItemID: "i1", Direction: entity.DirectionOut, Quantity: decimal.NewFromInt(2), Reason: entity.ReasonSale, ReferenceNumber: "PUR-00007"},
	} {
		_, err := uc.Append(context.Background(), in)
		require.NoError(t, err)
	}

	res, err := uc.Reverse(context.Background(), "PUR-00007")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Reversed, "solo se revierten las entradas, nunca las salidas")
	assert.Empty(t, res.Errors)

	// i1: 10 - 2 (venta) - 10 (reversión) → clavado en 0.
	item1, err := store.ItemRepo().GetByID("i1")
	require.NoError(t, err)
	assert.True(t, item1.CurrentStock.IsZero())

	item2, err := store.ItemRepo().GetByID("i2")
	require.NoError(t, err)
	assert.True(t, item2.CurrentStock.IsZero())

	// La salida sobrevive en el libro; las entradas desaparecen.
	movs, err := store.MovementRepo().ListByItem("i1")
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.DirectionOut, movs[0].Direction)
}

func TestReverse_SinMovimientos_NoHaceNada(t *testing.T) {
	uc, _ := newLedger(t)

	res, err := uc.Reverse(context.Background(), "REF-INEXISTENTE")
	require.NoError(t, err)
	assert.Zero(t, res.Reversed)
	assert.Empty(t, res.Errors)
}
