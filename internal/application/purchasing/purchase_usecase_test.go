package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	appinv "github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/ledger"
	"github.com/jhoicas/kardex-api/internal/application/purchasing"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

func newPurchaseUC(t *testing.T) (*purchasing.PurchaseUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	ledgerUC := ledger.NewUseCase(store, store.MovementRepo(), store.ItemRepo(), log)
	uc := purchasing.NewPurchaseUseCase(store, ledgerUC, appinv.NewResolver(), store.PurchaseRepo(), store.WarehouseRepo(), log)

	require.NoError(t, store.WarehouseRepo().Create(&entity.Warehouse{
		ID: "w1", Name: "Central", Capacity: decimal.NewFromInt(1000),
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	return uc, store
}

// Ciclo completo: la compra postea entradas, crea los agregados perezosamente
// y el borrado revierte todo (ida y vuelta a cero).
func TestPurchase_CrearYBorrar_IdaYVuelta(t *testing.T) {
	uc, store := newPurchaseUC(t)

	result, err := uc.Create(context.Background(), "u1", dto.CreatePurchaseRequest{
		Supplier:    "Proveedor Andino",
		WarehouseID: "w1",
		Items: []dto.PurchaseItemRequest{
			{ProductName: "Harina de Trigo", Quantity: decimal.NewFromInt(50), Unit: "kg", UnitPrice: decimal.NewFromInt(2)},
			{ProductName: "Azúcar Morena", Quantity: decimal.NewFromInt(30), Unit: "kg", UnitPrice: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, result.StockErrors)
	assert.Equal(t, "PUR-00001", result.Purchase.PurchaseNumber)
	assert.True(t, result.Purchase.TotalAmount.Equal(decimal.NewFromInt(190)), "50*2 + 30*3")

	// Los agregados se crearon perezosamente con el stock posteado.
	harina, err := store.ItemRepo().GetByNameAndWarehouse("harina de trigo", "w1")
	require.NoError(t, err)
	require.NotNil(t, harina)
	assert.True(t, harina.CurrentStock.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, entity.ItemStatusActive, harina.Status, "con stock por encima del mínimo el ítem queda Active")

	wh, err := store.WarehouseRepo().GetByID("w1")
	require.NoError(t, err)
	assert.True(t, wh.CurrentUsage.Equal(decimal.NewFromInt(80)))

	// Borrado: reversión en cascada por número de compra.
	delRes, err := uc.Delete(context.Background(), result.Purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, delRes.Reversed)
	assert.Empty(t, delRes.Errors)

	harina, err = store.ItemRepo().GetByID(harina.ID)
	require.NoError(t, err)
	assert.True(t, harina.CurrentStock.IsZero(), "la reversión devuelve el stock a cero")
	assert.Equal(t, entity.ItemStatusOutOfStock, harina.Status, "en cero el estado se rederiva a OutOfStock")

	wh, err = store.WarehouseRepo().GetByID("w1")
	require.NoError(t, err)
	assert.True(t, wh.CurrentUsage.IsZero())

	gone, err := store.PurchaseRepo().GetByID(result.Purchase.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "el encabezado se borra al final")
}

func TestPurchase_ValidacionEstructural_AbortaAntesDeMutar(t *testing.T) {
	uc, store := newPurchaseUC(t)

	casos := []dto.CreatePurchaseRequest{
		{WarehouseID: "", Items: []dto.PurchaseItemRequest{{ProductName: "X", Quantity: decimal.NewFromInt(1)}}},
		{WarehouseID: "w1", Items: nil},
		{WarehouseID: "w1", Items: []dto.PurchaseItemRequest{{ProductName: "  ", Quantity: decimal.NewFromInt(1)}}},
		{WarehouseID: "w1", Items: []dto.PurchaseItemRequest{{ProductName: "X", Quantity: decimal.Zero}}},
	}
	for _, in := range casos {
		_, err := uc.Create(context.Background(), "u1", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	purchases, err := store.PurchaseRepo().List(100, 0)
	require.NoError(t, err)
	assert.Empty(t, purchases, "nada se persiste cuando la validación estructural falla")
}

func TestPurchase_BodegaInexistente(t *testing.T) {
	uc, _ := newPurchaseUC(t)

	_, err := uc.Create(context.Background(), "u1", dto.CreatePurchaseRequest{
		Supplier:    "Proveedor",
		WarehouseID: "no-existe",
		Items:       []dto.PurchaseItemRequest{{ProductName: "X", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Los números de compra son consecutivos con relleno de ceros.
func TestPurchase_NumeracionConsecutiva(t *testing.T) {
	uc, _ := newPurchaseUC(t)

	for i, want := range []string{"PUR-00001", "PUR-00002", "PUR-00003"} {
		res, err := uc.Create(context.Background(), "u1", dto.CreatePurchaseRequest{
			Supplier:    "Proveedor",
			WarehouseID: "w1",
			Items:       []dto.PurchaseItemRequest{{ProductName: "Tornillos", Quantity: decimal.NewFromInt(int64(i + 1))}},
		})
		require.NoError(t, err)
		assert.Equal(t, want, res.Purchase.PurchaseNumber)
	}
}

// Borrar después de consumir el stock: reversión clava en cero y advierte,
// pero la compra se borra igual.
func TestPurchase_BorrarConStockConsumido(t *testing.T) {
	uc, store := newPurchaseUC(t)
	log := logger.Nop()
	ledgerUC := ledger.NewUseCase(store, store.MovementRepo(), store.ItemRepo(), log)

	res, err := uc.Create(context.Background(), "u1", dto.CreatePurchaseRequest{
		Supplier:    "Proveedor",
		WarehouseID: "w1",
		Items:       []dto.PurchaseItemRequest{{ProductName: "Cemento", Quantity: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	item, err := store.ItemRepo().GetByNameAndWarehouse("cemento", "w1")
	require.NoError(t, err)
	require.NotNil(t, item)

	// Se consume parte del stock aguas abajo.
	_, err = ledgerUC.Append(context.Background(), ledger.AppendInput{
		ItemID: item.ID, Direction: entity.DirectionOut,
		Quantity: decimal.NewFromInt(7), Reason: entity.ReasonSale,
	})
	require.NoError(t, err)

	delRes, err := uc.Delete(context.Background(), res.Purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, delRes.Reversed)

	item, err = store.ItemRepo().GetByID(item.ID)
	require.NoError(t, err)
	assert.True(t, item.CurrentStock.IsZero(), "3 - 10 se clava en cero, no queda negativo")
}

func TestPurchase_BorrarInexistente(t *testing.T) {
	uc, _ := newPurchaseUC(t)
	_, err := uc.Delete(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
