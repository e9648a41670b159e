package inventory_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

func newReconciler(store *memory.Store) *appinv.ReconcileUseCase {
	return appinv.NewReconcileUseCase(store.MovementRepo(), store.ItemRepo(), store.WarehouseRepo(), logger.Nop())
}

func seedStore(t *testing.T, store *memory.Store, itemID string, stock int64, status string) {
	t.Helper()
	require.NoError(t, store.WarehouseRepo().Create(&entity.Warehouse{
		ID: "w1", Name: "Central", CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	require.NoError(t, store.ItemRepo().Create(&entity.InventoryItem{
		ID:           itemID,
		WarehouseID:  "w1",
		Name:         "Harina de Trigo",
		Code:         "ITM-HARINA",
		CurrentStock: decimal.NewFromInt(stock),
		MinimumStock: decimal.NewFromInt(3),
		Status:       status,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}))
}

func appendMov(t *testing.T, store *memory.Store, itemID, direction, reason string, qty int64) {
	t.Helper()
	require.NoError(t, store.MovementRepo().Create(&entity.Movement{
		ID:          uuid.New().String(),
		ItemID:      itemID,
		WarehouseID: "w1",
		Direction:   direction,
		Reason:      reason,
		Quantity:    decimal.NewFromInt(qty),
		CreatedAt:   time.Now(),
	}))
}

func TestRecalculateOne_ReconstruyeDesdeElLibro(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store, "i1", 999, entity.ItemStatusActive) // caché corrupta a propósito
	appendMov(t, store, "i1", entity.DirectionIn, entity.ReasonInitialStock, 20)
	appendMov(t, store, "i1", entity.DirectionOut, entity.ReasonSale, 18)

	item, err := newReconciler(store).RecalculateOne("i1")
	require.NoError(t, err)

	assert.True(t, item.CurrentStock.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, entity.ItemStatusLowStock, item.Status, "2 <= mínimo 3")
}

// Un ítem sin movimientos conserva su stock estático (siembra legacy).
func TestRecalculateOne_SinMovimientos_NoTocaElStock(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store, "i1", 35, entity.ItemStatusActive)

	item, err := newReconciler(store).RecalculateOne("i1")
	require.NoError(t, err)

	assert.True(t, item.CurrentStock.Equal(decimal.NewFromInt(35)))
}

func TestRecalculateOne_PreservaDiscontinued(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store, "i1", 0, entity.ItemStatusDiscontinued)
	appendMov(t, store, "i1", entity.DirectionIn, entity.ReasonPurchase, 50)

	item, err := newReconciler(store).RecalculateOne("i1")
	require.NoError(t, err)

	assert.True(t, item.CurrentStock.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, entity.ItemStatusDiscontinued, item.Status,
		"la reconciliación corrige el stock pero no revive un ítem descontinuado")
}

func TestRecalculateOne_ItemInexistente(t *testing.T) {
	store := memory.NewStore()
	_, err := newReconciler(store).RecalculateOne("fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecalculateAll_EsIdempotente(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store, "i1", 0, entity.ItemStatusActive)
	appendMov(t, store, "i1", entity.DirectionIn, entity.ReasonPurchase, 10)

	uc := newReconciler(store)

	res1, err := uc.RecalculateAll()
	require.NoError(t, err)
	assert.Equal(t, 1, res1.Total)
	assert.Equal(t, 1, res1.Updated)
	assert.Zero(t, res1.Errors)

	// Segunda pasada: mismo resultado, mismo stock.
	res2, err := uc.RecalculateAll()
	require.NoError(t, err)
	assert.Equal(t, res1.Updated, res2.Updated)

	item, err := store.ItemRepo().GetByID("i1")
	require.NoError(t, err)
	assert.True(t, item.CurrentStock.Equal(decimal.NewFromInt(10)))
}

func TestRecalculateWarehouseUsage_ResumaDesdeElLibro(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store, "i1", 0, entity.ItemStatusActive)
	appendMov(t, store, "i1", entity.DirectionIn, entity.ReasonPurchase, 30)
	appendMov(t, store, "i1", entity.DirectionOut, entity.ReasonTransferOut, 12)

	wh, err := newReconciler(store).RecalculateWarehouseUsage("w1")
	require.NoError(t, err)
	assert.True(t, wh.CurrentUsage.Equal(decimal.NewFromInt(18)))
}
