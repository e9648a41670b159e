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

func newProductionUC(t *testing.T) (*purchasing.ProductionUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	ledgerUC := ledger.NewUseCase(store, store.MovementRepo(), store.ItemRepo(), log)
	uc := purchasing.NewProductionUseCase(store, ledgerUC, appinv.NewResolver(), store.OrderRepo(), store.WarehouseRepo(), log)

	require.NoError(t, store.WarehouseRepo().Create(&entity.Warehouse{
		ID: "w1", Name: "Planta", Capacity: decimal.NewFromInt(500),
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	return uc, store
}

func TestProduction_CrearPosteaEntradasPorProductoTerminado(t *testing.T) {
	uc, store := newProductionUC(t)

	res, err := uc.Create(context.Background(), "u1", dto.CreateProductionRequest{
		WarehouseID: "w1",
		Outputs: []dto.ProductionOutputRequest{
			{ProductName: "Pan Campesino", Quantity: decimal.NewFromInt(120), Unit: "und"},
			{ProductName: "Pan Integral", Quantity: decimal.NewFromInt(60), Unit: "und"},
		},
		Notes: "turno de la mañana",
	})
	require.NoError(t, err)
	assert.Empty(t, res.StockErrors)
	assert.Equal(t, "PRO-00001", res.Order.OrderNumber)

	item, err := store.ItemRepo().GetByNameAndWarehouse("pan campesino", "w1")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.True(t, item.CurrentStock.Equal(decimal.NewFromInt(120)))

	movs, err := store.MovementRepo().ListInboundByReference("PRO-00001")
	require.NoError(t, err)
	assert.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.ReasonProduction, m.Reason)
	}
}

func TestProduction_BorrarRevierteLaCascada(t *testing.T) {
	uc, store := newProductionUC(t)

	res, err := uc.Create(context.Background(), "u1", dto.CreateProductionRequest{
		WarehouseID: "w1",
		Outputs:     []dto.ProductionOutputRequest{{ProductName: "Mermelada", Quantity: decimal.NewFromInt(40), Unit: "und"}},
	})
	require.NoError(t, err)

	delRes, err := uc.Delete(context.Background(), res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, delRes.Reversed)

	item, err := store.ItemRepo().GetByNameAndWarehouse("mermelada", "w1")
	require.NoError(t, err)
	require.NotNil(t, item, "el agregado sobrevive a la reversión")
	assert.True(t, item.CurrentStock.IsZero())

	movs, err := store.MovementRepo().ListInboundByReference("PRO-00001")
	require.NoError(t, err)
	assert.Empty(t, movs, "las entradas del libro se eliminaron")
}

func TestProduction_ValidacionEstructural(t *testing.T) {
	uc, _ := newProductionUC(t)

	_, err := uc.Create(context.Background(), "u1", dto.CreateProductionRequest{WarehouseID: "w1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "orden sin productos terminados")

	_, err = uc.Create(context.Background(), "u1", dto.CreateProductionRequest{
		WarehouseID: "w1",
		Outputs:     []dto.ProductionOutputRequest{{ProductName: "X", Quantity: decimal.NewFromInt(-1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
