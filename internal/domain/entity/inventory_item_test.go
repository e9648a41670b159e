package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

func TestDeriveStatus(t *testing.T) {
	min := decimal.NewFromInt(5)

	assert.Equal(t, entity.ItemStatusOutOfStock, entity.DeriveStatus(decimal.Zero, min, entity.ItemStatusActive))
	assert.Equal(t, entity.ItemStatusLowStock, entity.DeriveStatus(decimal.NewFromInt(5), min, entity.ItemStatusActive))
	assert.Equal(t, entity.ItemStatusActive, entity.DeriveStatus(decimal.NewFromInt(6), min, entity.ItemStatusOutOfStock))
}

// Discontinued se fija manualmente y la derivación no lo pisa.
func TestDeriveStatus_PreservaDiscontinued(t *testing.T) {
	got := entity.DeriveStatus(decimal.NewFromInt(100), decimal.NewFromInt(5), entity.ItemStatusDiscontinued)
	assert.Equal(t, entity.ItemStatusDiscontinued, got)
}

func TestApplyStock_ClavaEnCeroYReporta(t *testing.T) {
	item := &entity.InventoryItem{
		CurrentStock: decimal.NewFromInt(3),
		MinimumStock: decimal.NewFromInt(2),
		Status:       entity.ItemStatusActive,
	}

	clamped := item.ApplyStock(decimal.NewFromInt(-4), time.Now())

	assert.True(t, clamped, "un stock negativo debe reportarse como clavado")
	assert.True(t, item.CurrentStock.IsZero())
	assert.Equal(t, entity.ItemStatusOutOfStock, item.Status)
}

func TestApplyStock_RederivaEstado(t *testing.T) {
	item := &entity.InventoryItem{
		CurrentStock: decimal.NewFromInt(10),
		MinimumStock: decimal.NewFromInt(5),
		Status:       entity.ItemStatusActive,
	}

	clamped := item.ApplyStock(decimal.NewFromInt(4), time.Now())

	assert.False(t, clamped)
	assert.Equal(t, entity.ItemStatusLowStock, item.Status)
}

func TestAdjustUsage_PisoEnCero(t *testing.T) {
	w := &entity.Warehouse{CurrentUsage: decimal.NewFromInt(2)}

	clamped := w.AdjustUsage(decimal.NewFromInt(-5), time.Now())

	assert.True(t, clamped)
	assert.True(t, w.CurrentUsage.IsZero())

	clamped = w.AdjustUsage(decimal.NewFromInt(7), time.Now())
	assert.False(t, clamped)
	assert.True(t, w.CurrentUsage.Equal(decimal.NewFromInt(7)))
}
