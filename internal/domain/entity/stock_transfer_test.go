package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

func transferEnEstado(status string) *entity.StockTransfer {
	return &entity.StockTransfer{Status: status}
}

func TestCanTransition_FlujoFeliz(t *testing.T) {
	assert.True(t, transferEnEstado(entity.TransferStatusPending).CanTransition(entity.TransferActionApprove))
	assert.True(t, transferEnEstado(entity.TransferStatusApproved).CanTransition(entity.TransferActionDispatch))
	assert.True(t, transferEnEstado(entity.TransferStatusInTransit).CanTransition(entity.TransferActionReceive))
	assert.True(t, transferEnEstado(entity.TransferStatusDelivered).CanTransition(entity.TransferActionComplete))
}

func TestCanTransition_SaltosInvalidos(t *testing.T) {
	// No se puede despachar sin aprobar ni completar sin recibir.
	assert.False(t, transferEnEstado(entity.TransferStatusPending).CanTransition(entity.TransferActionDispatch))
	assert.False(t, transferEnEstado(entity.TransferStatusPending).CanTransition(entity.TransferActionReceive))
	assert.False(t, transferEnEstado(entity.TransferStatusApproved).CanTransition(entity.TransferActionComplete))
	assert.False(t, transferEnEstado(entity.TransferStatusInTransit).CanTransition(entity.TransferActionApprove))
}

func TestCanTransition_Rechazo_SoloDesdePending(t *testing.T) {
	assert.True(t, transferEnEstado(entity.TransferStatusPending).CanTransition(entity.TransferActionReject))
	assert.False(t, transferEnEstado(entity.TransferStatusApproved).CanTransition(entity.TransferActionReject))
	assert.False(t, transferEnEstado(entity.TransferStatusInTransit).CanTransition(entity.TransferActionReject))
}

func TestCanTransition_Cancelacion_HastaInTransit(t *testing.T) {
	assert.True(t, transferEnEstado(entity.TransferStatusPending).CanTransition(entity.TransferActionCancel))
	assert.True(t, transferEnEstado(entity.TransferStatusApproved).CanTransition(entity.TransferActionCancel))
	assert.True(t, transferEnEstado(entity.TransferStatusInTransit).CanTransition(entity.TransferActionCancel))
	assert.False(t, transferEnEstado(entity.TransferStatusDelivered).CanTransition(entity.TransferActionCancel))
	assert.False(t, transferEnEstado(entity.TransferStatusCompleted).CanTransition(entity.TransferActionCancel))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, transferEnEstado(entity.TransferStatusCompleted).IsTerminal())
	assert.True(t, transferEnEstado(entity.TransferStatusCancelled).IsTerminal())
	assert.True(t, transferEnEstado(entity.TransferStatusRejected).IsTerminal())
	assert.False(t, transferEnEstado(entity.TransferStatusInTransit).IsTerminal())
}

// Antes de la recepción el valor se calcula con lo solicitado; después,
// solo con lo que realmente llegó.
func TestComputeTotalValue_AntesYDespuesDeRecepcion(t *testing.T) {
	transfer := &entity.StockTransfer{
		Items: []entity.TransferItem{
			{RequestedQuantity: decimal.NewFromInt(10), ActualQuantity: decimal.NewFromInt(8), UnitPrice: decimal.NewFromInt(3)},
			{RequestedQuantity: decimal.NewFromInt(4), ActualQuantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(5)},
		},
	}

	transfer.ComputeTotalValue()
	assert.True(t, transfer.TotalValue.Equal(decimal.NewFromInt(50)), "10*3 + 4*5 antes de recibir")

	transfer.Receipt = &entity.ActionStamp{Actor: "u1", Timestamp: time.Now()}
	transfer.ComputeTotalValue()
	assert.True(t, transfer.TotalValue.Equal(decimal.NewFromInt(44)), "8*3 + 4*5 después de recibir")
}
