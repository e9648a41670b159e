package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// StockTransferRepository define el puerto de persistencia para traslados (DIP).
type StockTransferRepository interface {
	Create(transfer *entity.StockTransfer) error
	GetByID(id string) (*entity.StockTransfer, error)
	// GetForUpdate bloquea la fila del traslado mientras se valida y aplica
	// una transición de estado.
	GetForUpdate(id string) (*entity.StockTransfer, error)
	GetByNumber(transferNumber string) (*entity.StockTransfer, error)
	Update(transfer *entity.StockTransfer) error
	// List filtra por estado cuando status no es vacío.
	List(status string, limit, offset int) ([]*entity.StockTransfer, error)
	// NextSequence devuelve el siguiente consecutivo para el número de traslado.
	NextSequence() (int64, error)
}
