package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidTransition = errors.New("transición de estado inválida")
)

// InsufficientStockError indica que la cantidad solicitada supera la disponible.
// Incluye el ítem y ambas cantidades para que el caller pueda reportarlas.
type InsufficientStockError struct {
	ItemID    string
	ItemName  string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: disponible %s, solicitado %s",
		e.ItemName, e.Available.String(), e.Requested.String())
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidTransitionError indica una acción de workflow ejecutada desde un estado incorrecto.
type InvalidTransitionError struct {
	Current string // estado actual del traslado
	Action  string // acción intentada (approve, dispatch, ...)
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("no se puede %s un traslado en estado %q", e.Action, e.Current)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// PartialFailure agrupa fallas de sub-operaciones cuando el registro principal
// sí se persistió (líneas de compra, reversiones en cascada, reconciliación batch).
type PartialFailure struct {
	Op     string
	Errors []error
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("%s: %d sub-operaciones fallidas: %s",
		e.Op, len(e.Errors), strings.Join(e.Messages(), "; "))
}

// Empty indica si no hubo fallas.
func (e *PartialFailure) Empty() bool { return len(e.Errors) == 0 }

// Messages devuelve los mensajes individuales (para respuestas HTTP y CLI).
func (e *PartialFailure) Messages() []string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return msgs
}
