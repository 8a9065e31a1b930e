package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los mensajes se exponen tal cual a los clientes del servicio de estoque, por eso van en portugués.
var (
	ErrNotFound          = errors.New("recurso não encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("estoque insuficiente")
)

// NotFoundError indica que un identificador o nombre no corresponde a ningún registro.
// errors.Is(err, ErrNotFound) es verdadero para cualquier NotFoundError.
type NotFoundError struct {
	Resource string // "produto"
	Key      string // nombre o id buscado
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Produto não encontrado: %s", e.Key)
}

// Is permite comparar contra el sentinel ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ProductNotFoundByID construye el error para una referencia por id colgante.
func ProductNotFoundByID(id int64) *NotFoundError {
	return &NotFoundError{Resource: "produto", Key: fmt.Sprintf("%d", id)}
}

// ProductNotFoundByName construye el error para un nombre inexistente.
func ProductNotFoundByName(name string) *NotFoundError {
	return &NotFoundError{Resource: "produto", Key: name}
}

// InsufficientStockError se produce cuando la cantidad pedida de una línea supera el stock disponible.
// Available es la cantidad en el momento de la verificación.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Available   int64
	Requested   int64
}

// Error conserva el formato que esperan los clientes existentes.
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Produto %s possui apenas: %d em estoque", e.ProductName, e.Available)
}

// Is permite comparar contra el sentinel ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// ValidationError rechazo de una entrada mal formada. Message es el texto exacto devuelto al cliente.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is permite comparar contra el sentinel ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }
