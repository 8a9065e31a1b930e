package entity

import "time"

// Tipos de movimiento de estoque.
const (
	MovementTypeIN  = "IN"  // cadastro / reposición
	MovementTypeOUT = "OUT" // línea de pedido aplicada
)

// StockMovement registra cada cambio de cantidad de un StockRecord.
// OrderID agrupa las salidas de un mismo pedido; vacío en entradas.
type StockMovement struct {
	ID        string
	OrderID   string
	ProductID int64
	Type      string
	Quantity  int64 // positivo en IN, negativo en OUT
	Balance   int64 // cantidad resultante tras el movimiento
	CreatedAt time.Time
}
