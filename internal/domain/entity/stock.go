package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord representa el registro persistido de un producto con su cantidad en estoque.
// Invariante: Quantity >= 0 en todo punto observable.
type StockRecord struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanDecrement indica si hay estoque suficiente para retirar qty unidades.
func (r *StockRecord) CanDecrement(qty int64) bool {
	return qty <= r.Quantity
}
