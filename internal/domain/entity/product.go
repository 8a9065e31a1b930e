package entity

import "github.com/shopspring/decimal"

// Product es la vista de catálogo de un producto. Su identidad para el catálogo es Name.
type Product struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int64
}

// NewStockRecord crea el registro persistente para un producto que aún no existe en el catálogo.
// El ID lo asigna el store al guardar.
func NewStockRecord(p Product) *StockRecord {
	return &StockRecord{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
	}
}
