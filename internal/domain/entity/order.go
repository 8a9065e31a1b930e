package entity

// OrderLine referencia un StockRecord por ID y la cantidad a descontar (> 0).
type OrderLine struct {
	ProductID int64
	Quantity  int64
}

// Order es una secuencia ordenada de líneas; el orden define qué línea falla primero.
type Order struct {
	Items []OrderLine
}

// ProductIDs devuelve los IDs referenciados sin repetir, en orden de aparición.
func (o Order) ProductIDs() []int64 {
	seen := make(map[int64]struct{}, len(o.Items))
	ids := make([]int64, 0, len(o.Items))
	for _, it := range o.Items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}
