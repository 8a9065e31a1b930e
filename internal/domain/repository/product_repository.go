package repository

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para StockRecord (DIP).
// Un registro inexistente se devuelve como (nil, nil); la capa de aplicación lo traduce a NotFoundError.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.StockRecord, error)
	GetByName(ctx context.Context, name string) (*entity.StockRecord, error)
	// GetByNameForUpdate igual que GetByName pero bloquea la fila hasta el fin de la transacción.
	GetByNameForUpdate(ctx context.Context, name string) (*entity.StockRecord, error)
	// LockForUpdate bloquea las filas indicadas (orden ascendente de id) hasta el fin de la transacción.
	LockForUpdate(ctx context.Context, ids []int64) error
	List(ctx context.Context) ([]*entity.StockRecord, error)
	// Save inserta cuando ID == 0 (asignando el ID) o actualiza el registro existente.
	Save(ctx context.Context, record *entity.StockRecord) error
	// DeleteAll vacía el catálogo. Sólo para tests y reinicio de entornos.
	DeleteAll(ctx context.Context) error
}
