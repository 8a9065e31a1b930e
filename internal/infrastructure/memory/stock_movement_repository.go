package memory

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo acceso directo al libro de movimientos en memoria.
type StockMovementRepo struct {
	s *Store
}

// NewStockMovementRepository construye el adaptador.
func NewStockMovementRepository(s *Store) *StockMovementRepo {
	return &StockMovementRepo{s: s}
}

// Create agrega un movimiento.
func (r *StockMovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	r.s.writeMu.Lock()
	defer r.s.writeMu.Unlock()

	t := newTx(r.s)
	t.addMovement(movement)
	t.commit()
	return nil
}

// ListByProduct lista movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(_ context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return pageMovements(r.s.movementsOf(productID), limit, offset), nil
}
