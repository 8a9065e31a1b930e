package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// defaultMovementLimit tamaño de página cuando el caller no indica limit.
const defaultMovementLimit = 50

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento. OrderID vacío se guarda como NULL.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO movimentos_estoque (id, pedido_id, produto_id, tipo, qtd, saldo, criado_em)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, m.ID, m.OrderID, m.ProductID, m.Type, m.Quantity, m.Balance, m.CreatedAt)
	if err != nil {
		return mapWriteError("insert movimento", err)
	}
	return nil
}

// ListByProduct lista los movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = defaultMovementLimit
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT id, COALESCE(pedido_id, ''), produto_id, tipo, qtd, saldo, criado_em
		FROM movimentos_estoque
		WHERE produto_id = $1
		ORDER BY seq DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movimentos: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.OrderID, &m.ProductID, &m.Type, &m.Quantity, &m.Balance, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimento: %w", err)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list movimentos: %w", err)
	}
	return list, nil
}
