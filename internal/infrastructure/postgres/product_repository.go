package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, nome, descricao, preco, qtd, criado_em, atualizado_em`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.StockRecord, error) {
	query := `SELECT ` + productColumns + ` FROM produtos WHERE id = $1`
	rec, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get produto: %w", err)
	}
	return rec, nil
}

// GetByName obtiene un producto por nombre exacto (sensible a mayúsculas).
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.StockRecord, error) {
	query := `SELECT ` + productColumns + ` FROM produtos WHERE nome = $1`
	rec, err := scanProduct(r.q.QueryRow(ctx, query, name))
	if err != nil {
		return nil, fmt.Errorf("get produto por nome: %w", err)
	}
	return rec, nil
}

// GetByNameForUpdate como GetByName pero bloquea la fila (SELECT ... FOR UPDATE). Solo tiene efecto dentro de una tx.
func (r *ProductRepo) GetByNameForUpdate(ctx context.Context, name string) (*entity.StockRecord, error) {
	query := `SELECT ` + productColumns + ` FROM produtos WHERE nome = $1 FOR UPDATE`
	rec, err := scanProduct(r.q.QueryRow(ctx, query, name))
	if err != nil {
		return nil, fmt.Errorf("get produto por nome for update: %w", err)
	}
	return rec, nil
}

// LockForUpdate bloquea las filas de ids en orden ascendente de id, así dos pedidos
// que comparten productos siempre adquieren los locks en el mismo orden.
func (r *ProductRepo) LockForUpdate(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	rows, err := r.q.Query(ctx, `SELECT id FROM produtos WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return fmt.Errorf("lock produtos: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("lock produtos: %w", err)
	}
	return nil
}

// List devuelve todos los productos ordenados por id.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.StockRecord, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM produtos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.StockRecord, 0)
	for rows.Next() {
		var p entity.StockRecord
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan produto: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	return list, nil
}

// Save inserta (ID == 0, asigna el ID) o actualiza el registro.
func (r *ProductRepo) Save(ctx context.Context, record *entity.StockRecord) error {
	if record.ID == 0 {
		return r.insert(ctx, record)
	}
	query := `
		UPDATE produtos SET nome = $2, descricao = $3, preco = $4, qtd = $5, atualizado_em = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		record.ID, record.Name, record.Description, record.Price, record.Quantity, record.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update produto", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ProductNotFoundByID(record.ID)
	}
	return nil
}

func (r *ProductRepo) insert(ctx context.Context, record *entity.StockRecord) error {
	query := `
		INSERT INTO produtos (nome, descricao, preco, qtd, criado_em, atualizado_em)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		record.Name, record.Description, record.Price, record.Quantity, record.CreatedAt, record.UpdatedAt,
	).Scan(&record.ID)
	if err != nil {
		return mapWriteError("insert produto", err)
	}
	return nil
}

// DeleteAll borra el catálogo y su libro de movimientos.
func (r *ProductRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `TRUNCATE movimentos_estoque, produtos RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate produtos: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.StockRecord, error) {
	var p entity.StockRecord
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func mapWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isCheckViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}
