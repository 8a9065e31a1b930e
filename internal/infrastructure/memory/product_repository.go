package memory

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo acceso directo (fuera de transacción) al catálogo en memoria.
// Las escrituras toman el lock de escritor, así que nunca se intercalan con una transacción en curso.
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye el adaptador sobre el store.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

// GetByID obtiene un registro por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.StockRecord, error) {
	rec, ok := r.s.get(id)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// GetByName obtiene un registro por nombre exacto (sensible a mayúsculas).
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.StockRecord, error) {
	id, ok := r.s.idByName(name)
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// GetByNameForUpdate fuera de transacción equivale a GetByName.
func (r *ProductRepo) GetByNameForUpdate(ctx context.Context, name string) (*entity.StockRecord, error) {
	return r.GetByName(ctx, name)
}

// LockForUpdate fuera de transacción no bloquea nada.
func (r *ProductRepo) LockForUpdate(context.Context, []int64) error { return nil }

// List devuelve todos los registros en orden de alta.
func (r *ProductRepo) List(context.Context) ([]*entity.StockRecord, error) {
	return sortedRecords(r.s.snapshot()), nil
}

// Save inserta (ID == 0) o actualiza un registro.
func (r *ProductRepo) Save(_ context.Context, record *entity.StockRecord) error {
	r.s.writeMu.Lock()
	defer r.s.writeMu.Unlock()

	t := newTx(r.s)
	if err := t.save(record); err != nil {
		return err
	}
	t.commit()
	return nil
}

// DeleteAll vacía catálogo y movimientos.
func (r *ProductRepo) DeleteAll(context.Context) error {
	r.s.writeMu.Lock()
	defer r.s.writeMu.Unlock()

	t := newTx(r.s)
	t.deleteAll()
	t.commit()
	return nil
}

// errNotFoundOnUpdate mantiene la semántica del UPDATE sin filas de PostgreSQL.
func errNotFoundOnUpdate(id int64) error {
	return domain.ProductNotFoundByID(id)
}
