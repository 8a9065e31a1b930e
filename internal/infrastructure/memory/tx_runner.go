package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks como transacciones sobre el Store.
// Las transacciones se serializan (un solo escritor) y sus escrituras quedan en un
// conjunto provisional que sólo se publica si fn termina sin error.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos atados a la transacción y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.writeMu.Lock()
	defer r.s.writeMu.Unlock()

	t := newTx(r.s)
	if err := fn(&txProductRepo{t: t}, &txMovementRepo{t: t}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	t.commit()
	return nil
}

// tx conjunto provisional de escrituras. Quien lo usa debe tener s.writeMu.
type tx struct {
	s            *Store
	cleared      bool
	staged       map[int64]entity.StockRecord
	stagedByName map[string]int64
	movements    []entity.StockMovement
}

func newTx(s *Store) *tx {
	return &tx{
		s:            s,
		staged:       make(map[int64]entity.StockRecord),
		stagedByName: make(map[string]int64),
	}
}

func (t *tx) get(id int64) (entity.StockRecord, bool) {
	if r, ok := t.staged[id]; ok {
		return r, true
	}
	if t.cleared {
		return entity.StockRecord{}, false
	}
	return t.s.get(id)
}

func (t *tx) idByName(name string) (int64, bool) {
	if id, ok := t.stagedByName[name]; ok {
		return id, true
	}
	if t.cleared {
		return 0, false
	}
	return t.s.idByName(name)
}

// save aplica las mismas reglas que las restricciones de la tabla produtos: nome único y qtd >= 0.
func (t *tx) save(record *entity.StockRecord) error {
	if record.Quantity < 0 {
		return fmt.Errorf("produto %q com qtd %d: %w", record.Name, record.Quantity, domain.ErrInvalidInput)
	}
	if record.ID == 0 {
		if _, exists := t.idByName(record.Name); exists {
			return domain.ErrDuplicate
		}
		record.ID = t.s.allocateID()
	} else if _, ok := t.get(record.ID); !ok {
		return errNotFoundOnUpdate(record.ID)
	}
	t.staged[record.ID] = *record
	t.stagedByName[record.Name] = record.ID
	return nil
}

func (t *tx) list() []*entity.StockRecord {
	merged := make(map[int64]entity.StockRecord)
	if !t.cleared {
		merged = t.s.snapshot()
	}
	for id, r := range t.staged {
		merged[id] = r
	}
	return sortedRecords(merged)
}

func (t *tx) deleteAll() {
	t.cleared = true
	t.staged = make(map[int64]entity.StockRecord)
	t.stagedByName = make(map[string]int64)
	t.movements = nil
}

func (t *tx) addMovement(m *entity.StockMovement) {
	t.movements = append(t.movements, *m)
}

func (t *tx) movementsOf(productID int64) []entity.StockMovement {
	var out []entity.StockMovement
	if !t.cleared {
		out = t.s.movementsOf(productID)
	}
	for _, m := range t.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}

func (t *tx) commit() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.cleared {
		t.s.records = make(map[int64]entity.StockRecord)
		t.s.byName = make(map[string]int64)
		t.s.movements = nil
	}
	for id, r := range t.staged {
		t.s.records[id] = r
		t.s.byName[r.Name] = id
	}
	t.s.movements = append(t.s.movements, t.movements...)
}

// txProductRepo ProductRepository atado a una transacción.
type txProductRepo struct {
	t *tx
}

func (r *txProductRepo) GetByID(_ context.Context, id int64) (*entity.StockRecord, error) {
	rec, ok := r.t.get(id)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *txProductRepo) GetByName(ctx context.Context, name string) (*entity.StockRecord, error) {
	id, ok := r.t.idByName(name)
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// GetByNameForUpdate: la transacción ya es exclusiva, no hace falta bloquear más.
func (r *txProductRepo) GetByNameForUpdate(ctx context.Context, name string) (*entity.StockRecord, error) {
	return r.GetByName(ctx, name)
}

func (r *txProductRepo) LockForUpdate(context.Context, []int64) error { return nil }

func (r *txProductRepo) List(context.Context) ([]*entity.StockRecord, error) {
	return r.t.list(), nil
}

func (r *txProductRepo) Save(_ context.Context, record *entity.StockRecord) error {
	return r.t.save(record)
}

func (r *txProductRepo) DeleteAll(context.Context) error {
	r.t.deleteAll()
	return nil
}

// txMovementRepo StockMovementRepository atado a una transacción.
type txMovementRepo struct {
	t *tx
}

func (r *txMovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	r.t.addMovement(movement)
	return nil
}

func (r *txMovementRepo) ListByProduct(_ context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return pageMovements(r.t.movementsOf(productID), limit, offset), nil
}
