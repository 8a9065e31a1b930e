// Package memory implementa los puertos de persistencia en memoria del proceso.
// Es el driver por defecto (STORE_DRIVER=memory) y el que usan los tests de aplicación.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// defaultMovementLimit tamaño de página cuando el caller no indica limit.
const defaultMovementLimit = 50

// Store guarda el catálogo y el libro de movimientos.
// writeMu admite un único escritor a la vez (transacciones y escrituras sueltas);
// mu protege los mapas frente a lecturas concurrentes durante el commit.
type Store struct {
	writeMu sync.Mutex

	mu        sync.RWMutex
	nextID    int64
	records   map[int64]entity.StockRecord
	byName    map[string]int64
	movements []entity.StockMovement
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		records: make(map[int64]entity.StockRecord),
		byName:  make(map[string]int64),
	}
}

func (s *Store) get(id int64) (entity.StockRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	return r, ok
}

func (s *Store) idByName(name string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byName[name]
	return id, ok
}

func (s *Store) allocateID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID
}

func (s *Store) snapshot() map[int64]entity.StockRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]entity.StockRecord, len(s.records))
	for id, r := range s.records {
		out[id] = r
	}
	return out
}

func (s *Store) movementsOf(productID int64) []entity.StockMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.StockMovement
	for _, m := range s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}

// sortedRecords ordena por ID (orden de alta), el orden natural del store.
func sortedRecords(m map[int64]entity.StockRecord) []*entity.StockRecord {
	list := make([]*entity.StockRecord, 0, len(m))
	for _, r := range m {
		list = append(list, &r)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// pageMovements devuelve los movimientos más recientes primero, paginados.
func pageMovements(list []entity.StockMovement, limit, offset int) []*entity.StockMovement {
	if limit <= 0 {
		limit = defaultMovementLimit
	}
	if offset < 0 {
		offset = 0
	}
	out := make([]*entity.StockMovement, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		m := list[i]
		out = append(out, &m)
	}
	if offset >= len(out) {
		return []*entity.StockMovement{}
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out
}
