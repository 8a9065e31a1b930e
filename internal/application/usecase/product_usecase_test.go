package usecase_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newCatalog(cache usecase.CatalogCache) (*usecase.ProductUseCase, *memory.Store) {
	s := memory.NewStore()
	return usecase.NewProductUseCase(
		memory.NewTxRunner(s),
		memory.NewProductRepository(s),
		memory.NewStockMovementRepository(s),
		cache,
	), s
}

func notebook(qty int64) dto.ProductRequest {
	return dto.ProductRequest{
		Name:        "Notebook",
		Description: "Notebook Dell",
		Price:       decimal.NewFromInt(2500),
		Quantity:    qty,
	}
}

// fakeCache caché en memoria que cuenta aciertos e invalidaciones.
type fakeCache struct {
	mu          sync.Mutex
	byName      map[string]*entity.StockRecord
	all         []*entity.StockRecord
	hasAll      bool
	hits        int
	invalidated atomic.Int32
	failReads   bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{byName: make(map[string]*entity.StockRecord)}
}

func (c *fakeCache) GetByName(_ context.Context, name string) (*entity.StockRecord, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failReads {
		return nil, false, errors.New("redis caído")
	}
	r, ok := c.byName[name]
	if ok {
		c.hits++
	}
	return r, ok, nil
}

func (c *fakeCache) SetByName(_ context.Context, r *entity.StockRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *r
	c.byName[r.Name] = &cp
	return nil
}

func (c *fakeCache) GetAll(context.Context) ([]*entity.StockRecord, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failReads {
		return nil, false, errors.New("redis caído")
	}
	if c.hasAll {
		c.hits++
	}
	return c.all, c.hasAll, nil
}

func (c *fakeCache) SetAll(_ context.Context, list []*entity.StockRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.all, c.hasAll = list, true
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byName = make(map[string]*entity.StockRecord)
	c.all, c.hasAll = nil, false
	c.invalidated.Add(1)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_AltaNuevaEchoDelProducto(t *testing.T) {
	uc, _ := newCatalog(nil)

	out, err := uc.Register(context.Background(), notebook(10))
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Equal(t, "Notebook", out.Name)
	assert.Equal(t, int64(10), out.Quantity)
	assert.True(t, out.Price.Equal(decimal.NewFromInt(2500)))
}

func TestRegister_MismoNombreAcumulaCantidad(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCatalog(nil)

	first, err := uc.Register(ctx, notebook(10))
	require.NoError(t, err)

	again := notebook(5)
	again.Description = "otra descrição"
	again.Price = decimal.NewFromInt(1)
	second, err := uc.Register(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(5), second.Quantity, "la respuesta es el eco del producto recibido")

	got, err := uc.GetByName(ctx, "Notebook")
	require.NoError(t, err)
	assert.Equal(t, int64(15), got.Quantity)
	assert.Equal(t, "Notebook Dell", got.Description, "la descripción original se conserva")
	assert.True(t, got.Price.Equal(decimal.NewFromInt(2500)), "el precio original se conserva")

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRegister_AcumulacionQueDesbordaSeRechaza(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCatalog(nil)

	_, err := uc.Register(ctx, notebook(math.MaxInt64))
	require.NoError(t, err)

	_, err = uc.Register(ctx, notebook(math.MaxInt64))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Quantidade acumulada do produto excede o limite permitido.", verr.Message)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByName(ctx, "Notebook")
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got.Quantity, "el registro no cambia")

	// justo en el límite todavía se acepta
	uc2, _ := newCatalog(nil)
	_, err = uc2.Register(ctx, notebook(math.MaxInt64-1))
	require.NoError(t, err)
	_, err = uc2.Register(ctx, notebook(1))
	require.NoError(t, err)
	got, err = uc2.GetByName(ctx, "Notebook")
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got.Quantity)
}

func TestRegister_RegistraMovimientosIN(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCatalog(nil)
	out, err := uc.Register(ctx, notebook(10))
	require.NoError(t, err)
	_, err = uc.Register(ctx, notebook(3))
	require.NoError(t, err)

	page, err := uc.ListMovements(ctx, out.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, entity.MovementTypeIN, page.Items[0].Type)
	assert.Equal(t, int64(3), page.Items[0].Quantity)
	assert.Equal(t, int64(13), page.Items[0].Balance)
	assert.Equal(t, int64(10), page.Items[1].Balance)
}

func TestRegister_ConcurrenteMismoNombre(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCatalog(nil)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Register(ctx, notebook(1))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := uc.GetByName(ctx, "Notebook")
	require.NoError(t, err)
	assert.Equal(t, int64(workers), got.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByName_Inexistente(t *testing.T) {
	uc, _ := newCatalog(nil)

	_, err := uc.GetByName(context.Background(), "Produto Inexistente")
	require.ErrorIs(t, err, domain.ErrNotFound)
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Produto Inexistente", nf.Key)
}

func TestGetByName_SensibleAMayusculas(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCatalog(nil)
	_, err := uc.Register(ctx, notebook(1))
	require.NoError(t, err)

	_, err = uc.GetByName(ctx, "notebook")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCatalog(nil)
	out, err := uc.Register(ctx, notebook(2))
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "Notebook", got.Name)

	_, err = uc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMovements_ProductoInexistente(t *testing.T) {
	uc, _ := newCatalog(nil)

	_, err := uc.ListMovements(context.Background(), 42, 10, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_CatalogoVacio(t *testing.T) {
	uc, _ := newCatalog(nil)

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

// ──────────────────────────────────────────────────────────────────────────────
// Caché
// ──────────────────────────────────────────────────────────────────────────────

func TestCache_SegundaLecturaDesdeCache(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	uc, _ := newCatalog(cache)
	_, err := uc.Register(ctx, notebook(4))
	require.NoError(t, err)

	_, err = uc.GetByName(ctx, "Notebook")
	require.NoError(t, err)
	got, err := uc.GetByName(ctx, "Notebook")
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Quantity)

	_, err = uc.List(ctx)
	require.NoError(t, err)
	_, err = uc.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, cache.hits)
}

func TestCache_RegisterInvalida(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	uc, _ := newCatalog(cache)
	_, err := uc.Register(ctx, notebook(4))
	require.NoError(t, err)
	_, err = uc.GetByName(ctx, "Notebook")
	require.NoError(t, err)

	_, err = uc.Register(ctx, notebook(6))
	require.NoError(t, err)
	assert.Equal(t, int32(2), cache.invalidated.Load())

	got, err := uc.GetByName(ctx, "Notebook")
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Quantity, "tras invalidar se lee el valor nuevo")
}

func TestCache_FalloDeLecturaVaAlStore(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	cache.failReads = true
	uc, _ := newCatalog(cache)
	_, err := uc.Register(ctx, notebook(7))
	require.NoError(t, err)

	got, err := uc.GetByName(ctx, "Notebook")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Quantity)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Relatório
// ──────────────────────────────────────────────────────────────────────────────

type captureGenerator struct {
	records []*entity.StockRecord
	err     error
}

func (g *captureGenerator) GenerateStockReport(_ context.Context, records []*entity.StockRecord, _ time.Time) ([]byte, error) {
	g.records = records
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.3"), nil
}

func TestStockReport_Generate(t *testing.T) {
	ctx := context.Background()
	catalog, store := newCatalog(nil)
	_, err := catalog.Register(ctx, notebook(3))
	require.NoError(t, err)

	gen := &captureGenerator{}
	report := usecase.NewStockReportUseCase(memory.NewProductRepository(store), gen)
	pdf, filename, err := report.Generate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(pdf))
	assert.Regexp(t, `^estoque-\d{8}-\d{6}\.pdf$`, filename)
	require.Len(t, gen.records, 1)
	assert.Equal(t, "Notebook", gen.records[0].Name)
}

func TestStockReport_ErrorDelGenerador(t *testing.T) {
	_, store := newCatalog(nil)
	boom := errors.New("boom")
	report := usecase.NewStockReportUseCase(memory.NewProductRepository(store), &captureGenerator{err: boom})

	_, _, err := report.Generate(context.Background())
	assert.ErrorIs(t, err, boom)
}
