package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Estoque-api/pkg/config"
)

// Adapters reúne los adaptadores de persistencia del driver elegido.
type Adapters struct {
	TxRunner     inventory.TxRunner
	ProductRepo  repository.ProductRepository
	MovementRepo repository.StockMovementRepository
	Close        func()
}

// Open abre el driver configurado en STORE_DRIVER. Con postgres aplica las migraciones.
func Open(ctx context.Context, cfg *config.Config) (*Adapters, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Adapters{
			TxRunner:     postgres.NewTxRunner(pool),
			ProductRepo:  postgres.NewProductRepository(pool),
			MovementRepo: postgres.NewStockMovementRepository(pool),
			Close:        pool.Close,
		}, nil
	case config.StoreMemory:
		return Memory(), nil
	}
	return nil, fmt.Errorf("driver desconocido %q", cfg.Store.Driver)
}

// Memory adaptadores sobre un store en memoria nuevo.
func Memory() *Adapters {
	s := memory.NewStore()
	return &Adapters{
		TxRunner:     memory.NewTxRunner(s),
		ProductRepo:  memory.NewProductRepository(s),
		MovementRepo: memory.NewStockMovementRepository(s),
		Close:        func() {},
	}
}
