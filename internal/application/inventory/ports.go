package inventory

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Todo lo escrito dentro de fn se confirma junto o no se confirma; lo leído con
// LockForUpdate/GetByNameForUpdate queda bloqueado para otros escritores hasta el final.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// EventPublisher publica eventos de estoque ya confirmados (RabbitMQ en producción).
type EventPublisher interface {
	PublishStockUpdated(ctx context.Context, event StockUpdatedEvent) error
}

// CacheInvalidator descarta lecturas de catálogo cacheadas tras cambiar cantidades.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// NopPublisher descarta los eventos (broker no configurado).
type NopPublisher struct{}

// PublishStockUpdated no hace nada.
func (NopPublisher) PublishStockUpdated(context.Context, StockUpdatedEvent) error { return nil }

type nopInvalidator struct{}

func (nopInvalidator) Invalidate(context.Context) error { return nil }
