package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// CommitMode define la unidad de atomicidad al aplicar un pedido.
type CommitMode string

const (
	// CommitPerOrder valida y descuenta todas las líneas en una sola transacción: un pedido rechazado no cambia nada.
	CommitPerOrder CommitMode = "pedido"
	// CommitPerLine confirma cada línea al validarla: un pedido rechazado en la línea N deja aplicadas las N-1 anteriores.
	CommitPerLine CommitMode = "item"
)

// ParseCommitMode interpreta el valor de configuración STOCK_COMMIT_MODE. Vacío = CommitPerOrder.
func ParseCommitMode(s string) (CommitMode, error) {
	switch CommitMode(s) {
	case "", CommitPerOrder:
		return CommitPerOrder, nil
	case CommitPerLine:
		return CommitPerLine, nil
	}
	return "", fmt.Errorf("modo de commit desconhecido %q: %w", s, domain.ErrInvalidInput)
}

// OrderResult resultado de un pedido aplicado por completo.
type OrderResult struct {
	OrderID string
	Mode    CommitMode
	Applied []entity.OrderLine
}

// PartialApplyError envuelve el rechazo de un pedido en modo CommitPerLine.
// Applied son las líneas ya confirmadas en el store antes del fallo. El mensaje es el del error original.
type PartialApplyError struct {
	OrderID string
	Applied []entity.OrderLine
	Err     error
}

func (e *PartialApplyError) Error() string { return e.Err.Error() }

func (e *PartialApplyError) Unwrap() error { return e.Err }

// StockUpdateUseCase aplica pedidos sobre el catálogo garantizando estoque no negativo.
// Cada lectura-modificación-escritura ocurre con la fila bloqueada (TxRunner + LockForUpdate),
// por lo que dos pedidos concurrentes sobre el mismo producto nunca venden de más.
type StockUpdateUseCase struct {
	txRunner  TxRunner
	mode      CommitMode
	publisher EventPublisher
	cache     CacheInvalidator
	now       func() time.Time
}

// Option configura dependencias opcionales del caso de uso.
type Option func(*StockUpdateUseCase)

// WithPublisher publica un StockUpdatedEvent tras cada pedido con líneas confirmadas.
func WithPublisher(p EventPublisher) Option {
	return func(uc *StockUpdateUseCase) {
		if p != nil {
			uc.publisher = p
		}
	}
}

// WithCacheInvalidator invalida la caché de catálogo tras confirmar cambios.
func WithCacheInvalidator(c CacheInvalidator) Option {
	return func(uc *StockUpdateUseCase) {
		if c != nil {
			uc.cache = c
		}
	}
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *StockUpdateUseCase) { uc.now = now }
}

// NewStockUpdateUseCase construye el caso de uso.
func NewStockUpdateUseCase(txRunner TxRunner, mode CommitMode, opts ...Option) *StockUpdateUseCase {
	uc := &StockUpdateUseCase{
		txRunner:  txRunner,
		mode:      mode,
		publisher: NopPublisher{},
		cache:     nopInvalidator{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	if uc.mode == "" {
		uc.mode = CommitPerOrder
	}
	return uc
}

// Mode devuelve el modo de commit configurado.
func (uc *StockUpdateUseCase) Mode() CommitMode { return uc.mode }

// ApplyOrder procesa las líneas en el orden recibido. La primera línea sin estoque suficiente
// aborta el pedido con *domain.InsufficientStockError; una referencia inexistente con *domain.NotFoundError.
// En CommitPerLine el error viene envuelto en *PartialApplyError. Un pedido sin líneas es un no-op.
func (uc *StockUpdateUseCase) ApplyOrder(ctx context.Context, order entity.Order) (*OrderResult, error) {
	res := &OrderResult{OrderID: uuid.New().String(), Mode: uc.mode}
	if len(order.Items) == 0 {
		return res, nil
	}
	for _, line := range order.Items {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	var err error
	if uc.mode == CommitPerLine {
		err = uc.applyPerLine(ctx, order, res)
	} else {
		err = uc.applyPerOrder(ctx, order, res)
	}

	if len(res.Applied) > 0 {
		uc.afterCommit(ctx, res, err != nil)
	}
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("pedido_id", res.OrderID).
			Str("modo_commit", string(uc.mode)).
			Int("itens_aplicados", len(res.Applied)).
			Msg("pedido rejeitado")
		return nil, err
	}
	return res, nil
}

// applyPerOrder: una transacción; bloquea todas las filas referenciadas antes de validar la primera línea.
func (uc *StockUpdateUseCase) applyPerOrder(ctx context.Context, order entity.Order, res *OrderResult) error {
	var applied []entity.OrderLine
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		applied = applied[:0]
		if err := productRepo.LockForUpdate(ctx, order.ProductIDs()); err != nil {
			return err
		}
		for _, line := range order.Items {
			if err := uc.applyLine(ctx, productRepo, movRepo, res.OrderID, line); err != nil {
				return err
			}
			applied = append(applied, line)
		}
		return nil
	})
	if err != nil {
		return err
	}
	res.Applied = applied
	return nil
}

// applyPerLine: una transacción por línea (write-through); lo confirmado no se revierte.
func (uc *StockUpdateUseCase) applyPerLine(ctx context.Context, order entity.Order, res *OrderResult) error {
	for _, line := range order.Items {
		err := uc.txRunner.Run(ctx, func(
			productRepo repository.ProductRepository,
			movRepo repository.StockMovementRepository,
		) error {
			if err := productRepo.LockForUpdate(ctx, []int64{line.ProductID}); err != nil {
				return err
			}
			return uc.applyLine(ctx, productRepo, movRepo, res.OrderID, line)
		})
		if err != nil {
			applied := make([]entity.OrderLine, len(res.Applied))
			copy(applied, res.Applied)
			return &PartialApplyError{OrderID: res.OrderID, Applied: applied, Err: err}
		}
		res.Applied = append(res.Applied, line)
	}
	return nil
}

// applyLine: verifica StockActual >= CantidadSolicitada, resta, guarda y registra el movimiento OUT.
func (uc *StockUpdateUseCase) applyLine(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	orderID string,
	line entity.OrderLine,
) error {
	record, err := productRepo.GetByID(ctx, line.ProductID)
	if err != nil {
		return fmt.Errorf("buscar produto %d: %w", line.ProductID, err)
	}
	if record == nil {
		return domain.ProductNotFoundByID(line.ProductID)
	}
	if !record.CanDecrement(line.Quantity) {
		return &domain.InsufficientStockError{
			ProductID:   record.ID,
			ProductName: record.Name,
			Available:   record.Quantity,
			Requested:   line.Quantity,
		}
	}

	now := uc.now()
	record.Quantity -= line.Quantity
	record.UpdatedAt = now
	if err := productRepo.Save(ctx, record); err != nil {
		return err
	}
	return movRepo.Create(ctx, &entity.StockMovement{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		ProductID: record.ID,
		Type:      entity.MovementTypeOUT,
		Quantity:  -line.Quantity,
		Balance:   record.Quantity,
		CreatedAt: now,
	})
}

// afterCommit invalida caché y publica el evento. Los fallos se registran pero no deshacen el pedido.
func (uc *StockUpdateUseCase) afterCommit(ctx context.Context, res *OrderResult, partial bool) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("pedido_id", res.OrderID).Msg("invalidar cache do catálogo")
	}
	lines := make([]StockEventLine, 0, len(res.Applied))
	for _, l := range res.Applied {
		lines = append(lines, StockEventLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	event := StockUpdatedEvent{
		OrderID:    res.OrderID,
		Mode:       res.Mode,
		Lines:      lines,
		Partial:    partial,
		OccurredAt: uc.now(),
	}
	if err := uc.publisher.PublishStockUpdated(ctx, event); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("pedido_id", res.OrderID).Msg("publicar evento de estoque")
	}
}
