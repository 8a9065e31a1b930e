package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// CatalogCache caché de lecturas del catálogo (Redis en producción).
// Un fallo de caché nunca impide responder: se registra y se va al store.
type CatalogCache interface {
	GetByName(ctx context.Context, name string) (*entity.StockRecord, bool, error)
	SetByName(ctx context.Context, record *entity.StockRecord) error
	GetAll(ctx context.Context) ([]*entity.StockRecord, bool, error)
	SetAll(ctx context.Context, records []*entity.StockRecord) error
	Invalidate(ctx context.Context) error
}

const msgQuantityOverflow = "Quantidade acumulada do produto excede o limite permitido."

// ProductUseCase casos de uso del catálogo: cadastro con acumulación de cantidad y lecturas.
type ProductUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.ProductRepository
	movRepo  repository.StockMovementRepository
	cache    CatalogCache
	group    singleflight.Group
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	repo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	cache CatalogCache,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner: txRunner,
		repo:     repo,
		movRepo:  movRepo,
		cache:    cache,
		now:      time.Now,
	}
}

// Register da de alta un producto o, si ya existe uno con el mismo nombre, suma su cantidad.
// Precio y descripción del registro existente no cambian. Devuelve el producto recibido con su ID.
func (uc *ProductUseCase) Register(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product := entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
	}
	id, err := uc.register(ctx, product)
	if errors.Is(err, domain.ErrDuplicate) {
		// otra alta con el mismo nombre ganó la carrera: ahora existe y se acumula
		id, err = uc.register(ctx, product)
	}
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx)

	return &dto.ProductResponse{
		ID:          id,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
	}, nil
}

func (uc *ProductUseCase) register(ctx context.Context, product entity.Product) (int64, error) {
	var id int64
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		now := uc.now()
		record, err := productRepo.GetByNameForUpdate(ctx, product.Name)
		if err != nil {
			return err
		}
		if record != nil {
			if product.Quantity > math.MaxInt64-record.Quantity {
				return &domain.ValidationError{Message: msgQuantityOverflow}
			}
			record.Quantity += product.Quantity
		} else {
			record = entity.NewStockRecord(product)
			record.CreatedAt = now
		}
		record.UpdatedAt = now
		if err := productRepo.Save(ctx, record); err != nil {
			return err
		}
		id = record.ID
		return movRepo.Create(ctx, &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: record.ID,
			Type:      entity.MovementTypeIN,
			Quantity:  product.Quantity,
			Balance:   record.Quantity,
			CreatedAt: now,
		})
	})
	return id, err
}

// List devuelve el catálogo completo en el orden natural del store.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	if uc.cache != nil {
		if cached, ok, err := uc.cache.GetAll(ctx); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("cache do catálogo: leitura")
		} else if ok {
			return toProductResponses(cached), nil
		}
	}

	v, err, _ := uc.group.Do("todos", func() (interface{}, error) {
		list, err := uc.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if uc.cache != nil {
			if err := uc.cache.SetAll(ctx, list); err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Msg("cache do catálogo: escrita")
			}
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponses(v.([]*entity.StockRecord)), nil
}

// GetByName devuelve el producto con ese nombre exacto o *domain.NotFoundError.
func (uc *ProductUseCase) GetByName(ctx context.Context, name string) (*dto.ProductResponse, error) {
	if uc.cache != nil {
		if cached, ok, err := uc.cache.GetByName(ctx, name); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("nome", name).Msg("cache do catálogo: leitura")
		} else if ok {
			return toProductResponse(cached), nil
		}
	}

	v, err, _ := uc.group.Do("nome:"+name, func() (interface{}, error) {
		record, err := uc.repo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if record == nil {
			return nil, domain.ProductNotFoundByName(name)
		}
		if uc.cache != nil {
			if err := uc.cache.SetByName(ctx, record); err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Str("nome", name).Msg("cache do catálogo: escrita")
			}
		}
		return record, nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(v.(*entity.StockRecord)), nil
}

// GetByID devuelve el producto por ID o *domain.NotFoundError.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	record, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ProductNotFoundByID(id)
	}
	return toProductResponse(record), nil
}

// ListMovements lista el libro de movimientos de un producto, más recientes primero.
func (uc *ProductUseCase) ListMovements(ctx context.Context, productID int64, limit, offset int) (*dto.MovementListResponse, error) {
	record, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ProductNotFoundByID(productID)
	}
	list, err := uc.movRepo.ListByProduct(ctx, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar movimentos do produto %s: %w", strconv.FormatInt(productID, 10), err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:        m.ID,
			OrderID:   m.OrderID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Balance:   m.Balance,
			CreatedAt: m.CreatedAt,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *ProductUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("invalidar cache do catálogo")
	}
}

func toProductResponse(r *entity.StockRecord) *dto.ProductResponse {
	if r == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
	}
}

func toProductResponses(list []*entity.StockRecord) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toProductResponse(r))
	}
	return items
}
