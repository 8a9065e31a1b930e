// Package cache implementa la caché de lecturas del catálogo sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

var (
	_ usecase.CatalogCache       = (*RedisCatalogCache)(nil)
	_ inventory.CacheInvalidator = (*RedisCatalogCache)(nil)
)

const (
	// DefaultKey hash donde vive todo el catálogo cacheado; invalidar es un único DEL.
	DefaultKey = "estoque:catalogo"
	fieldAll   = "todos"
	namePrefix = "nome:"
)

// RedisCatalogCache guarda el catálogo y los productos por nombre como campos JSON de un hash.
type RedisCatalogCache struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

// NewRedisCatalogCache construye la caché. ttl <= 0 deja las entradas sin expiración.
func NewRedisCatalogCache(client redis.Cmdable, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{client: client, key: DefaultKey, ttl: ttl}
}

// cachedProduct forma serializada de entity.StockRecord.
type cachedProduct struct {
	ID          int64           `json:"id"`
	Name        string          `json:"nome"`
	Description string          `json:"descricao"`
	Price       decimal.Decimal `json:"preco"`
	Quantity    int64           `json:"qtd"`
	CreatedAt   time.Time       `json:"criado_em"`
	UpdatedAt   time.Time       `json:"atualizado_em"`
}

func fromRecord(r *entity.StockRecord) cachedProduct {
	return cachedProduct{
		ID: r.ID, Name: r.Name, Description: r.Description, Price: r.Price,
		Quantity: r.Quantity, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func (c cachedProduct) toRecord() *entity.StockRecord {
	return &entity.StockRecord{
		ID: c.ID, Name: c.Name, Description: c.Description, Price: c.Price,
		Quantity: c.Quantity, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

// GetByName devuelve (record, true, nil) en acierto y (nil, false, nil) en fallo de caché.
func (c *RedisCatalogCache) GetByName(ctx context.Context, name string) (*entity.StockRecord, bool, error) {
	raw, ok, err := c.get(ctx, namePrefix+name)
	if err != nil || !ok {
		return nil, false, err
	}
	var p cachedProduct
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, false, fmt.Errorf("decode produto %q: %w", name, err)
	}
	return p.toRecord(), true, nil
}

// SetByName guarda un producto bajo su nombre.
func (c *RedisCatalogCache) SetByName(ctx context.Context, record *entity.StockRecord) error {
	raw, err := json.Marshal(fromRecord(record))
	if err != nil {
		return fmt.Errorf("encode produto: %w", err)
	}
	return c.set(ctx, namePrefix+record.Name, string(raw))
}

// GetAll devuelve el catálogo completo cacheado.
func (c *RedisCatalogCache) GetAll(ctx context.Context) ([]*entity.StockRecord, bool, error) {
	raw, ok, err := c.get(ctx, fieldAll)
	if err != nil || !ok {
		return nil, false, err
	}
	var list []cachedProduct
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false, fmt.Errorf("decode catálogo: %w", err)
	}
	out := make([]*entity.StockRecord, 0, len(list))
	for _, p := range list {
		out = append(out, p.toRecord())
	}
	return out, true, nil
}

// SetAll guarda el catálogo completo.
func (c *RedisCatalogCache) SetAll(ctx context.Context, records []*entity.StockRecord) error {
	list := make([]cachedProduct, 0, len(records))
	for _, r := range records {
		list = append(list, fromRecord(r))
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode catálogo: %w", err)
	}
	return c.set(ctx, fieldAll, string(raw))
}

// Invalidate borra todas las entradas del catálogo.
func (c *RedisCatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", c.key, err)
	}
	return nil
}

func (c *RedisCatalogCache) get(ctx context.Context, field string) ([]byte, bool, error) {
	raw, err := c.client.HGet(ctx, c.key, field).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis hget %s: %w", field, err)
	}
	return raw, true, nil
}

func (c *RedisCatalogCache) set(ctx context.Context, field, value string) error {
	if err := c.client.HSet(ctx, c.key, field, value).Err(); err != nil {
		return fmt.Errorf("redis hset %s: %w", field, err)
	}
	// NX: el TTL corre desde la primera escritura tras Invalidate; escrituras posteriores no lo extienden.
	if c.ttl > 0 {
		if err := c.client.ExpireNX(ctx, c.key, c.ttl).Err(); err != nil {
			return fmt.Errorf("redis expire: %w", err)
		}
	}
	return nil
}

// NewClient abre un cliente Redis y verifica la conexión con PING.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}
