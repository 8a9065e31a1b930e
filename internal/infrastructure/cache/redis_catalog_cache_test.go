package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/cache"
)

const key = cache.DefaultKey

func TestGetByName_Acierto(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCatalogCache(db, time.Minute)

	mock.ExpectHGet(key, "nome:Notebook").
		SetVal(`{"id":7,"nome":"Notebook","descricao":"Dell","preco":2500.5,"qtd":3}`)

	got, ok, err := c.GetByName(context.Background(), "Notebook")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, int64(3), got.Quantity)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("2500.5")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByName_FalloDeCache(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCatalogCache(db, time.Minute)

	mock.ExpectHGet(key, "nome:Mouse").RedisNil()

	got, ok, err := c.GetByName(context.Background(), "Mouse")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByName_ErrorDeRedis(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCatalogCache(db, time.Minute)

	mock.ExpectHGet(key, "nome:Mouse").SetErr(errors.New("connection refused"))

	_, ok, err := c.GetByName(context.Background(), "Mouse")
	require.Error(t, err)
	assert.False(t, ok)
}

func TestSetByName_GuardaYFijaTTLSoloSiNoExiste(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCatalogCache(db, 30*time.Second)

	mock.Regexp().ExpectHSet(key, "nome:Notebook", `"nome":"Notebook"`).SetVal(1)
	mock.ExpectExpireNX(key, 30*time.Second).SetVal(true)

	err := c.SetByName(context.Background(), &entity.StockRecord{ID: 1, Name: "Notebook", Price: decimal.NewFromInt(10), Quantity: 2})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_NoExtiendeTTLExistente(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCatalogCache(db, 30*time.Second)
	ctx := context.Background()

	// SetAll escribe "todos" y fija el TTL; un SetByName posterior encuentra el TTL ya puesto
	mock.Regexp().ExpectHSet(key, "todos", `"nome":"A"`).SetVal(1)
	mock.ExpectExpireNX(key, 30*time.Second).SetVal(true)
	mock.Regexp().ExpectHSet(key, "nome:B", `"nome":"B"`).SetVal(1)
	mock.ExpectExpireNX(key, 30*time.Second).SetVal(false)

	require.NoError(t, c.SetAll(ctx, []*entity.StockRecord{{ID: 1, Name: "A", Quantity: 1}}))
	require.NoError(t, c.SetByName(ctx, &entity.StockRecord{ID: 2, Name: "B", Quantity: 1}))
	assert.NoError(t, mock.ExpectationsWereMet(), "nunca se emite un EXPIRE incondicional")
}

func TestGetAll_Acierto(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCatalogCache(db, 0)

	mock.ExpectHGet(key, "todos").SetVal(`[{"id":1,"nome":"A","qtd":1},{"id":2,"nome":"B","qtd":2}]`)

	list, ok, err := c.GetAll(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[1].Name)
}

func TestSetAll_SinTTLNoExpira(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCatalogCache(db, 0)

	mock.Regexp().ExpectHSet(key, "todos", `^\[.*"nome":"A".*\]$`).SetVal(1)

	err := c.SetAll(context.Background(), []*entity.StockRecord{{ID: 1, Name: "A", Quantity: 1}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidate_BorraElHash(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCatalogCache(db, time.Minute)

	mock.ExpectDel(key).SetVal(1)

	require.NoError(t, c.Invalidate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAll_JSONCorrupto(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewRedisCatalogCache(db, time.Minute)

	mock.ExpectHGet(key, "todos").SetVal(`{no es json`)

	_, ok, err := c.GetAll(context.Background())
	require.Error(t, err)
	assert.False(t, ok)
}
