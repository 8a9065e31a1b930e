package main

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/store"
	"github.com/jhoicas/Estoque-api/pkg/config"
)

func TestParseCSV_CabeceraYComaDecimal(t *testing.T) {
	in := "nome;descricao;preco;qtd\nNotebook;Dell;2500,50;10\nMouse; Sem fio ;35.9;3\n"

	rows, invalid, err := parseCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, invalid)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "Notebook", rows[0].Request.Name)
	assert.True(t, decimal.RequireFromString("2500.50").Equal(rows[0].Request.Price))
	assert.Equal(t, int64(10), rows[0].Request.Quantity)
	assert.Equal(t, "Sem fio", rows[1].Request.Description)
}

func TestParseCSV_SinCabecera(t *testing.T) {
	rows, invalid, err := parseCSV(strings.NewReader("Teclado;ABNT2;120;1\n"))
	require.NoError(t, err)
	assert.Empty(t, invalid)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Line)
}

func TestParseCSV_Latin1(t *testing.T) {
	// "Café;Torrado em grão;25;4" en ISO-8859-1
	in := "Caf\xe9;Torrado em gr\xe3o;25;4\n"

	rows, _, err := parseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Café", rows[0].Request.Name)
	assert.Equal(t, "Torrado em grão", rows[0].Request.Description)
}

func TestParseCSV_LineasInvalidasSeInforman(t *testing.T) {
	in := strings.Join([]string{
		"Notebook;;2500;10",   // sin descripción
		"Mouse;Óptico;0;1",    // precio cero
		"Monitor;24pol;abc;1", // precio no numérico
		"Cabo;HDMI;10",        // columnas
		"Hub;USB;40;2",
	}, "\n")

	rows, invalid, err := parseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Hub", rows[0].Request.Name)

	require.Len(t, invalid, 4)
	assert.Equal(t, 1, invalid[0].Line)
	assert.EqualError(t, invalid[0].Err, "Descrição do produto é obrigatória.")
	assert.EqualError(t, invalid[1].Err, "Preço do produto deve ser maior que zero.")
	assert.Contains(t, invalid[2].Error(), "línea 3")
	assert.Contains(t, invalid[3].Err.Error(), "4 columnas")
}

func TestSeed_NombresRepetidosAcumulan(t *testing.T) {
	st := store.Memory()
	products := usecase.NewProductUseCase(st.TxRunner, st.ProductRepo, st.MovementRepo, nil)

	rows, _, err := parseCSV(strings.NewReader("Notebook;Dell;2500;10\nNotebook;Outro;1;5\n"))
	require.NoError(t, err)

	n, err := seed(context.Background(), products, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := products.GetByName(context.Background(), "Notebook")
	require.NoError(t, err)
	assert.Equal(t, int64(15), got.Quantity)
	assert.Equal(t, "Dell", got.Description)
}

func TestCheckDriver_RechazaMemoria(t *testing.T) {
	err := checkDriver(config.StoreConfig{Driver: config.StoreMemory})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER=postgres")

	assert.NoError(t, checkDriver(config.StoreConfig{Driver: config.StorePostgres}))
}
