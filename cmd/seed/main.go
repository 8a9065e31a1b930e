// seed carga productos en el catálogo a partir de un CSV separado por ';'
// (nome;descricao;preco;qtd, UTF-8 o ISO-8859-1).
//
// Uso: go run ./cmd/seed [ruta/produtos.csv]
// Por defecto lee produtos.csv del directorio actual. Usa el mismo STORE_DRIVER que la API,
// que debe ser persistente (postgres); nombres repetidos suman cantidad igual que POST /estoque.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/store"
	"github.com/jhoicas/Estoque-api/pkg/config"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

func main() {
	path := "produtos.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "estoque-seed"})
	if err := checkDriver(cfg.Store); err != nil {
		log.Fatal().Err(err).Msg("STORE_DRIVER")
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("arquivo", path).Msg("abrir CSV")
	}
	defer f.Close()

	rows, invalid, err := parseCSV(f)
	if err != nil {
		log.Fatal().Err(err).Str("arquivo", path).Msg("leer CSV")
	}
	for _, e := range invalid {
		log.Warn().Int("linha", e.Line).Err(e.Err).Msg("línea descartada")
	}

	ctx := log.Zerolog().WithContext(context.Background())
	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("abrir store")
	}
	defer st.Close()

	n, err := seed(ctx, usecase.NewProductUseCase(st.TxRunner, st.ProductRepo, st.MovementRepo, nil), rows)
	if err != nil {
		log.Error().Err(err).Int("cargados", n).Msg("carga interrumpida")
		return
	}
	log.Info().
		Int("cargados", n).
		Int("descartados", len(invalid)).
		Str("driver", cfg.Store.Driver).
		Msg("carga finalizada")
}

// checkDriver rechaza el store en memoria: lo cargado se perdería al terminar el proceso.
func checkDriver(cfg config.StoreConfig) error {
	if cfg.Driver == config.StoreMemory {
		return fmt.Errorf("seed requiere STORE_DRIVER=%s; con %q los datos no sobreviven al proceso", config.StorePostgres, cfg.Driver)
	}
	return nil
}

// registrar es lo que seed necesita del catálogo.
type registrar interface {
	Register(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error)
}

// seed registra las filas en orden y se detiene en el primer error del store.
func seed(ctx context.Context, products registrar, rows []seedRow) (int, error) {
	for i, row := range rows {
		if _, err := products.Register(ctx, row.Request); err != nil {
			return i, rowError{Line: row.Line, Err: err}
		}
	}
	return len(rows), nil
}
