package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Estoque-api/docs"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	infracache "github.com/jhoicas/Estoque-api/internal/infrastructure/cache"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/Estoque-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/Estoque-api/internal/interfaces/http"
	"github.com/jhoicas/Estoque-api/pkg/config"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// @title        Estoque API
// @version      1.0
// @description  Catálogo de produtos e atualização de estoque por pedido.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("modo_commit", cfg.Stock.CommitMode).
		Msg("iniciando aplicación")

	mode, err := inventory.ParseCommitMode(cfg.Stock.CommitMode)
	if err != nil {
		log.Fatal().Err(err).Msg("STOCK_COMMIT_MODE")
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("abrir store")
	}
	defer st.Close()

	// Caché de catálogo (opcional)
	var catalogCache usecase.CatalogCache
	stockOpts := []inventory.Option{}
	if cfg.Redis.Enabled() {
		client, err := infracache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		redisCache := infracache.NewRedisCatalogCache(client, cfg.Redis.TTL)
		catalogCache = redisCache
		stockOpts = append(stockOpts, inventory.WithCacheInvalidator(redisCache))
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("cache de catálogo activa")
	}

	// Eventos de estoque (opcional)
	if cfg.RabbitMQ.Enabled() {
		conn, ch, err := messaging.SetupConn(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer conn.Close()
		stockOpts = append(stockOpts, inventory.WithPublisher(messaging.NewPublisher(ch, cfg.RabbitMQ.Exchange, cfg.App.Name)))
		log.Info().Str("exchange", cfg.RabbitMQ.Exchange).Msg("publicación de eventos activa")
	}

	productUC := usecase.NewProductUseCase(st.TxRunner, st.ProductRepo, st.MovementRepo, catalogCache)
	stockUC := inventory.NewStockUpdateUseCase(st.TxRunner, mode, stockOpts...)
	reportUC := usecase.NewStockReportUseCase(st.ProductRepo, infrapdf.NewStockReportGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Estoque API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC: productUC,
		StockUC:   stockUC,
		ReportUC:  reportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
