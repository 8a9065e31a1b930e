package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	StockUC   *inventory.StockUpdateUseCase
	ReportUC  *usecase.StockReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	estoqueHandler := NewEstoqueHandler(deps.ProductUC, deps.StockUC)
	estoque := app.Group("/estoque")
	estoque.Post("/", estoqueHandler.Register)
	estoque.Get("/", estoqueHandler.List)
	estoque.Post("/atualizar", estoqueHandler.ApplyOrder)
	// /id/:id antes que /:nome para que no lo capture la búsqueda por nombre
	estoque.Get("/id/:id", estoqueHandler.GetByID)
	estoque.Get("/id/:id/movimentos", estoqueHandler.ListMovements)
	estoque.Get("/:nome", estoqueHandler.GetByName)

	if deps.ReportUC != nil {
		reportHandler := NewReportHandler(deps.ReportUC)
		app.Get("/relatorios/estoque", reportHandler.StockPDF)
	}
}
