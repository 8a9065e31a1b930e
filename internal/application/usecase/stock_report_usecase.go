package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// StockReportGenerator puerto para renderizar el catálogo como documento (Maroto en producción).
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, records []*entity.StockRecord, generatedAt time.Time) ([]byte, error)
}

// StockReportUseCase genera el relatório de estoque del catálogo completo.
type StockReportUseCase struct {
	repo      repository.ProductRepository
	generator StockReportGenerator
	now       func() time.Time
}

// NewStockReportUseCase construye el caso de uso inyectando el repositorio y el generador.
func NewStockReportUseCase(repo repository.ProductRepository, generator StockReportGenerator) *StockReportUseCase {
	return &StockReportUseCase{repo: repo, generator: generator, now: time.Now}
}

// Generate devuelve el PDF y un nombre de archivo con la fecha de generación.
func (uc *StockReportUseCase) Generate(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	records, err := uc.repo.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("relatorio: listar produtos: %w", err)
	}
	generatedAt := uc.now()
	pdfBytes, err = uc.generator.GenerateStockReport(ctx, records, generatedAt)
	if err != nil {
		return nil, "", fmt.Errorf("relatorio: gerar pdf: %w", err)
	}
	return pdfBytes, fmt.Sprintf("estoque-%s.pdf", generatedAt.Format("20060102-150405")), nil
}
