package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/usecase"
)

// ReportHandler expone los relatórios del catálogo.
type ReportHandler struct {
	uc *usecase.StockReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.StockReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockPDF godoc
// @Summary      Relatório de estoque em PDF
// @Tags         relatorios
// @Produce      application/pdf
// @Success      200  {file}    file
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /relatorios/estoque [get]
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Generate(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdf)
}
