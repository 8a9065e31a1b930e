package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain"
)

// Cabeceras informativas de un pedido rechazado en modo item.
const (
	HeaderAppliedItems = "X-Estoque-Itens-Aplicados"
	HeaderCommitMode   = "X-Estoque-Modo-Commit"
)

const msgInvalidBody = "Corpo da requisição inválido."

// writeError traduce errores de dominio a respuestas HTTP.
// Los rechazos de negocio van en texto plano con el mensaje del error; los fallos internos en JSON.
func writeError(c *fiber.Ctx, err error) error {
	var partial *inventory.PartialApplyError
	if errors.As(err, &partial) {
		c.Set(HeaderCommitMode, string(inventory.CommitPerLine))
		c.Set(HeaderAppliedItems, strconv.Itoa(len(partial.Applied)))
	}

	var validation *domain.ValidationError
	var insufficient *domain.InsufficientStockError
	var notFound *domain.NotFoundError
	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).SendString(validation.Message)
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusBadRequest).SendString(insufficient.Error())
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).SendString(notFound.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).SendString(msgInvalidBody)
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).SendString(err.Error())
	}

	zerolog.Ctx(c.UserContext()).Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("erro interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "erro interno"})
}
