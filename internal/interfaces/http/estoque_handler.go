package http

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
)

const (
	defaultMovementLimit = 50
	maxMovementLimit     = 200
)

// EstoqueHandler maneja el catálogo y la actualización de estoque.
type EstoqueHandler struct {
	products *usecase.ProductUseCase
	stock    *inventory.StockUpdateUseCase
}

// NewEstoqueHandler construye el handler.
func NewEstoqueHandler(products *usecase.ProductUseCase, stock *inventory.StockUpdateUseCase) *EstoqueHandler {
	return &EstoqueHandler{products: products, stock: stock}
}

// Register godoc
// @Summary      Cadastrar produto
// @Description  Si ya existe un producto con el mismo nome, suma qtd a su estoque.
// @Tags         estoque
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "nome, descricao, preco, qtd"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {string}  string
// @Router       /estoque [post]
func (h *EstoqueHandler) Register(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(msgInvalidBody)
	}
	if err := in.Validate(); err != nil {
		return writeError(c, err)
	}
	out, err := h.products.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar produtos
// @Tags         estoque
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /estoque [get]
func (h *EstoqueHandler) List(c *fiber.Ctx) error {
	out, err := h.products.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByName godoc
// @Summary      Buscar produto por nome
// @Tags         estoque
// @Produce      json
// @Param        nome  path  string  true  "Nome exato (sensível a maiúsculas)"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {string}  string
// @Router       /estoque/{nome} [get]
func (h *EstoqueHandler) GetByName(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("nome"))
	if err != nil || name == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Nome do produto é obrigatório.")
	}
	out, err := h.products.GetByName(c.UserContext(), name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Buscar produto por id
// @Tags         estoque
// @Produce      json
// @Param        id   path  int  true  "ID do produto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {string}  string
// @Router       /estoque/id/{id} [get]
func (h *EstoqueHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("ID do produto inválido.")
	}
	out, err := h.products.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Movimentos de estoque de um produto
// @Tags         estoque
// @Produce      json
// @Param        id      path   int  true   "ID do produto"
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.MovementListResponse
// @Failure      404     {string}  string
// @Router       /estoque/id/{id}/movimentos [get]
func (h *EstoqueHandler) ListMovements(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("ID do produto inválido.")
	}
	limit := c.QueryInt("limit", defaultMovementLimit)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = defaultMovementLimit
	}
	if limit > maxMovementLimit {
		limit = maxMovementLimit
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.products.ListMovements(c.UserContext(), id, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ApplyOrder godoc
// @Summary      Atualizar estoque a partir de um pedido
// @Description  Descuenta qtd de cada item. Con STOCK_COMMIT_MODE=item un rechazo puede dejar items anteriores aplicados
// @Description  (ver cabecera X-Estoque-Itens-Aplicados).
// @Tags         estoque
// @Accept       json
// @Produce      plain
// @Param        body  body  dto.OrderRequest  true  "itens: [{id, qtd}]"
// @Success      200   {string}  string  "Estoque Atualizado"
// @Failure      400   {string}  string
// @Failure      404   {string}  string
// @Router       /estoque/atualizar [post]
func (h *EstoqueHandler) ApplyOrder(c *fiber.Ctx) error {
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(msgInvalidBody)
	}
	if err := in.Validate(); err != nil {
		return writeError(c, err)
	}
	if _, err := h.stock.ApplyOrder(c.UserContext(), in.ToOrder()); err != nil {
		return writeError(c, err)
	}
	return c.SendString("Estoque Atualizado")
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
