package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/domain"
)

func init() {
	// preco viaja como número JSON (2500.0), no como string, igual que en los clientes existentes.
	decimal.MarshalJSONWithoutQuotes = true
}

// ProductRequest body para POST /estoque.
type ProductRequest struct {
	Name        string          `json:"nome"`
	Description string          `json:"descricao"`
	Price       decimal.Decimal `json:"preco"`
	Quantity    int64           `json:"qtd"`
}

// ProductResponse salida de un producto del catálogo.
// ID se omite cuando el producto aún no tiene registro (no ocurre en respuestas del store).
type ProductResponse struct {
	ID          int64           `json:"id,omitempty"`
	Name        string          `json:"nome"`
	Description string          `json:"descricao"`
	Price       decimal.Decimal `json:"preco"`
	Quantity    int64           `json:"qtd"`
}

// Validate aplica las reglas de cadastro en el orden que esperan los clientes:
// descripción, cantidad, precio y por último nombre.
func (r ProductRequest) Validate() error {
	switch {
	case r.Description == "":
		return &domain.ValidationError{Message: "Descrição do produto é obrigatória."}
	case r.Quantity <= 0:
		return &domain.ValidationError{Message: "Quantidade do produto deve ser maior que zero."}
	case r.Price.Sign() <= 0:
		return &domain.ValidationError{Message: "Preço do produto deve ser maior que zero."}
	case r.Name == "":
		return &domain.ValidationError{Message: "Nome do produto é obrigatório."}
	}
	return nil
}
