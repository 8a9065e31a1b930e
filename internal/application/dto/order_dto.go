package dto

import (
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// OrderRequest body para POST /estoque/atualizar.
type OrderRequest struct {
	Items []OrderItemRequest `json:"itens"`
}

// OrderItemRequest una línea del pedido: id del producto y cantidad a descontar.
type OrderItemRequest struct {
	ID       int64 `json:"id"`
	Quantity int64 `json:"qtd"`
}

// Validate rechaza pedidos sin líneas o con cantidades no positivas.
func (r OrderRequest) Validate() error {
	if len(r.Items) == 0 {
		return &domain.ValidationError{Message: "Itens do pedido não podem ser vazios."}
	}
	for _, it := range r.Items {
		if it.Quantity <= 0 {
			return &domain.ValidationError{Message: "Quantidade do item deve ser maior que zero."}
		}
	}
	return nil
}

// ToOrder convierte el body en el pedido de dominio, conservando el orden de las líneas.
func (r OrderRequest) ToOrder() entity.Order {
	lines := make([]entity.OrderLine, 0, len(r.Items))
	for _, it := range r.Items {
		lines = append(lines, entity.OrderLine{ProductID: it.ID, Quantity: it.Quantity})
	}
	return entity.Order{Items: lines}
}

// MovementResponse salida de un movimiento del libro de estoque.
type MovementResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"pedido_id,omitempty"`
	ProductID int64     `json:"produto_id"`
	Type      string    `json:"tipo"`
	Quantity  int64     `json:"qtd"`
	Balance   int64     `json:"saldo"`
	CreatedAt time.Time `json:"criado_em"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
