package inventory

import "time"

// Routing key del evento publicado tras aplicar un pedido.
const EventStockUpdated = "estoque.atualizado"

// StockUpdatedEvent describe las líneas efectivamente descontadas de un pedido.
// Partial es true cuando el pedido fue rechazado en modo item después de confirmar alguna línea.
type StockUpdatedEvent struct {
	OrderID    string           `json:"pedido_id"`
	Mode       CommitMode       `json:"modo_commit"`
	Lines      []StockEventLine `json:"itens"`
	Partial    bool             `json:"parcial"`
	OccurredAt time.Time        `json:"ocorrido_em"`
}

// StockEventLine una línea aplicada.
type StockEventLine struct {
	ProductID int64 `json:"id"`
	Quantity  int64 `json:"qtd"`
}
