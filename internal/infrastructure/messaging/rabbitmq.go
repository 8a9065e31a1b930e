// Package messaging publica los eventos de estoque en RabbitMQ.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Estoque-api/internal/application/inventory"
)

const (
	// DefaultExchange exchange topic donde se publican los eventos del servicio.
	DefaultExchange = "estoque"
	exchangeType    = "topic"
	dialAttempts    = 5
	dialBackoff     = 2 * time.Second
)

// Channel subconjunto de *amqp.Channel usado por el publisher.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// SetupConn abre la conexión (con reintentos para el arranque de contenedores), un canal
// y declara el exchange topic durable.
func SetupConn(ctx context.Context, url, exchange string) (*amqp.Connection, *amqp.Channel, error) {
	var conn *amqp.Connection
	var err error
	for i := 0; i < dialAttempts; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		zerolog.Ctx(ctx).Warn().Err(err).Int("tentativa", i+1).Msg("rabbitmq: falha ao conectar")
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(dialBackoff):
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("conectar rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("abrir canal: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange,     // name
		exchangeType, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declarar exchange %s: %w", exchange, err)
	}
	return conn, ch, nil
}

var _ inventory.EventPublisher = (*Publisher)(nil)

// Publisher implementa inventory.EventPublisher sobre un canal AMQP.
type Publisher struct {
	mu       sync.Mutex
	ch       Channel
	exchange string
	appID    string
}

// NewPublisher construye el publisher. appID se envía en la propiedad app-id de cada mensaje.
func NewPublisher(ch Channel, exchange, appID string) *Publisher {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &Publisher{ch: ch, exchange: exchange, appID: appID}
}

// PublishStockUpdated publica el evento como JSON persistente con routing key estoque.atualizado.
func (p *Publisher) PublishStockUpdated(ctx context.Context, event inventory.StockUpdatedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx,
		p.exchange,                  // exchange
		inventory.EventStockUpdated, // routing key
		false,                       // mandatory
		false,                       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.OrderID,
			Timestamp:    event.OccurredAt,
			Type:         inventory.EventStockUpdated,
			AppId:        p.appID,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publicar %s: %w", inventory.EventStockUpdated, err)
	}
	return nil
}
