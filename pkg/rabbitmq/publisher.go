package rabbitmq

import (
	"catalog-service/config"
	"context"
	"encoding/json"
	"errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"sync"
)

var ErrNotConnected = errors.New("rabbitmq: not connected")

// Publisher sends JSON messages to the transcoding exchange. A single channel
// is shared, so publishes are serialised.
type Publisher struct {
	mu  sync.Mutex
	ch  *amqp.Channel
	cfg *config.RabbitMQ
}

func NewPublisher(conn *amqp.Connection, cfg *config.RabbitMQ) (*Publisher, error) {
	if conn == nil {
		return &Publisher{cfg: cfg}, nil
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(TranscodeExchange, cfg.Kind, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, err
	}
	return &Publisher{ch: ch, cfg: cfg}, nil
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, message any) error {
	if p.ch == nil {
		return ErrNotConnected
	}
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, TranscodeExchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (p *Publisher) Close() error {
	if p.ch == nil {
		return nil
	}
	return p.ch.Close()
}
