package helpers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitPublisher wraps an AMQP channel with a durable work queue and,
// optionally, a topic exchange for domain events.
type RabbitPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	Queue    string
	Exchange string
}

func NewRabbitPublisher(url, queue, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	p := &RabbitPublisher{conn: conn, ch: ch, Queue: queue, Exchange: exchange}
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		p.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	if exchange != "" {
		if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
			p.Close()
			return nil, fmt.Errorf("declare exchange: %w", err)
		}
	}
	return p, nil
}

func (p *RabbitPublisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// PublishJSON publishes a JSON-encoded message to the work queue.
func (p *RabbitPublisher) PublishJSON(ctx context.Context, body any) error {
	return p.publish(ctx, "", p.Queue, body)
}

// PublishEvent publishes a JSON-encoded message to the topic exchange.
func (p *RabbitPublisher) PublishEvent(ctx context.Context, routingKey string, body any) error {
	if p.Exchange == "" {
		return fmt.Errorf("no events exchange configured")
	}
	return p.publish(ctx, p.Exchange, routingKey, body)
}

func (p *RabbitPublisher) publish(ctx context.Context, exchange, key string, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx,
		exchange,
		key,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Type:         key,
			Body:         b,
		},
	)
}
