package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// Routing keys for order lifecycle events.
const (
	EventOrderPlaced    = "order.placed"
	EventOrderCompleted = "order.completed"
	EventOrderCanceled  = "order.canceled"
)

const ordersExchange = "orders_topic"

// OrderEvent is the message published whenever a receipt changes status.
type OrderEvent struct {
	Event      string    `json:"event"`
	OrderID    uint      `json:"order_id"`
	UserID     uint      `json:"user_id"`
	Status     string    `json:"status"`
	TotalPrice string    `json:"total_price"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher publishes order lifecycle events. The order service treats
// a nil publisher as "events disabled".
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
	Close() error
}

// AMQPEventPublisher publishes order events to a RabbitMQ topic exchange as
// persistent JSON messages, routed by the event name.
type AMQPEventPublisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// NewAMQPEventPublisher connects to RabbitMQ and declares the orders
// exchange.
func NewAMQPEventPublisher(url string) (*AMQPEventPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		ordersExchange, // name
		"topic",        // kind
		true,           // durable
		false,          // auto-delete
		false,          // internal
		false,          // no-wait
		nil,            // args
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Println("RabbitMQ connection established successfully")
	return &AMQPEventPublisher{conn: conn, channel: channel}, nil
}

// PublishOrderEvent publishes one event with the event name as routing key.
func (p *AMQPEventPublisher) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		ordersExchange, // exchange
		event.Event,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.OccurredAt,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Close closes the channel and connection.
func (p *AMQPEventPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
