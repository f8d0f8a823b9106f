package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
)

// OrderCreatedEvent is published once a checkout has been committed.
type OrderCreatedEvent struct {
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	Status     string    `json:"status"`
	TotalPrice string    `json:"total_price"`
	LineCount  int       `json:"line_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	mu      sync.Mutex // guards channel.Publish
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the order queue.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Queue == "" {
		cfg.Queue = "order_queue"
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		cfg.Queue, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", cfg.Queue, err)
	}

	log.Printf("RabbitMQ client connected and %s declared.", cfg.Queue)

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
	}, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishOrderCreated publishes a persistent order.created message.
func (c *Client) PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         "order.created",
			MessageId:    event.OrderID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// ConsumeOrderEvents starts a goroutine that hands every order.created
// message to handler. Messages are acked on success, requeued when the
// handler fails and dropped when they cannot be decoded.
func (c *Client) ConsumeOrderEvents(handler func(OrderCreatedEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer tag
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf("Waiting for order events on %s", c.queue)

	go func() {
		for msg := range msgs {
			ack, requeue := dispatch(msg.Body, handler)
			if ack {
				if err := msg.Ack(false); err != nil {
					log.Printf("Error acking message %d: %v", msg.DeliveryTag, err)
				}
				continue
			}
			if err := msg.Nack(false, requeue); err != nil {
				log.Printf("Error nacking message %d: %v", msg.DeliveryTag, err)
			}
		}
	}()

	return nil
}

func dispatch(body []byte, handler func(OrderCreatedEvent) error) (ack, requeue bool) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("Dropping malformed order event: %v", err)
		return false, false
	}
	if err := handler(event); err != nil {
		log.Printf("Error processing order event %s: %v", event.OrderID, err)
		return false, true
	}
	return true, false
}

// LogOrderEvent is the default consumer handler: it records the event in
// the service log.
func LogOrderEvent(event OrderCreatedEvent) error {
	log.Printf("Order %s created for user %s: %d line(s), total %s, status %s",
		event.OrderID, event.UserID, event.LineCount, event.TotalPrice, event.Status)
	return nil
}
