package amqp

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

func NewClient(url, exchangeName, queueName string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = c.channel.QueueBind(
		c.queueName,        // queue name
		RoutingShiftClosed, // routing key
		c.exchangeName,     // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// PublishShiftClosed announces a closed shift to the export workers
func (c *Client) PublishShiftClosed(ctx context.Context, shiftID, userID string) error {
	msg := NewShiftClosedMessage(shiftID, userID)
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName,     // exchange
		RoutingShiftClosed, // routing key
		false,              // mandatory
		false,              // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    msg.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	log.Printf("📤 Published %s for shift %s (exchange=%s)", RoutingShiftClosed, shiftID, c.exchangeName)
	return nil
}

// ConsumeShiftClosed blocks handling shift.closed messages until ctx is done
func (c *Client) ConsumeShiftClosed(ctx context.Context, handler func(context.Context, *ShiftClosedMessage) error) error {
	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack (we want manual ack)
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	log.Printf("👂 Consuming %s messages from %s", RoutingShiftClosed, c.queueName)
	return handleDeliveries(ctx, msgs, handler)
}

// handleDeliveries acks handled messages, drops undecodable ones and
// requeues those whose handler failed
func handleDeliveries(ctx context.Context, msgs <-chan amqp091.Delivery, handler func(context.Context, *ShiftClosedMessage) error) error {
	for {
		select {
		case <-ctx.Done():
			log.Printf("🛑 Stopping message consumption: %v", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}

			msg, err := ShiftClosedMessageFromJSON(delivery.Body)
			if err != nil {
				log.Printf("❌ Dropping malformed message: %v", err)
				delivery.Nack(false, false)
				continue
			}

			if err := handler(ctx, msg); err != nil {
				log.Printf("❌ Failed to handle shift %s: %v", msg.ShiftID, err)
				delivery.Nack(false, true)
				continue
			}

			delivery.Ack(false)
			log.Printf("✅ Processed %s for shift %s", RoutingShiftClosed, msg.ShiftID)
		}
	}
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
