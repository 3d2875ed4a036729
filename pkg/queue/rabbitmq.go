package queue

import (
	"encoding/json"
	"fmt"

	"farmlot/pkg/config"
	"farmlot/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ListingEventsExchange  = "listing_events"
	CacheInvalidationQueue = "storefront_cache_invalidation"
	ListingChangedKey      = "listing.changed"
)

// ListingEvent is published by the admin service after every successful
// write and consumed by the storefront to drop its cached listing set.
type ListingEvent struct {
	Type      string `json:"type"`
	ListingID string `json:"listing_id"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		ListingEventsExchange, // name
		"direct",              // type
		true,                  // durable
		false,                 // auto-deleted
		false,                 // internal
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		CacheInvalidationQueue, // name
		true,                   // durable
		false,                  // delete when unused
		false,                  // exclusive
		false,                  // no-wait
		nil,                    // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		CacheInvalidationQueue, // queue name
		ListingChangedKey,      // routing key
		ListingEventsExchange,  // exchange
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) PublishListingEvent(event ListingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = c.channel.Publish(
		ListingEventsExchange, // exchange
		ListingChangedKey,     // routing key
		false,                 // mandatory
		false,                 // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// ConsumeListingEvents delivers each listing event to handler on a
// dedicated goroutine until the channel is closed.
func (c *Client) ConsumeListingEvents(handler func(ListingEvent)) error {
	deliveries, err := c.channel.Consume(
		CacheInvalidationQueue, // queue
		"",                     // consumer
		true,                   // auto-ack
		false,                  // exclusive
		false,                  // no-local
		false,                  // no-wait
		nil,                    // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}

	go func() {
		for d := range deliveries {
			var event ListingEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				c.logger.Error("Failed to decode listing event: %v", err)
				continue
			}
			handler(event)
		}
	}()

	return nil
}

func (c *Client) Close() {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
