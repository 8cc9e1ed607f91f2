// Package rabbitmq publishes committed domain events to the change feed
// exchange. Publishing is best effort: a broker failure is logged and the
// command that committed never sees it.
package rabbitmq

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// DefaultExchange is the topic exchange the change feed publishes to.
const DefaultExchange = "change_feed"

// Client wraps one AMQP connection and channel.
type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewClient dials the broker and opens a channel.
func NewClient(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Client{conn: conn, ch: ch}, nil
}

// Close releases the channel and connection.
func (c *Client) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// envelope is the wire form of one change feed entry.
type envelope struct {
	Name       string    `json:"name"`
	TenantID   string    `json:"tenant_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// ChangeFeedPublisher implements ports.EventPublisher on a topic exchange.
// The routing key is <tenant>.<entity>.<action>, so a consumer can bind to
// one tenant's whole feed or to a single event kind across tenants.
type ChangeFeedPublisher struct {
	client   *Client
	exchange string
	log      *zap.Logger
}

// NewChangeFeedPublisher declares the topic exchange and returns a publisher.
func NewChangeFeedPublisher(client *Client, exchange string, log *zap.Logger) (*ChangeFeedPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	err := client.ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &ChangeFeedPublisher{
		client:   client,
		exchange: exchange,
		log:      log,
	}, nil
}

// Publish pushes each event onto the exchange. Failures are logged and
// swallowed; the transaction that raised the events already committed.
func (p *ChangeFeedPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) {
	for _, event := range events {
		key := routingKey(event)

		body, err := json.Marshal(envelope{
			Name:       event.EventName(),
			TenantID:   event.TenantID().String(),
			OccurredAt: event.OccurredAt(),
			Payload:    event,
		})
		if err != nil {
			p.log.Error("change feed marshal failed",
				zap.String("event", event.EventName()),
				zap.Error(err))
			continue
		}

		err = p.client.ch.PublishWithContext(ctx, p.exchange, key, false, false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        body,
				Timestamp:   event.OccurredAt(),
			})
		if err != nil {
			p.log.Error("change feed publish failed",
				zap.String("event", event.EventName()),
				zap.String("routing_key", key),
				zap.Error(err))
		}
	}
}

// routingKey turns "order.item_ready" for tenant T into "T.order.item_ready".
func routingKey(event kernel.DomainEvent) string {
	return strings.Join([]string{
		event.TenantID().String(),
		event.EventName(),
	}, ".")
}
