// Package events publishes domain events to RabbitMQ. Publishing is best
// effort: callers log failures and carry on.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"resmatic/internal/model"
)

const (
	// DefaultInviteQueue is the queue invite events are routed to.
	DefaultInviteQueue = "staff.invite.created"
	// DefaultDialTimeout bounds connecting and the AMQP handshake. Publishing
	// runs inside the request, so an unreachable broker must fail fast.
	DefaultDialTimeout = 3 * time.Second
)

// InviteCreatedEvent is emitted after a staff invite is committed. The token
// is included so a mailer can build the acceptance link.
type InviteCreatedEvent struct {
	InviteID     uuid.UUID        `json:"invite_id"`
	RestaurantID uuid.UUID        `json:"restaurant_id"`
	Email        string           `json:"email"`
	TenantRole   model.TenantRole `json:"tenant_role"`
	Token        string           `json:"token"`
	ExpiresAt    time.Time        `json:"expires_at"`
	InvitedBy    uuid.UUID        `json:"invited_by"`
}

// Publisher delivers domain events.
type Publisher interface {
	PublishInviteCreated(ctx context.Context, event InviteCreatedEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishInviteCreated(context.Context, InviteCreatedEvent) error { return nil }

// AMQPPublisher opens a connection per publish. Invites are rare enough that
// a long-lived channel is not worth the reconnect logic.
type AMQPPublisher struct {
	url         string
	queue       string
	dialTimeout time.Duration
}

// NewAMQPPublisher returns a publisher for url, or a NopPublisher when url is
// empty.
func NewAMQPPublisher(url, queue string) Publisher {
	if url == "" {
		return NopPublisher{}
	}
	if queue == "" {
		queue = DefaultInviteQueue
	}
	return &AMQPPublisher{url: url, queue: queue, dialTimeout: DefaultDialTimeout}
}

// PublishInviteCreated declares the durable queue and sends a persistent
// JSON message to it.
func (p *AMQPPublisher) PublishInviteCreated(ctx context.Context, event InviteCreatedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal invite event: %w", err)
	}
	return p.publish(ctx, body)
}

func (p *AMQPPublisher) publish(ctx context.Context, body []byte) error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(p.dialTimeout),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}

	log.Debug().Str("queue", p.queue).Int("bytes", len(body)).Msg("event published")
	return nil
}
