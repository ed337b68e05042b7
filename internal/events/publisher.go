package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"gymdesk/internal/logger"
)

// Publisher pushes persistent JSON messages onto named queues via the
// default exchange. A Publisher with an empty URL is disabled and every
// publish is a silent no-op, so callers never branch on configuration.
type Publisher struct {
	url string
}

func NewPublisher(amqpURL string) *Publisher {
	return &Publisher{url: amqpURL}
}

func (p *Publisher) Enabled() bool {
	return p != nil && p.url != ""
}

func (p *Publisher) BookingCreated(ctx context.Context, event BookingCreatedEvent) {
	p.publish(ctx, QueueBookingCreated, event)
}

func (p *Publisher) BookingCancelled(ctx context.Context, event BookingCancelledEvent) {
	p.publish(ctx, QueueBookingCancelled, event)
}

func (p *Publisher) MembershipApproved(ctx context.Context, event MembershipApprovedEvent) {
	p.publish(ctx, QueueMembershipApproved, event)
}

func (p *Publisher) publish(ctx context.Context, queue string, event interface{}) {
	if !p.Enabled() {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		logger.Errorf("events: marshal %s failed: %v", queue, err)
		return
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		logger.Errorf("events: dial failed: %v", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Errorf("events: channel open failed: %v", err)
		return
	}
	defer ch.Close()

	// Declare is idempotent; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		logger.Errorf("events: queue declare %s failed: %v", queue, err)
		return
	}

	err = ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		logger.Errorf("events: publish %s failed: %v", queue, err)
		return
	}

	logger.Debug("event published", "queue", queue)
}
