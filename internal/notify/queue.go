package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"enquirycrm/internal/config"
	"enquirycrm/internal/logger"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the publishing half of an AMQP channel.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// FollowUpDueEvent is published once per due enquiry.
type FollowUpDueEvent struct {
	EnquiryID      uint       `json:"enquiryId"`
	CustomerName   string     `json:"customerName"`
	Status         string     `json:"status"`
	SalesPersonID  *uint      `json:"salesPersonId"`
	NextFollowUpAt *time.Time `json:"nextFollowUpAt"`
	WindowFrom     time.Time  `json:"windowFrom"`
	WindowTo       time.Time  `json:"windowTo"`
}

// QueuePublisher publishes follow-up events to a RabbitMQ exchange.
type QueuePublisher struct {
	ch         Channel
	exchange   string
	routingKey string
	now        func() time.Time
	closers    []func() error
}

// NewQueuePublisher wraps an open channel.
func NewQueuePublisher(ch Channel, exchange, routingKey string) *QueuePublisher {
	return &QueuePublisher{ch: ch, exchange: exchange, routingKey: routingKey, now: time.Now}
}

// DialQueue connects to RabbitMQ and declares the durable topic exchange.
func DialQueue(cfg config.QueueConfig) (*QueuePublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}
	p := NewQueuePublisher(ch, cfg.Exchange, cfg.RoutingKey)
	p.closers = []func() error{ch.Close, conn.Close}
	return p, nil
}

func (p *QueuePublisher) Name() string { return "queue" }

// Notify publishes one persistent message per enquiry and stops at the first
// failure.
func (p *QueuePublisher) Notify(ctx context.Context, d Digest) error {
	for _, e := range d.Enquiries {
		body, err := json.Marshal(FollowUpDueEvent{
			EnquiryID:      e.ID,
			CustomerName:   e.CustomerName,
			Status:         string(e.Status),
			SalesPersonID:  e.AssignedToID,
			NextFollowUpAt: e.NextFollowUpAt,
			WindowFrom:     d.From,
			WindowTo:       d.To,
		})
		if err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
		err = p.ch.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    p.now().UTC(),
			Type:         "enquiry.follow_up.due",
			Body:         body,
		})
		if err != nil {
			return fmt.Errorf("failed to publish follow-up for enquiry %d: %w", e.ID, err)
		}
	}
	logger.For("QUEUE").WithField("count", len(d.Enquiries)).Info("Follow-up events published")
	return nil
}

// Close releases the channel and connection opened by DialQueue.
func (p *QueuePublisher) Close() error {
	var first error
	for _, c := range p.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
