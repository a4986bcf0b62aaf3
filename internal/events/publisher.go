package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventPublisher publishes domain events to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// WatermillEventPublisher adapts any watermill publisher to EventPublisher.
type WatermillEventPublisher struct {
	publisher message.Publisher
	topic     string
	logger    *slog.Logger
}

func NewWatermillEventPublisher(publisher message.Publisher, topic string, logger *slog.Logger) *WatermillEventPublisher {
	return &WatermillEventPublisher{
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

// NewKafkaEventPublisher connects to the given brokers.
func NewKafkaEventPublisher(brokers []string, topic string, logger *slog.Logger) (*WatermillEventPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return NewWatermillEventPublisher(publisher, topic, logger), nil
}

// NewInMemoryEventPublisher returns a gochannel-backed publisher and the pub/sub behind it,
// so in-process consumers can subscribe to the same topic.
func NewInMemoryEventPublisher(topic string, logger *slog.Logger) (*WatermillEventPublisher, *gochannel.GoChannel) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
	return NewWatermillEventPublisher(pubSub, topic, logger), pubSub
}

func (p *WatermillEventPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	p.logger.DebugContext(ctx, "Event published", "event_id", event.ID, "type", event.Type, "topic", p.topic)
	return nil
}

func (p *WatermillEventPublisher) Close() error {
	return p.publisher.Close()
}
