package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// eventSource identifies this client in event envelopes.
const eventSource = "coursemaster-client"

// EventPublisher defines the interface for publishing UI events
type EventPublisher interface {
	PublishUIEvent(ctx context.Context, event *UIEvent) error
	Close() error
}

// Bus is the in-process pub/sub carrying UI events between components,
// backed by Watermill's gochannel transport. It is the explicit reactive
// subscription layer: components publish state changes, screens subscribe.
type Bus struct {
	pubSub *gochannel.GoChannel
	logger *slog.Logger
	topic  string
}

// BusConfig holds configuration for the event bus
type BusConfig struct {
	Topic  string
	Logger *slog.Logger
}

// NewBus creates a new in-process event bus
func NewBus(config BusConfig) *Bus {
	logger := watermill.NewSlogLogger(config.Logger)

	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, logger)

	topic := config.Topic
	if topic == "" {
		topic = "coursemaster.ui"
	}

	return &Bus{
		pubSub: pubSub,
		logger: config.Logger,
		topic:  topic,
	}
}

// PublishUIEvent publishes a UI event on the bus
func (b *Bus) PublishUIEvent(ctx context.Context, event *UIEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ui event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))

	if err := b.pubSub.Publish(b.topic, msg); err != nil {
		b.logger.Error("Failed to publish ui event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish ui event: %w", err)
	}

	b.logger.Debug("Published ui event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", b.topic)

	return nil
}

// Subscribe returns a channel of raw event messages. Consumers must Ack each
// message; the channel closes when ctx is cancelled.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, b.topic)
}

// Close closes the bus and releases resources
func (b *Bus) Close() error {
	return b.pubSub.Close()
}

// NewUIEvent builds the common event envelope.
func NewUIEvent(eventType EventType, data interface{}) *UIEvent {
	return &UIEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   "1.0",
		Data:      data,
	}
}

// MockEventPublisher is a mock implementation for testing
type MockEventPublisher struct {
	Events []UIEvent
	Logger *slog.Logger
}

// NewMockEventPublisher creates a new mock event publisher
func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{
		Events: make([]UIEvent, 0),
		Logger: logger,
	}
}

// PublishUIEvent stores the event in memory (for testing)
func (m *MockEventPublisher) PublishUIEvent(ctx context.Context, event *UIEvent) error {
	m.Events = append(m.Events, *event)
	m.Logger.Debug("Mock: Published ui event",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

// Close is a no-op for the mock publisher
func (m *MockEventPublisher) Close() error {
	return nil
}

// GetPublishedEvents returns all published events (for testing)
func (m *MockEventPublisher) GetPublishedEvents() []UIEvent {
	return m.Events
}

// ClearEvents clears all published events (for testing)
func (m *MockEventPublisher) ClearEvents() {
	m.Events = make([]UIEvent, 0)
}
