// Package notify is the process-wide channel for short-lived user-facing
// messages.
//
// Publishers fire-and-forget a message with a severity; the Center keeps
// the active entries in insertion order and expires each after a fixed
// lifetime. Entries are independent: never merged, never deduplicated.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// Topic carries the notification stream on the in-process pubsub.
const Topic = "n8njd.notifications"

// TTL is how long a notification stays visible unless dismissed earlier.
const TTL = 4 * time.Second

// Severity classifies a notification for display.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Notification is one transient message.
type Notification struct {
	ID          string    `json:"id"`
	Message     string    `json:"message"`
	Severity    Severity  `json:"severity"`
	PublishedAt time.Time `json:"published_at"`
}

// Bus publishes and delivers notifications over an in-process GoChannel
// pubsub.
type Bus struct {
	pubSub *gochannel.GoChannel
	logger *slog.Logger
}

// NewBus creates the notification bus.
func NewBus(logger *slog.Logger) *Bus {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 64,
		},
		watermill.NewSlogLogger(logger),
	)

	return &Bus{
		pubSub: pubSub,
		logger: logger.With("module", "notify"),
	}
}

// Publish queues a notification. Each entry gets a generated identifier.
func (b *Bus) Publish(ctx context.Context, text string, severity Severity) (Notification, error) {
	notification := Notification{
		ID:          uuid.NewString(),
		Message:     text,
		Severity:    severity,
		PublishedAt: time.Now(),
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return Notification{}, err
	}

	msg := message.NewMessage(notification.ID, payload)

	if err := b.pubSub.Publish(Topic, msg); err != nil {
		b.logger.ErrorContext(ctx, "Failed to publish notification", "error", err)

		return Notification{}, err
	}

	return notification, nil
}

// Subscribe delivers decoded notifications until ctx is done.
func (b *Bus) Subscribe(ctx context.Context) (<-chan Notification, error) {
	messages, err := b.pubSub.Subscribe(ctx, Topic)
	if err != nil {
		return nil, err
	}

	out := make(chan Notification)

	go func() {
		defer close(out)

		for msg := range messages {
			var notification Notification
			if err := json.Unmarshal(msg.Payload, &notification); err != nil {
				b.logger.Error("Failed to unmarshal notification", "error", err, "message_id", msg.UUID)
				msg.Nack()

				continue
			}

			msg.Ack()

			select {
			case out <- notification:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// Close shuts the pubsub down.
func (b *Bus) Close() error {
	return b.pubSub.Close()
}
