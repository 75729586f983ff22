// Package events records operator-visible job outcomes. Every scheduled job
// finishes by recording a server event: a row in the audit feed plus a
// JetStream publish for live dashboards. The row is the source of truth;
// a failed publish is logged and never fails the job.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/clickchain/settlement/internal/logger"
	"github.com/clickchain/settlement/internal/messaging"
	"github.com/clickchain/settlement/internal/store"
	"github.com/clickchain/settlement/internal/store/schema"
)

// Recorder records server events.
//
//go:generate mockgen -source=events.go -destination=../mocks/events.go -package=mocks -mock_names=Recorder=MockEventRecorder
type Recorder interface {
	// Record persists a server event and publishes it to the broker
	Record(ctx context.Context, eventType schema.ServerEventType, properties map[string]interface{}) error
}

type recorder struct {
	store     store.Store
	publisher messaging.Publisher
}

// NewRecorder creates a server event recorder. The publisher may be nil for
// jobs that run without a broker connection.
func NewRecorder(s store.Store, publisher messaging.Publisher) Recorder {
	return &recorder{store: s, publisher: publisher}
}

func (r *recorder) Record(ctx context.Context, eventType schema.ServerEventType, properties map[string]interface{}) error {
	payload, err := json.Marshal(properties)
	if err != nil {
		return fmt.Errorf("failed to marshal event properties: %w", err)
	}

	event := &schema.ServerEvent{
		ID:         ulid.Make().String(),
		Type:       eventType,
		Properties: payload,
	}

	if err := r.store.CreateServerEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to record server event: %w", err)
	}

	if r.publisher != nil {
		if err := r.publisher.PublishServerEvent(ctx, event); err != nil {
			logger.WarnCtx(ctx, "failed to publish server event",
				zap.Error(err),
				zap.String("id", event.ID),
				zap.String("type", string(eventType)),
			)
		}
	}

	return nil
}
