package jetstream

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/clickchain/settlement/internal/adapter"
	"github.com/clickchain/settlement/internal/domain"
	"github.com/clickchain/settlement/internal/logger"
	"github.com/clickchain/settlement/internal/messaging"
	"github.com/clickchain/settlement/internal/store/schema"
)

// SubjectWithdrawalJobs is where withdrawal send jobs are dispatched
const SubjectWithdrawalJobs = "settlement.withdrawals.send"

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWait        time.Duration
	MaxDeliver     int
}

type publisher struct {
	nc         adapter.NatsConn
	js         adapter.JetStream
	streamName string
	json       adapter.JSON
}

// NewPublisher creates a new NATS JetStream publisher
func NewPublisher(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	nc, js, err := connect(cfg, natsJS)
	if err != nil {
		return nil, err
	}

	return &publisher{
		nc:         nc,
		js:         js,
		streamName: cfg.StreamName,
		json:       jsonAdapter,
	}, nil
}

func connect(cfg Config, natsJS adapter.NatsJetStream) (adapter.NatsConn, adapter.JetStream, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return nc, js, nil
}

// PublishServerEvent publishes an operator-visible job outcome
func (p *publisher) PublishServerEvent(ctx context.Context, event *schema.ServerEvent) error {
	logger.Debug("Publishing server event", zap.String("id", event.ID), zap.String("type", string(event.Type)))

	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Format: settlement.events.{event_type}
	subject := fmt.Sprintf("settlement.events.%s", event.Type)

	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// PublishWithdrawalJob dispatches an asynchronous on-chain send request
func (p *publisher) PublishWithdrawalJob(ctx context.Context, job *domain.WithdrawalJob) error {
	logger.Debug("Publishing withdrawal job",
		zap.Int64("ledger_entry_id", job.LedgerEntryID),
		zap.Int64("amount", job.Amount),
	)

	data, err := p.json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal withdrawal job: %w", err)
	}

	if _, err := p.js.Publish(ctx, SubjectWithdrawalJobs, data); err != nil {
		return fmt.Errorf("failed to publish withdrawal job: %w", err)
	}

	return nil
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
