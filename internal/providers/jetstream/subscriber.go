package jetstream

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/clickchain/settlement/internal/adapter"
	"github.com/clickchain/settlement/internal/domain"
	"github.com/clickchain/settlement/internal/logger"
	"github.com/clickchain/settlement/internal/messaging"
)

type subscriber struct {
	nc   adapter.NatsConn
	js   adapter.JetStream
	cfg  Config
	json adapter.JSON
}

// NewSubscriber creates a new NATS JetStream withdrawal-job subscriber
func NewSubscriber(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Subscriber, error) {
	nc, js, err := connect(cfg, natsJS)
	if err != nil {
		return nil, err
	}

	return &subscriber{
		nc:   nc,
		js:   js,
		cfg:  cfg,
		json: jsonAdapter,
	}, nil
}

// SubscribeWithdrawalJobs consumes withdrawal jobs until ctx is cancelled.
// Handler errors nak the message for redelivery; undecodable messages are
// terminated so a poison payload cannot wedge the consumer.
func (s *subscriber) SubscribeWithdrawalJobs(ctx context.Context, handler messaging.WithdrawalJobHandler) error {
	consumer, err := s.js.CreateOrUpdateConsumer(ctx, s.cfg.StreamName, jetstream.ConsumerConfig{
		Durable:       s.cfg.ConsumerName,
		FilterSubject: SubjectWithdrawalJobs,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       s.cfg.AckWait,
		MaxDeliver:    s.cfg.MaxDeliver,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	consumeCtx, err := consumer.Consume(func(msg adapter.Message) {
		var job domain.WithdrawalJob
		if err := s.json.Unmarshal(msg.Data(), &job); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "terminating undecodable withdrawal job"))
			if err := msg.Term(); err != nil {
				logger.WarnCtx(ctx, "failed to term message", zap.Error(err))
			}
			return
		}

		if err := handler(ctx, &job); err != nil {
			logger.ErrorCtx(ctx, err,
				zap.Int64("ledger_entry_id", job.LedgerEntryID),
				zap.String("message", "withdrawal job failed, nak for redelivery"),
			)
			if err := msg.Nak(); err != nil {
				logger.WarnCtx(ctx, "failed to nak message", zap.Error(err))
			}
			return
		}

		if err := msg.Ack(); err != nil {
			logger.WarnCtx(ctx, "failed to ack message", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	<-ctx.Done()
	consumeCtx.Drain()

	return nil
}

// Close closes the NATS connection
func (s *subscriber) Close() {
	if s.nc == nil {
		return
	}

	s.nc.Close()
}
