package messaging

import (
	"context"

	"github.com/clickchain/settlement/internal/domain"
)

// WithdrawalJobHandler is called for each dispatched withdrawal job. A
// returned error naks the message for redelivery.
type WithdrawalJobHandler func(ctx context.Context, job *domain.WithdrawalJob) error

// Subscriber defines the interface for consuming withdrawal jobs from the
// message broker
//
//go:generate mockgen -source=subscriber.go -destination=../mocks/subscriber.go -package=mocks -mock_names=Subscriber=MockSubscriber
type Subscriber interface {
	// SubscribeWithdrawalJobs consumes withdrawal jobs until ctx is cancelled
	SubscribeWithdrawalJobs(ctx context.Context, handler WithdrawalJobHandler) error

	// Close closes the connection and cleans up resources
	Close()
}
