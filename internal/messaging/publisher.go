package messaging

import (
	"context"

	"github.com/clickchain/settlement/internal/domain"
	"github.com/clickchain/settlement/internal/store/schema"
)

// Publisher defines the interface for publishing settlement events to the
// message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishServerEvent publishes an operator-visible job outcome
	PublishServerEvent(ctx context.Context, event *schema.ServerEvent) error
	// PublishWithdrawalJob dispatches an asynchronous on-chain send request
	PublishWithdrawalJob(ctx context.Context, job *domain.WithdrawalJob) error
	// Close closes the connection
	Close()
}
