// Package discovery implements the email discovery and relevance
// classification pipeline: federated provider searches, batched full-message
// retrieval under rate constraints, MIME normalization, and deterministic
// relevance scoring.
package discovery

import (
	"context"

	"google.golang.org/api/gmail/v1"

	"mepquote/internal/classify"
	"mepquote/internal/logger"
	"mepquote/internal/model"
)

// MailClient is the subset of the provider API the pipeline consumes. The
// concrete client carries the user's bearer credential.
type MailClient interface {
	Search(ctx context.Context, query string, maxResults int64) ([]string, error)
	GetMessage(ctx context.Context, id string) (*gmail.Message, error)
}

// Pipeline is the single entry point for mail discovery. It sequences query
// federation and batched retrieval for one authenticated mailbox.
type Pipeline struct {
	federator  *Federator
	scheduler  *Scheduler
	strategies []SearchStrategy
	batchSize  int
	logger     *logger.Logger
}

// NewPipeline builds a pipeline around an explicit provider client. A
// batchSize of zero or less falls back to DefaultBatchSize.
func NewPipeline(client MailClient, batchSize int, logger *logger.Logger) *Pipeline {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Pipeline{
		federator:  NewFederator(client, logger),
		scheduler:  NewScheduler(client, classify.New(), logger),
		strategies: DefaultStrategies(),
		batchSize:  batchSize,
		logger:     logger,
	}
}

// DiscoverRelevantMessages runs federation then retrieval and returns the
// accepted emails in priority order. Zero candidates is success, not failure.
// Provider failures surface as ErrAuthExpired, ErrQuotaExceeded,
// ErrRateLimited, or a generic wrap of the underlying error.
func (p *Pipeline) DiscoverRelevantMessages(ctx context.Context, maxResults int) ([]*model.NormalizedEmail, error) {
	refs, err := p.federator.Federate(ctx, p.strategies, maxResults)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		p.logger.Info("No candidate messages found")
		return []*model.NormalizedEmail{}, nil
	}

	emails, err := p.scheduler.Retrieve(ctx, refs, p.batchSize)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Discovery accepted", len(emails), "of", len(refs), "candidate messages")
	return emails, nil
}
