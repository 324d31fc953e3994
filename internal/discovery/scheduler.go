package discovery

import (
	"context"
	"sync"
	"time"

	"mepquote/internal/classify"
	"mepquote/internal/gmail"
	"mepquote/internal/logger"
	"mepquote/internal/model"
)

const (
	// DefaultBatchSize is how many messages are fetched concurrently per batch.
	DefaultBatchSize = 6

	minBatchDelay = 200 * time.Millisecond
	maxBatchDelay = 500 * time.Millisecond
)

// Scheduler fetches full message detail for a prioritized ref list in small
// concurrent batches, normalizing and classifying each result. Pacing between
// batches is the only rate control; there is no semaphore and no retry.
type Scheduler struct {
	client     MailClient
	classifier *classify.Classifier
	logger     *logger.Logger
}

func NewScheduler(client MailClient, classifier *classify.Classifier, logger *logger.Logger) *Scheduler {
	return &Scheduler{client: client, classifier: classifier, logger: logger}
}

// Retrieve attempts every ref exactly once and returns only the
// classifier-accepted emails, preserving the refs order. A fetch failure for
// one id drops that id without aborting its batch; only credential, quota,
// and rate-limit failures abort the run.
func (s *Scheduler) Retrieve(ctx context.Context, refs []MessageRef, batchSize int) ([]*model.NormalizedEmail, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	totalBatches := (len(refs) + batchSize - 1) / batchSize
	var accepted []*model.NormalizedEmail

	for b := 0; b < totalBatches; b++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := b * batchSize
		end := start + batchSize
		if end > len(refs) {
			end = len(refs)
		}
		batch := refs[start:end]

		// Results are written by index so output order follows the refs
		// order, not completion order.
		results := make([]*model.NormalizedEmail, len(batch))
		fetchErrs := make([]error, len(batch))

		var wg sync.WaitGroup
		for i, ref := range batch {
			wg.Add(1)
			go func(i int, ref MessageRef) {
				defer wg.Done()

				msg, err := s.client.GetMessage(ctx, ref.ID)
				if err != nil {
					fetchErrs[i] = err
					return
				}

				email := gmail.Normalize(msg)
				result := s.classifier.Classify(email.BodyText+"\n"+email.Snippet, email.Subject)
				if !result.Accepted {
					s.logger.Debug("Message rejected by classifier:", ref.ID, "score:", result.TotalScore)
					return
				}
				email.RelevanceScore = result.TotalScore
				results[i] = email
			}(i, ref)
		}
		wg.Wait()

		for i, err := range fetchErrs {
			if err == nil {
				continue
			}
			if isFatalProviderError(err) {
				return nil, wrapProviderError(err)
			}
			s.logger.Warn("Failed to fetch message, dropping:", batch[i].ID, err)
		}
		for _, email := range results {
			if email != nil {
				accepted = append(accepted, email)
			}
		}

		if b < totalBatches-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(batchDelay(b, totalBatches-1)):
			}
		}
	}

	return accepted, nil
}

// batchDelay grows monotonically from minBatchDelay toward maxBatchDelay as
// batches complete, throttling the request rate against provider quotas
// without a fixed global delay. gapIndex counts completed inter-batch gaps.
func batchDelay(gapIndex, gaps int) time.Duration {
	if gaps <= 1 {
		return minBatchDelay
	}
	fraction := float64(gapIndex) / float64(gaps-1)
	return minBatchDelay + time.Duration(fraction*float64(maxBatchDelay-minBatchDelay))
}
