package discovery

import (
	"context"
	"sort"

	"mepquote/internal/logger"
)

// inboxScope restricts every strategy to received inbox mail, excluding the
// user's own sent messages.
const inboxScope = "in:inbox -from:me"

// MessageRef is one candidate message id with the best precedence any
// strategy observed for it. Refs live only within a single pipeline run.
type MessageRef struct {
	ID             string
	Priority       int
	SourceStrategy string
}

// Federator runs every search strategy against the provider and merges the
// resulting ids by best (numerically smallest) priority.
type Federator struct {
	client MailClient
	logger *logger.Logger
}

func NewFederator(client MailClient, logger *logger.Logger) *Federator {
	return &Federator{client: client, logger: logger}
}

// Federate issues one search per strategy, then the fallback strategy, and
// returns the deduplicated refs sorted ascending by priority. Ties keep
// first-seen order, which fixes the retrieval order downstream.
//
// A strategy that fails with a network or query error is logged and skipped;
// only credential, quota, and rate-limit failures abort federation.
func (f *Federator) Federate(ctx context.Context, strategies []SearchStrategy, maxResultsHint int) ([]MessageRef, error) {
	perStrategyMax := int64((maxResultsHint + 1) / 2)

	type mergeEntry struct {
		ref MessageRef
	}
	seen := make(map[string]*mergeEntry)
	var firstSeen []*mergeEntry

	runStrategy := func(s SearchStrategy) error {
		ids, err := f.client.Search(ctx, inboxScope+" "+s.QueryExpression, perStrategyMax)
		if err != nil {
			if isFatalProviderError(err) {
				return wrapProviderError(err)
			}
			f.logger.Warn("Search strategy failed, skipping:", s.Name, err)
			return nil
		}
		f.logger.Info("Search strategy", s.Name, "matched", len(ids), "messages")

		for _, id := range ids {
			if entry, ok := seen[id]; ok {
				if s.Priority < entry.ref.Priority {
					entry.ref.Priority = s.Priority
					entry.ref.SourceStrategy = s.Name
				}
				continue
			}
			entry := &mergeEntry{ref: MessageRef{ID: id, Priority: s.Priority, SourceStrategy: s.Name}}
			seen[id] = entry
			firstSeen = append(firstSeen, entry)
		}
		return nil
	}

	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := runStrategy(s); err != nil {
			return nil, err
		}
	}
	if err := runStrategy(fallbackStrategy(strategies)); err != nil {
		return nil, err
	}

	refs := make([]MessageRef, len(firstSeen))
	for i, entry := range firstSeen {
		refs[i] = entry.ref
	}
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Priority < refs[j].Priority
	})
	return refs, nil
}
