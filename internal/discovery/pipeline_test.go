package discovery

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmailapi "google.golang.org/api/gmail/v1"

	"mepquote/internal/gmail"
	"mepquote/internal/logger"
)

func TestDiscoverRelevantMessagesEndToEnd(t *testing.T) {
	client := gmail.NewMockMailClient()
	client.SearchFunc = func(ctx context.Context, query string, maxResults int64) ([]string, error) {
		switch {
		case strings.Contains(query, "MARKER_A"):
			return []string{"m1", "m2"}, nil
		case strings.Contains(query, "MARKER_B"):
			return []string{"m2", "m3"}, nil
		case strings.Contains(query, "newer_than:30d"):
			return []string{"m4"}, nil
		}
		return nil, nil
	}
	client.GetMessageFunc = func(ctx context.Context, id string) (*gmailapi.Message, error) {
		if id == "m3" {
			return plainMessage(id, "catching up", irrelevantBody), nil
		}
		return plainMessage(id, "RFQ", relevantBody), nil
	}

	pipeline := NewPipeline(client, 6, logger.New())
	pipeline.strategies = testStrategies()

	emails, err := pipeline.DiscoverRelevantMessages(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, emails, 3)
	assert.Equal(t, "m1", emails[0].ID)
	assert.Equal(t, "m2", emails[1].ID)
	assert.Equal(t, "m4", emails[2].ID)
}

func TestDiscoverRelevantMessagesEmptyFederationIsSuccess(t *testing.T) {
	client := gmail.NewMockMailClient()
	client.SearchFunc = func(ctx context.Context, query string, maxResults int64) ([]string, error) {
		return nil, nil
	}
	client.GetMessageFunc = func(ctx context.Context, id string) (*gmailapi.Message, error) {
		t.Error("retrieval must not run when federation yields no candidates")
		return nil, errors.New("unexpected call")
	}

	pipeline := NewPipeline(client, 6, logger.New())

	emails, err := pipeline.DiscoverRelevantMessages(context.Background(), 10)

	require.NoError(t, err)
	assert.NotNil(t, emails)
	assert.Empty(t, emails)
}

func TestNewPipelineDefaultsBatchSize(t *testing.T) {
	pipeline := NewPipeline(gmail.NewMockMailClient(), 0, logger.New())

	assert.Equal(t, DefaultBatchSize, pipeline.batchSize)
}
