package discovery

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"

	"mepquote/internal/classify"
	"mepquote/internal/gmail"
	"mepquote/internal/logger"
)

const relevantBody = "Request for quotation for HVAC installation at our factory"
const irrelevantBody = "are we still on for lunch tomorrow?"

func plainMessage(id, subject, body string) *gmailapi.Message {
	return &gmailapi.Message{
		Id: id,
		Payload: &gmailapi.MessagePart{
			MimeType: "text/plain",
			Headers: []*gmailapi.MessagePartHeader{
				{Name: "Subject", Value: subject},
				{Name: "From", Value: "client@example.com"},
			},
			Body: &gmailapi.MessagePartBody{
				Data: base64.RawURLEncoding.EncodeToString([]byte(body)),
			},
		},
	}
}

func makeRefs(n int) []MessageRef {
	refs := make([]MessageRef, n)
	for i := range refs {
		refs[i] = MessageRef{ID: fmt.Sprintf("m%d", i+1), Priority: 1, SourceStrategy: "first"}
	}
	return refs
}

func TestRetrieveBatchCompleteness(t *testing.T) {
	var attempts int64
	client := gmail.NewMockMailClient()
	client.GetMessageFunc = func(ctx context.Context, id string) (*gmailapi.Message, error) {
		atomic.AddInt64(&attempts, 1)
		if id == "m7" {
			return nil, errors.New("transient fetch failure")
		}
		return plainMessage(id, "RFQ", relevantBody), nil
	}

	scheduler := NewScheduler(client, classify.New(), logger.New())
	emails, err := scheduler.Retrieve(context.Background(), makeRefs(13), 6)

	require.NoError(t, err)
	// Every id is attempted exactly once; the one failure drops only its id.
	assert.Equal(t, int64(13), atomic.LoadInt64(&attempts))
	require.Len(t, emails, 12)
	for _, email := range emails {
		assert.NotEqual(t, "m7", email.ID)
	}
}

func TestRetrievePreservesRefsOrder(t *testing.T) {
	client := gmail.NewMockMailClient()
	client.GetMessageFunc = func(ctx context.Context, id string) (*gmailapi.Message, error) {
		// Finish later refs first to prove output order is not completion order.
		if id == "m1" {
			time.Sleep(30 * time.Millisecond)
		}
		return plainMessage(id, "RFQ", relevantBody), nil
	}

	scheduler := NewScheduler(client, classify.New(), logger.New())
	emails, err := scheduler.Retrieve(context.Background(), makeRefs(4), 6)

	require.NoError(t, err)
	require.Len(t, emails, 4)
	for i, email := range emails {
		assert.Equal(t, fmt.Sprintf("m%d", i+1), email.ID)
	}
}

func TestRetrieveDropsClassifierRejects(t *testing.T) {
	client := gmail.NewMockMailClient()
	client.GetMessageFunc = func(ctx context.Context, id string) (*gmailapi.Message, error) {
		if id == "m2" {
			return plainMessage(id, "hello", irrelevantBody), nil
		}
		return plainMessage(id, "RFQ", relevantBody), nil
	}

	scheduler := NewScheduler(client, classify.New(), logger.New())
	emails, err := scheduler.Retrieve(context.Background(), makeRefs(3), 6)

	require.NoError(t, err)
	require.Len(t, emails, 2)
	assert.Equal(t, "m1", emails[0].ID)
	assert.Equal(t, "m3", emails[1].ID)
	assert.NotZero(t, emails[0].RelevanceScore)
}

func TestRetrieveFatalProviderErrorAborts(t *testing.T) {
	client := gmail.NewMockMailClient()
	client.GetMessageFunc = func(ctx context.Context, id string) (*gmailapi.Message, error) {
		return nil, &googleapi.Error{Code: 429}
	}

	scheduler := NewScheduler(client, classify.New(), logger.New())
	_, err := scheduler.Retrieve(context.Background(), makeRefs(2), 6)

	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestRetrieveHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := gmail.NewMockMailClient()
	scheduler := NewScheduler(client, classify.New(), logger.New())
	_, err := scheduler.Retrieve(ctx, makeRefs(3), 6)

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestBatchDelayMonotonic(t *testing.T) {
	gaps := 5
	previous := time.Duration(0)
	for i := 0; i < gaps; i++ {
		delay := batchDelay(i, gaps)
		assert.GreaterOrEqual(t, delay, minBatchDelay)
		assert.LessOrEqual(t, delay, maxBatchDelay)
		assert.GreaterOrEqual(t, delay, previous)
		previous = delay
	}
	assert.Equal(t, minBatchDelay, batchDelay(0, 5))
	assert.Equal(t, maxBatchDelay, batchDelay(4, 5))
}
