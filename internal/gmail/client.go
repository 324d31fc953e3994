// Package gmail wraps the Gmail REST API behind the two operations the
// discovery pipeline needs: query search and full-message retrieval.
package gmail

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"mepquote/internal/logger"
)

// the authenticated mailbox owner, per the Gmail API convention
const authenticatedUser = "me"

// Client is an explicit per-user provider client. Each authenticated mailbox
// gets its own value; there is no process-wide client state.
type Client struct {
	svc    *gmail.Service
	logger *logger.Logger
}

// NewClient builds a client bound to one user's bearer credential.
func NewClient(ctx context.Context, accessToken string, logger *logger.Logger) (*Client, error) {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return &Client{svc: svc, logger: logger}, nil
}

// Search returns the ids of messages matching a Gmail query expression,
// newest first, capped at maxResults.
func (c *Client) Search(ctx context.Context, query string, maxResults int64) ([]string, error) {
	resp, err := c.svc.Users.Messages.List(authenticatedUser).
		Q(query).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		ids = append(ids, msg.Id)
	}
	return ids, nil
}

// GetMessage fetches one message with full headers and MIME tree.
func (c *Client) GetMessage(ctx context.Context, id string) (*gmail.Message, error) {
	msg, err := c.svc.Users.Messages.Get(authenticatedUser, id).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", id, err)
	}
	return msg, nil
}
