package gmail

import (
	"context"

	"google.golang.org/api/gmail/v1"
)

// MockMailClient is a mock implementation of the provider client for testing
type MockMailClient struct {
	SearchFunc     func(ctx context.Context, query string, maxResults int64) ([]string, error)
	GetMessageFunc func(ctx context.Context, id string) (*gmail.Message, error)
}

func NewMockMailClient() *MockMailClient {
	return &MockMailClient{}
}

func (m *MockMailClient) Search(ctx context.Context, query string, maxResults int64) ([]string, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, maxResults)
	}

	// Default mock behavior: no matches
	return []string{}, nil
}

func (m *MockMailClient) GetMessage(ctx context.Context, id string) (*gmail.Message, error) {
	if m.GetMessageFunc != nil {
		return m.GetMessageFunc(ctx, id)
	}

	// Default mock behavior: an empty message
	return &gmail.Message{Id: id}, nil
}
