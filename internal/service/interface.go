package service

import (
	"context"

	"mepquote/internal/model"
)

type AuthService interface {
	GetOrCreateUser(ctx context.Context, googleID, email, name, accessToken, refreshToken string, tokenExpiry interface{}) (*model.User, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

// Discoverer runs the mail discovery pipeline against one authenticated
// mailbox and returns the classifier-accepted emails.
type Discoverer interface {
	DiscoverRelevantMessages(ctx context.Context, maxResults int) ([]*model.NormalizedEmail, error)
}

// DiscovererFactory builds a Discoverer bound to a user's access token. The
// token is opaque here; the OAuth layer keeps it fresh.
type DiscovererFactory func(ctx context.Context, accessToken string) (Discoverer, error)

type DiscoveryService interface {
	// DiscoverEmails runs the pipeline for one user and returns the newly
	// stored emails (accepted messages not already in the repository).
	DiscoverEmails(ctx context.Context, userID string, maxResults int) ([]*model.NormalizedEmail, error)
	GetEmailsByUser(ctx context.Context, userID string) ([]*model.NormalizedEmail, error)
	GetEmail(ctx context.Context, userID, messageID string) (*model.NormalizedEmail, error)
	DeleteEmail(ctx context.Context, userID, messageID string) error
}

type QuotationService interface {
	CreateFromEmail(ctx context.Context, userID, messageID, notes string) (*model.Quotation, error)
	GetQuotation(ctx context.Context, userID, quotationID string) (*model.Quotation, error)
	GetQuotationsByUser(ctx context.Context, userID string) ([]*model.Quotation, error)
	UpdateStatus(ctx context.Context, userID, quotationID, status string) (*model.Quotation, error)
	DeleteQuotation(ctx context.Context, userID, quotationID string) error
}
