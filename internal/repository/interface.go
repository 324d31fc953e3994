package repository

import (
	"context"

	"mepquote/internal/model"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}

// EmailRepository stores discovered emails per user, keyed by the provider
// message id.
type EmailRepository interface {
	Create(ctx context.Context, userID string, email *model.NormalizedEmail) error
	FindByUserID(ctx context.Context, userID string) ([]*model.NormalizedEmail, error)
	FindByMessageID(ctx context.Context, userID, messageID string) (*model.NormalizedEmail, error)
	Delete(ctx context.Context, userID, messageID string) error
}

// QuotationRepository defines the interface for quotation data operations
type QuotationRepository interface {
	Create(ctx context.Context, quotation *model.Quotation) error
	FindByID(ctx context.Context, id string) (*model.Quotation, error)
	FindByUserID(ctx context.Context, userID string) ([]*model.Quotation, error)
	Update(ctx context.Context, quotation *model.Quotation) error
	Delete(ctx context.Context, id string) error
}
