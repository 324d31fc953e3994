package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mepquote/internal/logger"
	"mepquote/internal/model"
	"mepquote/internal/repository/memory"
)

func newQuotationFixture(t *testing.T) (QuotationService, *memory.InMemoryEmailRepository) {
	t.Helper()
	quotationRepo := memory.NewInMemoryQuotationRepository()
	emailRepo := memory.NewInMemoryEmailRepository()
	return NewQuotationService(quotationRepo, emailRepo, logger.New()), emailRepo
}

func seedEmail(t *testing.T, emailRepo *memory.InMemoryEmailRepository, userID string) *model.NormalizedEmail {
	t.Helper()
	email := &model.NormalizedEmail{
		ID:        "m1",
		Subject:   "RFQ - chiller replacement",
		FromName:  "Somchai Builder",
		FromEmail: "somchai@example.com",
	}
	require.NoError(t, emailRepo.Create(context.Background(), userID, email))
	return email
}

func TestCreateFromEmailSeedsClientContact(t *testing.T) {
	svc, emailRepo := newQuotationFixture(t)
	email := seedEmail(t, emailRepo, "user-1")

	quotation, err := svc.CreateFromEmail(context.Background(), "user-1", email.ID, "needs site visit first")

	require.NoError(t, err)
	assert.Equal(t, "user-1", quotation.UserID)
	assert.Equal(t, email.ID, quotation.MessageID)
	assert.Equal(t, "Somchai Builder", quotation.ClientName)
	assert.Equal(t, "somchai@example.com", quotation.ClientEmail)
	assert.Equal(t, "RFQ - chiller replacement", quotation.Subject)
	assert.Equal(t, model.QuotationStatusDraft, quotation.Status)
	assert.Equal(t, "needs site visit first", quotation.Notes)
	assert.NotEmpty(t, quotation.ID)
}

func TestCreateFromEmailUnknownMessage(t *testing.T) {
	svc, _ := newQuotationFixture(t)

	_, err := svc.CreateFromEmail(context.Background(), "user-1", "missing", "")

	assert.Error(t, err)
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc, emailRepo := newQuotationFixture(t)
	email := seedEmail(t, emailRepo, "user-1")
	quotation, err := svc.CreateFromEmail(context.Background(), "user-1", email.ID, "")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), "user-1", quotation.ID, model.QuotationStatusSent)

	require.NoError(t, err)
	assert.Equal(t, model.QuotationStatusSent, updated.Status)
	assert.True(t, updated.UpdatedAt.After(quotation.CreatedAt) || updated.UpdatedAt.Equal(quotation.CreatedAt))
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, emailRepo := newQuotationFixture(t)
	email := seedEmail(t, emailRepo, "user-1")
	quotation, err := svc.CreateFromEmail(context.Background(), "user-1", email.ID, "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "user-1", quotation.ID, "archived")

	assert.Error(t, err)
}

func TestGetQuotationHidesOtherUsers(t *testing.T) {
	svc, emailRepo := newQuotationFixture(t)
	email := seedEmail(t, emailRepo, "user-1")
	quotation, err := svc.CreateFromEmail(context.Background(), "user-1", email.ID, "")
	require.NoError(t, err)

	_, err = svc.GetQuotation(context.Background(), "user-2", quotation.ID)

	assert.EqualError(t, err, "quotation not found")
}

func TestDeleteQuotation(t *testing.T) {
	svc, emailRepo := newQuotationFixture(t)
	email := seedEmail(t, emailRepo, "user-1")
	quotation, err := svc.CreateFromEmail(context.Background(), "user-1", email.ID, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteQuotation(context.Background(), "user-1", quotation.ID))

	_, err = svc.GetQuotation(context.Background(), "user-1", quotation.ID)
	assert.Error(t, err)
}
