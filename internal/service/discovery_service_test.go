package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mepquote/internal/logger"
	"mepquote/internal/model"
	"mepquote/internal/repository/memory"
	"mepquote/internal/sse"
)

type fakeDiscoverer struct {
	emails []*model.NormalizedEmail
	err    error
	calls  int
}

func (f *fakeDiscoverer) DiscoverRelevantMessages(ctx context.Context, maxResults int) ([]*model.NormalizedEmail, error) {
	f.calls++
	return f.emails, f.err
}

func newTestUser(t *testing.T, userRepo *memory.InMemoryUserRepository, accessToken string) *model.User {
	t.Helper()
	user := model.NewUser("google-1", "owner@example.com", "Owner", accessToken, "", time.Now().Add(time.Hour))
	require.NoError(t, userRepo.Create(context.Background(), user))
	return user
}

func newDiscoveryFixture(discoverer *fakeDiscoverer) (DiscoveryService, *memory.InMemoryUserRepository, *memory.InMemoryEmailRepository) {
	userRepo := memory.NewInMemoryUserRepository()
	emailRepo := memory.NewInMemoryEmailRepository()
	log := logger.New()
	factory := func(ctx context.Context, accessToken string) (Discoverer, error) {
		return discoverer, nil
	}
	svc := NewDiscoveryService(emailRepo, userRepo, factory, sse.NewManager(log), log)
	return svc, userRepo, emailRepo
}

func TestDiscoverEmailsStoresNewMessages(t *testing.T) {
	discoverer := &fakeDiscoverer{emails: []*model.NormalizedEmail{
		{ID: "m1", Subject: "Quotation request"},
		{ID: "m2", Subject: "RFQ chiller plant"},
	}}
	svc, userRepo, emailRepo := newDiscoveryFixture(discoverer)
	user := newTestUser(t, userRepo, "token-abc")

	stored, err := svc.DiscoverEmails(context.Background(), user.ID, 10)

	require.NoError(t, err)
	assert.Len(t, stored, 2)

	saved, err := emailRepo.FindByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, saved, 2)
}

func TestDiscoverEmailsSkipsAlreadyStored(t *testing.T) {
	discoverer := &fakeDiscoverer{emails: []*model.NormalizedEmail{
		{ID: "m1", Subject: "Quotation request"},
	}}
	svc, userRepo, _ := newDiscoveryFixture(discoverer)
	user := newTestUser(t, userRepo, "token-abc")

	first, err := svc.DiscoverEmails(context.Background(), user.ID, 10)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.DiscoverEmails(context.Background(), user.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Equal(t, 2, discoverer.calls)
}

func TestDiscoverEmailsRequiresAccessToken(t *testing.T) {
	discoverer := &fakeDiscoverer{}
	svc, userRepo, _ := newDiscoveryFixture(discoverer)
	user := newTestUser(t, userRepo, "")

	_, err := svc.DiscoverEmails(context.Background(), user.ID, 10)

	assert.Error(t, err)
	assert.Zero(t, discoverer.calls)
}

func TestDiscoverEmailsUnknownUser(t *testing.T) {
	svc, _, _ := newDiscoveryFixture(&fakeDiscoverer{})

	_, err := svc.DiscoverEmails(context.Background(), "nope", 10)

	assert.Error(t, err)
}

func TestDiscoverEmailsPipelineErrorPassesThrough(t *testing.T) {
	sentinel := errors.New("mail provider rejected the token")
	discoverer := &fakeDiscoverer{err: sentinel}
	svc, userRepo, _ := newDiscoveryFixture(discoverer)
	user := newTestUser(t, userRepo, "token-abc")

	_, err := svc.DiscoverEmails(context.Background(), user.ID, 10)

	assert.True(t, errors.Is(err, sentinel))
}
