package service

import (
	"context"
	"errors"
	"fmt"

	"mepquote/internal/logger"
	"mepquote/internal/model"
	"mepquote/internal/repository"
	"mepquote/internal/sse"
)

type discoveryService struct {
	emailRepo     repository.EmailRepository
	userRepo      repository.UserRepository
	newDiscoverer DiscovererFactory
	sseManager    *sse.Manager
	logger        *logger.Logger
}

func NewDiscoveryService(
	emailRepo repository.EmailRepository,
	userRepo repository.UserRepository,
	newDiscoverer DiscovererFactory,
	sseManager *sse.Manager,
	logger *logger.Logger,
) DiscoveryService {
	return &discoveryService{
		emailRepo:     emailRepo,
		userRepo:      userRepo,
		newDiscoverer: newDiscoverer,
		sseManager:    sseManager,
		logger:        logger,
	}
}

func (s *discoveryService) DiscoverEmails(ctx context.Context, userID string, maxResults int) ([]*model.NormalizedEmail, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.AccessToken == "" {
		return nil, errors.New("access token not available for user")
	}

	discoverer, err := s.newDiscoverer(ctx, user.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	emails, err := discoverer.DiscoverRelevantMessages(ctx, maxResults)
	if err != nil {
		// Typed pipeline errors pass through so the HTTP layer can map them.
		return nil, err
	}

	var stored []*model.NormalizedEmail
	for _, email := range emails {
		if existing, err := s.emailRepo.FindByMessageID(ctx, userID, email.ID); err == nil && existing != nil {
			s.logger.Debug("Message already stored, skipping:", email.ID)
			continue
		}
		if err := s.emailRepo.Create(ctx, userID, email); err != nil {
			s.logger.Error("Failed to save discovered email:", email.ID, err)
			continue
		}
		stored = append(stored, email)
		s.sseManager.BroadcastToUser(userID, "email_discovered", email)
	}

	s.sseManager.BroadcastToUser(userID, "discovery_complete", map[string]int{
		"accepted": len(emails),
		"stored":   len(stored),
	})
	s.logger.Info("Discovery run for user", userID, "stored", len(stored), "of", len(emails), "accepted emails")
	return stored, nil
}

func (s *discoveryService) GetEmailsByUser(ctx context.Context, userID string) ([]*model.NormalizedEmail, error) {
	return s.emailRepo.FindByUserID(ctx, userID)
}

func (s *discoveryService) GetEmail(ctx context.Context, userID, messageID string) (*model.NormalizedEmail, error) {
	return s.emailRepo.FindByMessageID(ctx, userID, messageID)
}

func (s *discoveryService) DeleteEmail(ctx context.Context, userID, messageID string) error {
	return s.emailRepo.Delete(ctx, userID, messageID)
}
