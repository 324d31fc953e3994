package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mepquote/internal/logger"
	"mepquote/internal/model"
	"mepquote/internal/repository"
)

type quotationService struct {
	quotationRepo repository.QuotationRepository
	emailRepo     repository.EmailRepository
	logger        *logger.Logger
}

func NewQuotationService(quotationRepo repository.QuotationRepository, emailRepo repository.EmailRepository, logger *logger.Logger) QuotationService {
	return &quotationService{
		quotationRepo: quotationRepo,
		emailRepo:     emailRepo,
		logger:        logger,
	}
}

// CreateFromEmail opens a draft quotation for a stored request email,
// seeding the client contact from the sender.
func (s *quotationService) CreateFromEmail(ctx context.Context, userID, messageID, notes string) (*model.Quotation, error) {
	email, err := s.emailRepo.FindByMessageID(ctx, userID, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to find email: %w", err)
	}

	quotation := model.NewQuotation(userID, messageID, email.FromName, email.FromEmail, email.Subject)
	quotation.Notes = notes
	if err := s.quotationRepo.Create(ctx, quotation); err != nil {
		s.logger.Error("Failed to create quotation:", err)
		return nil, err
	}
	s.logger.Info("Created quotation:", quotation.ID, "for message:", messageID)
	return quotation, nil
}

func (s *quotationService) GetQuotation(ctx context.Context, userID, quotationID string) (*model.Quotation, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if quotation.UserID != userID {
		return nil, errors.New("quotation not found")
	}
	return quotation, nil
}

func (s *quotationService) GetQuotationsByUser(ctx context.Context, userID string) ([]*model.Quotation, error) {
	return s.quotationRepo.FindByUserID(ctx, userID)
}

func (s *quotationService) UpdateStatus(ctx context.Context, userID, quotationID, status string) (*model.Quotation, error) {
	if !model.ValidQuotationStatus(status) {
		return nil, fmt.Errorf("invalid quotation status: %s", status)
	}

	quotation, err := s.GetQuotation(ctx, userID, quotationID)
	if err != nil {
		return nil, err
	}

	quotation.Status = status
	quotation.UpdatedAt = time.Now()
	if err := s.quotationRepo.Update(ctx, quotation); err != nil {
		s.logger.Error("Failed to update quotation:", err)
		return nil, err
	}
	s.logger.Info("Updated quotation:", quotation.ID, "status:", status)
	return quotation, nil
}

func (s *quotationService) DeleteQuotation(ctx context.Context, userID, quotationID string) error {
	quotation, err := s.GetQuotation(ctx, userID, quotationID)
	if err != nil {
		return err
	}
	if err := s.quotationRepo.Delete(ctx, quotation.ID); err != nil {
		s.logger.Error("Failed to delete quotation:", err)
		return err
	}
	s.logger.Info("Deleted quotation:", quotation.ID)
	return nil
}
