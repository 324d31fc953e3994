package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	QuotationStatusDraft    = "draft"
	QuotationStatusSent     = "sent"
	QuotationStatusAccepted = "accepted"
	QuotationStatusDeclined = "declined"
)

// Quotation is a draft price quotation derived from a discovered request
// email. Pricing itself happens elsewhere; this record only tracks the
// client contact and the quotation lifecycle.
type Quotation struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	MessageID   string    `json:"message_id"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	Subject     string    `json:"subject"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewQuotation(userID, messageID, clientName, clientEmail, subject string) *Quotation {
	now := time.Now()
	return &Quotation{
		ID:          uuid.New().String(),
		UserID:      userID,
		MessageID:   messageID,
		ClientName:  clientName,
		ClientEmail: clientEmail,
		Subject:     subject,
		Status:      QuotationStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ValidQuotationStatus reports whether s is one of the known lifecycle states.
func ValidQuotationStatus(s string) bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusAccepted, QuotationStatusDeclined:
		return true
	}
	return false
}
