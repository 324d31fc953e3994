package model

import "time"

// Attachment is one downloadable file referenced by a message part. Only
// parts carrying both a filename and a provider attachment id qualify.
type Attachment struct {
	Filename     string `json:"filename"`
	MimeType     string `json:"mime_type"`
	SizeBytes    int64  `json:"size_bytes"`
	AttachmentID string `json:"attachment_id"`
}

// NormalizedEmail is the canonical shape of a provider message after MIME
// decoding. It carries no independent identity: it is recomputed from the
// raw message, never mutated in place.
type NormalizedEmail struct {
	ID             string       `json:"id"`
	ThreadID       string       `json:"thread_id"`
	Subject        string       `json:"subject"`
	FromEmail      string       `json:"from_email"`
	FromName       string       `json:"from_name,omitempty"`
	BodyText       string       `json:"body_text"`
	Snippet        string       `json:"snippet"`
	Attachments    []Attachment `json:"attachments"`
	ReceivedAt     time.Time    `json:"received_at"`
	IsUnread       bool         `json:"is_unread"`
	RelevanceScore int          `json:"relevance_score"`
}
