package gmail

import (
	"encoding/base64"
	"net/mail"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"google.golang.org/api/gmail/v1"

	"mepquote/internal/model"
)

const defaultSubject = "No Subject"

// Normalize decodes a raw provider message into the canonical NormalizedEmail
// shape. It is total: malformed-but-parseable input degrades field by field
// instead of failing the whole message.
func Normalize(msg *gmail.Message) *model.NormalizedEmail {
	email := &model.NormalizedEmail{
		ID:         msg.Id,
		ThreadID:   msg.ThreadId,
		Subject:    defaultSubject,
		Snippet:    msg.Snippet,
		ReceivedAt: time.Unix(msg.InternalDate/1000, 0),
	}

	for _, label := range msg.LabelIds {
		if label == "UNREAD" {
			email.IsUnread = true
			break
		}
	}

	if msg.Payload == nil {
		return email
	}

	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "Subject":
			if header.Value != "" {
				email.Subject = header.Value
			}
		case "From":
			email.FromName, email.FromEmail = parseSender(header.Value)
		}
	}

	email.BodyText = extractBody(msg.Payload)
	email.Attachments = collectAttachments(msg.Payload)
	return email
}

// parseSender splits a From header of either the `"Name" <addr>` or the bare
// address form. Anything net/mail cannot parse is treated as a bare address
// with no display name.
func parseSender(header string) (name, address string) {
	addr, err := mail.ParseAddress(header)
	if err != nil {
		return "", strings.TrimSpace(header)
	}
	return addr.Name, addr.Address
}

// extractBody walks the MIME tree depth-first, preferring the first
// text/plain leaf. When no plain part exists, the first text/html leaf is
// stripped down to its visible text.
func extractBody(payload *gmail.MessagePart) string {
	if plain := findTextPart(payload, "text/plain"); plain != "" {
		return plain
	}
	if html := findTextPart(payload, "text/html"); html != "" {
		return stripHTML(html)
	}
	return ""
}

func findTextPart(part *gmail.MessagePart, mimeType string) string {
	if part == nil {
		return ""
	}
	if part.MimeType == mimeType && part.Body != nil && part.Body.Data != "" {
		return decodeBody(part.Body.Data)
	}
	for _, child := range part.Parts {
		if text := findTextPart(child, mimeType); text != "" {
			return text
		}
	}
	return ""
}

// decodeBody decodes a base64url payload segment. Gmail pads some payloads
// and not others, so both variants are tried. A segment that decodes with
// neither degrades to an empty string.
func decodeBody(data string) string {
	if decoded, err := base64.URLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	if decoded, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	return ""
}

// stripHTML reduces an HTML body to its visible text.
func stripHTML(src string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return ""
	}
	doc.Find("script,style").Remove()
	return strings.TrimSpace(doc.Text())
}

// collectAttachments walks the MIME tree depth-first, first-part-first, and
// collects every part carrying a filename and an attachment reference.
func collectAttachments(part *gmail.MessagePart) []model.Attachment {
	var attachments []model.Attachment
	var walk func(p *gmail.MessagePart)
	walk = func(p *gmail.MessagePart) {
		if p == nil {
			return
		}
		if p.Filename != "" && p.Body != nil && p.Body.AttachmentId != "" {
			attachments = append(attachments, model.Attachment{
				Filename:     p.Filename,
				MimeType:     p.MimeType,
				SizeBytes:    p.Body.Size,
				AttachmentID: p.Body.AttachmentId,
			})
		}
		for _, child := range p.Parts {
			walk(child)
		}
	}
	walk(part)
	return attachments
}
