package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

type AttachmentID string

type Attachment struct {
	ID          AttachmentID
	DisplayName string
	Subject     Subject
	AddedAt     time.Time
}

func (a Attachment) Validate() error {
	if strings.TrimSpace(string(a.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(a.DisplayName) == "" {
		return fmt.Errorf("display name is required")
	}
	if !a.Subject.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSubject, a.Subject)
	}

	return nil
}

// AcceptedExtensions is the picker hint for uploads. It is advisory only.
var AcceptedExtensions = []string{".pdf", ".txt", ".docx"}

func HasAcceptedExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, accepted := range AcceptedExtensions {
		if ext == accepted {
			return true
		}
	}

	return false
}

// FilterBySubject keeps the original order of attachments.
func FilterBySubject(attachments []Attachment, subject Subject) []Attachment {
	filtered := make([]Attachment, 0, len(attachments))
	for _, attachment := range attachments {
		if attachment.Subject == subject {
			filtered = append(filtered, attachment)
		}
	}

	return filtered
}
