package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrEmptyQuestion       = fmt.Errorf("%w: question is empty", ErrValidation)
	ErrNotAuthenticated    = fmt.Errorf("%w: not logged in", ErrValidation)
	ErrUnknownSubject      = fmt.Errorf("%w: unknown subject", ErrValidation)
	ErrUnknownArtifactKind = fmt.Errorf("%w: unknown studio artifact", ErrValidation)

	ErrTransport          = errors.New("backend unreachable")
	ErrBusy               = errors.New("another request is still in flight")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidState       = errors.New("invalid stored state")
)

const (
	MessageInvalidCredentials = "Invalid credentials"
	MessageServiceOffline     = "Service offline. Is the notebook backend running?"
	MessageConnectionFailed   = "Connection to backend failed."
)

// BackendError is a non-2xx or explicitly rejected backend response.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend rejected request: status %d", e.Status)
	}

	return fmt.Sprintf("backend rejected request: status %d: %s", e.Status, e.Message)
}

// DisplayText returns the text shown to the user for err. Backend messages are
// shown verbatim, transport failures get a fixed text and anything else falls
// back to fallback.
func DisplayText(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		if msg := strings.TrimSpace(backendErr.Message); msg != "" {
			return msg
		}
		return fallback
	}

	if errors.Is(err, ErrTransport) {
		return MessageServiceOffline
	}

	if errors.Is(err, ErrValidation) || errors.Is(err, ErrBusy) {
		return err.Error()
	}

	return fallback
}
