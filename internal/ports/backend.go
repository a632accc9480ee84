package ports

import (
	"context"
	"io"

	"github.com/bnema/notebook-cli/internal/domain"
)

type LoginRequest struct {
	Username string
	Password string
}

type UploadRequest struct {
	Identity string
	Subject  domain.Subject
	FileName string
	Content  io.Reader
}

type AskRequest struct {
	Identity string
	Subject  domain.Subject
	Question string
}

type StudioRequest struct {
	Identity string
	Subject  domain.Subject
	Kind     domain.ArtifactKind
}

type Answer struct {
	Text       string
	Citation   string
	Confidence string
}

// Backend is the remote notebook API. Implementations return
// *domain.BackendError for rejected requests and wrap domain.ErrTransport for
// unreachable backends, timeouts and malformed bodies.
type Backend interface {
	Login(ctx context.Context, req LoginRequest) (domain.Session, error)
	Upload(ctx context.Context, req UploadRequest) error
	Ask(ctx context.Context, req AskRequest) (Answer, error)
	GenerateStudio(ctx context.Context, req StudioRequest) (Answer, error)
}
