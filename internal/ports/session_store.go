package ports

import (
	"context"

	"github.com/bnema/notebook-cli/internal/domain"
)

// SessionStore persists the authenticated identity across processes.
// Load returns domain.ErrSessionNotFound when nothing is stored.
type SessionStore interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}
