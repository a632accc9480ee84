package toml

import (
	"context"
	"strings"

	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/bnema/notebook-cli/internal/ports"
)

type SessionStore struct {
	file *StateFile
}

var _ ports.SessionStore = (*SessionStore)(nil)

func NewSessionStore(file *StateFile) *SessionStore {
	return &SessionStore{file: file}
}

func (s *SessionStore) Load(ctx context.Context) (domain.Session, error) {
	var session domain.Session
	err := s.file.view(ctx, func(file fileSchema) error {
		session = domain.Session{Identity: strings.TrimSpace(file.Session.Identity)}
		return nil
	})
	if err != nil {
		return domain.Session{}, err
	}
	if !session.Authenticated() {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	return session, nil
}

func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	return s.file.update(ctx, func(file *fileSchema) error {
		file.Session.Identity = session.Identity
		return nil
	})
}

func (s *SessionStore) Clear(ctx context.Context) error {
	return s.file.update(ctx, func(file *fileSchema) error {
		file.Session = sessionSchema{}
		return nil
	})
}
