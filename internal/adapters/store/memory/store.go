// Package memory keeps client state in process memory. It is selected with
// store.driver=memory, so nothing outlives the process, and the application
// tests use it as their store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/bnema/notebook-cli/internal/ports"
	"github.com/patrickmn/go-cache"
)

const (
	sessionKey       = "session"
	attachmentPrefix = "attachment:"
	cleanupInterval  = time.Minute
)

type Store struct {
	items *cache.Cache
	ttl   time.Duration
}

// New returns a Store whose session expires after ttl. A zero ttl keeps it
// until logout.
func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}

	return &Store{
		items: cache.New(cache.NoExpiration, cleanupInterval),
		ttl:   ttl,
	}
}

func (s *Store) Sessions() *SessionStore {
	return &SessionStore{store: s}
}

func (s *Store) Attachments() *AttachmentRepository {
	return &AttachmentRepository{store: s}
}

type SessionStore struct {
	store *Store
}

var _ ports.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) Load(ctx context.Context) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	value, ok := s.store.items.Get(sessionKey)
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	session, ok := value.(domain.Session)
	if !ok || !session.Authenticated() {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	return session, nil
}

func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.store.items.Set(sessionKey, session, s.store.ttl)
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.store.items.Delete(sessionKey)
	return nil
}

type AttachmentRepository struct {
	store *Store
}

var _ ports.AttachmentRepository = (*AttachmentRepository)(nil)

// List orders attachments by AddedAt, then ID. ULIDs sort by creation time so
// the tie-break keeps insertion order for same-instant uploads.
func (r *AttachmentRepository) List(ctx context.Context) ([]domain.Attachment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	attachments := make([]domain.Attachment, 0)
	for key, item := range r.store.items.Items() {
		if !strings.HasPrefix(key, attachmentPrefix) {
			continue
		}
		if attachment, ok := item.Object.(domain.Attachment); ok {
			attachments = append(attachments, attachment)
		}
	}

	sort.Slice(attachments, func(i, j int) bool {
		if !attachments[i].AddedAt.Equal(attachments[j].AddedAt) {
			return attachments[i].AddedAt.Before(attachments[j].AddedAt)
		}
		return attachments[i].ID < attachments[j].ID
	})

	return attachments, nil
}

func (r *AttachmentRepository) Save(ctx context.Context, attachment domain.Attachment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := attachment.Validate(); err != nil {
		return fmt.Errorf("save attachment: %w", err)
	}

	r.store.items.Set(attachmentPrefix+string(attachment.ID), attachment, cache.NoExpiration)
	return nil
}

func (r *AttachmentRepository) Delete(ctx context.Context, id domain.AttachmentID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := attachmentPrefix + string(id)
	if _, ok := r.store.items.Get(key); !ok {
		return fmt.Errorf("%w: %s", domain.ErrAttachmentNotFound, id)
	}

	r.store.items.Delete(key)
	return nil
}

func (r *AttachmentRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for key := range r.store.items.Items() {
		if strings.HasPrefix(key, attachmentPrefix) {
			r.store.items.Delete(key)
		}
	}

	return nil
}
