// Package redis shares client state between machines through a Redis
// instance. The session is a plain string key and attachments live in one
// hash of JSON documents keyed by attachment ID.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/bnema/notebook-cli/internal/ports"
	goredis "github.com/redis/go-redis/v9"
)

const DefaultNamespace = "nb"

type Options struct {
	// Addr is either a redis:// URL or a host:port pair.
	Addr      string
	Namespace string
	// SessionTTL expires the stored identity. Zero keeps it until logout.
	SessionTTL time.Duration
}

type Store struct {
	client     *goredis.Client
	namespace  string
	sessionTTL time.Duration
}

func New(opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Addr) == "" {
		return nil, errors.New("redis address is required")
	}

	redisOpts, err := goredis.ParseURL(opts.Addr)
	if err != nil {
		redisOpts = &goredis.Options{Addr: opts.Addr}
	}

	return NewWithClient(goredis.NewClient(redisOpts), opts.Namespace, opts.SessionTTL), nil
}

func NewWithClient(client *goredis.Client, namespace string, sessionTTL time.Duration) *Store {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = DefaultNamespace
	}

	return &Store{client: client, namespace: namespace, sessionTTL: sessionTTL}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Sessions() *SessionStore {
	return &SessionStore{store: s}
}

func (s *Store) Attachments() *AttachmentRepository {
	return &AttachmentRepository{store: s}
}

func (s *Store) sessionKey() string {
	return s.namespace + ":session"
}

func (s *Store) attachmentsKey() string {
	return s.namespace + ":attachments"
}

type SessionStore struct {
	store *Store
}

var _ ports.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) Load(ctx context.Context) (domain.Session, error) {
	identity, err := s.store.client.Get(ctx, s.store.sessionKey()).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	session := domain.Session{Identity: strings.TrimSpace(identity)}
	if !session.Authenticated() {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	return session, nil
}

func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	if err := s.store.client.Set(ctx, s.store.sessionKey(), session.Identity, s.store.sessionTTL).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.store.client.Del(ctx, s.store.sessionKey()).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	return nil
}

type AttachmentRepository struct {
	store *Store
}

var _ ports.AttachmentRepository = (*AttachmentRepository)(nil)

type attachmentDocument struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	AddedAt time.Time `json:"added_at"`
}

func (r *AttachmentRepository) List(ctx context.Context) ([]domain.Attachment, error) {
	entries, err := r.store.client.HGetAll(ctx, r.store.attachmentsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}

	attachments := make([]domain.Attachment, 0, len(entries))
	for id, raw := range entries {
		var doc attachmentDocument
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("decode attachment %s: %w", id, err)
		}
		attachment := fromDocument(doc)
		if err := attachment.Validate(); err != nil {
			return nil, fmt.Errorf("%w: attachment %s: %w", domain.ErrInvalidState, id, err)
		}
		attachments = append(attachments, attachment)
	}

	sortAttachments(attachments)
	return attachments, nil
}

func (r *AttachmentRepository) Save(ctx context.Context, attachment domain.Attachment) error {
	if err := attachment.Validate(); err != nil {
		return fmt.Errorf("save attachment: %w", err)
	}

	encoded, err := json.Marshal(toDocument(attachment))
	if err != nil {
		return fmt.Errorf("encode attachment: %w", err)
	}

	if err := r.store.client.HSet(ctx, r.store.attachmentsKey(), string(attachment.ID), encoded).Err(); err != nil {
		return fmt.Errorf("save attachment: %w", err)
	}

	return nil
}

func (r *AttachmentRepository) Delete(ctx context.Context, id domain.AttachmentID) error {
	removed, err := r.store.client.HDel(ctx, r.store.attachmentsKey(), string(id)).Result()
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	if removed == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAttachmentNotFound, id)
	}

	return nil
}

func (r *AttachmentRepository) Clear(ctx context.Context) error {
	if err := r.store.client.Del(ctx, r.store.attachmentsKey()).Err(); err != nil {
		return fmt.Errorf("clear attachments: %w", err)
	}

	return nil
}

func toDocument(attachment domain.Attachment) attachmentDocument {
	return attachmentDocument{
		ID:      string(attachment.ID),
		Name:    attachment.DisplayName,
		Subject: string(attachment.Subject),
		AddedAt: attachment.AddedAt.UTC(),
	}
}

func fromDocument(doc attachmentDocument) domain.Attachment {
	return domain.Attachment{
		ID:          domain.AttachmentID(doc.ID),
		DisplayName: doc.Name,
		Subject:     domain.Subject(doc.Subject),
		AddedAt:     doc.AddedAt,
	}
}

// sortAttachments restores a stable order since hash iteration has none.
func sortAttachments(attachments []domain.Attachment) {
	sort.Slice(attachments, func(i, j int) bool {
		if !attachments[i].AddedAt.Equal(attachments[j].AddedAt) {
			return attachments[i].AddedAt.Before(attachments[j].AddedAt)
		}
		return attachments[i].ID < attachments[j].ID
	})
}
