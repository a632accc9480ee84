package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/bnema/notebook-cli/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// ErrAnswerDiscarded is returned when a response arrives after the subject
// was switched or the user logged out. The transcript is left untouched.
var ErrAnswerDiscarded = errors.New("answer discarded: notebook changed while request was in flight")

// Observer receives every request state transition. It runs on the calling
// goroutine and must not call back into the Notebook.
type Observer func(domain.RequestState)

type Dependencies struct {
	Backend     ports.Backend
	Sessions    ports.SessionStore
	Attachments ports.AttachmentRepository
	IDs         ports.IDGenerator
	Clock       ports.Clock
	Logger      *zap.Logger
	Observer    Observer
}

// Notebook is the client session: identity, active subject, attachments,
// transcript and the state of the single outstanding request.
type Notebook struct {
	backend     ports.Backend
	sessions    ports.SessionStore
	attachments ports.AttachmentRepository
	ids         ports.IDGenerator
	clock       ports.Clock
	logger      *zap.Logger

	gate *semaphore.Weighted

	mu         sync.Mutex
	observer   Observer
	session    domain.Session
	subject    domain.Subject
	sources    []domain.Attachment
	transcript []domain.Message
	state      domain.RequestState
	// epoch changes on login and logout, generation on every transcript reset.
	epoch      uint64
	generation uint64
}

func NewNotebook(deps Dependencies) (*Notebook, error) {
	if deps.Backend == nil {
		return nil, errors.New("notebook backend is required")
	}
	if deps.Sessions == nil {
		return nil, errors.New("notebook session store is required")
	}
	if deps.Attachments == nil {
		return nil, errors.New("notebook attachment repository is required")
	}
	if deps.IDs == nil {
		return nil, errors.New("notebook id generator is required")
	}
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Notebook{
		backend:     deps.Backend,
		sessions:    deps.Sessions,
		attachments: deps.Attachments,
		ids:         deps.IDs,
		clock:       deps.Clock,
		logger:      deps.Logger.Named("notebook"),
		gate:        semaphore.NewWeighted(1),
		observer:    deps.Observer,
		subject:     domain.DefaultSubject,
		state:       domain.RequestState{Phase: domain.PhaseIdle},
	}, nil
}

func (n *Notebook) SetObserver(observer Observer) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.observer = observer
}

// Restore loads the persisted identity and attachments. A missing session is
// not an error.
func (n *Notebook) Restore(ctx context.Context) (domain.Session, error) {
	session, err := n.sessions.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Session{}, fmt.Errorf("load session: %w", err)
		}
		session = domain.Session{}
	}

	attachments, err := n.attachments.List(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("list attachments: %w", err)
	}

	n.mu.Lock()
	n.session = session
	n.sources = attachments
	n.mu.Unlock()

	n.logger.Debug("notebook restored",
		zap.Bool("authenticated", session.Authenticated()),
		zap.Int("attachments", len(attachments)),
	)

	return session, nil
}

func (n *Notebook) Login(ctx context.Context, username, password string) (domain.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return domain.Session{}, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	if !n.gate.TryAcquire(1) {
		return domain.Session{}, domain.ErrBusy
	}
	defer n.gate.Release(1)

	n.transition(domain.RequestState{Phase: domain.PhaseInFlight, Operation: domain.OperationLogin})

	session, err := n.backend.Login(ctx, ports.LoginRequest{Username: username, Password: password})
	if err != nil {
		n.logger.Warn("login failed", zap.String("username", username), zap.Error(err))
		n.fail(domain.OperationLogin, err)
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}

	if err := n.sessions.Save(ctx, session); err != nil {
		n.fail(domain.OperationLogin, err)
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}

	n.mu.Lock()
	if n.session.Identity != session.Identity {
		n.epoch++
		n.generation++
		n.transcript = nil
	}
	n.session = session
	n.mu.Unlock()

	n.logger.Info("login succeeded", zap.String("identity", session.Identity))
	n.transition(domain.RequestState{Phase: domain.PhaseSuccess, Operation: domain.OperationLogin})

	return session, nil
}

// Logout is local only. It drops the identity, attachments and transcript and
// invalidates any response still in flight.
func (n *Notebook) Logout(ctx context.Context) error {
	n.mu.Lock()
	identity := n.session.Identity
	n.session = domain.Session{}
	n.sources = nil
	n.transcript = nil
	n.subject = domain.DefaultSubject
	n.epoch++
	n.generation++
	inFlight := n.state.Loading()
	n.mu.Unlock()

	if !inFlight {
		n.transition(domain.RequestState{Phase: domain.PhaseIdle})
	}

	var errs []error
	if err := n.sessions.Clear(ctx); err != nil {
		errs = append(errs, fmt.Errorf("clear session: %w", err))
	}
	if err := n.attachments.Clear(ctx); err != nil {
		errs = append(errs, fmt.Errorf("clear attachments: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	n.logger.Info("logged out", zap.String("identity", identity))
	return nil
}

func (n *Notebook) Session() domain.Session {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.session
}

func (n *Notebook) ActiveSubject() domain.Subject {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.subject
}

// SwitchSubject clears the transcript and keeps attachments. Switching to the
// active subject changes nothing.
func (n *Notebook) SwitchSubject(subject domain.Subject) error {
	if !subject.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownSubject, subject)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if subject == n.subject {
		return nil
	}

	n.subject = subject
	n.transcript = nil
	n.generation++

	return nil
}

func (n *Notebook) State() domain.RequestState {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.state
}

func (n *Notebook) Loading() bool {
	return n.State().Loading()
}

func (n *Notebook) Transcript() []domain.Message {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]domain.Message(nil), n.transcript...)
}

func (n *Notebook) Snapshot() Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()

	return Snapshot{
		Session:    n.session,
		Subject:    n.subject,
		Visible:    domain.FilterBySubject(n.sources, n.subject),
		Total:      len(n.sources),
		Transcript: append([]domain.Message(nil), n.transcript...),
		State:      n.state,
	}
}

func (n *Notebook) requireSession() (domain.Session, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.session.Authenticated() {
		return domain.Session{}, domain.ErrNotAuthenticated
	}

	return n.session, nil
}

func (n *Notebook) fail(op domain.Operation, err error) {
	n.transition(domain.RequestState{Phase: domain.PhaseFailure, Operation: op, Err: err})
}

func (n *Notebook) transition(state domain.RequestState) {
	n.mu.Lock()
	n.state = state
	observer := n.observer
	n.mu.Unlock()

	if observer != nil {
		observer(state)
	}
}
