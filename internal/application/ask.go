package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/bnema/notebook-cli/internal/ports"
	"go.uber.org/zap"
)

// Ask appends the question, queries the backend for the active subject and
// appends the answer. Backend and transport failures become an assistant
// message and are not returned as errors.
func (n *Notebook) Ask(ctx context.Context, question string) (domain.Message, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Message{}, domain.ErrEmptyQuestion
	}

	session, err := n.requireSession()
	if err != nil {
		return domain.Message{}, err
	}

	if !n.gate.TryAcquire(1) {
		return domain.Message{}, domain.ErrBusy
	}
	defer n.gate.Release(1)

	n.mu.Lock()
	subject := n.subject
	generation := n.generation
	n.transcript = append(n.transcript, domain.UserMessage(question))
	n.mu.Unlock()

	n.transition(domain.RequestState{Phase: domain.PhaseInFlight, Operation: domain.OperationAsk})

	answer, err := n.backend.Ask(ctx, ports.AskRequest{
		Identity: session.Identity,
		Subject:  subject,
		Question: question,
	})

	return n.settle(domain.OperationAsk, generation, answer, err)
}

// GenerateArtifact asks the backend for a study artifact over the active
// subject's notes.
func (n *Notebook) GenerateArtifact(ctx context.Context, kind domain.ArtifactKind) (domain.Message, error) {
	if !kind.Valid() {
		return domain.Message{}, fmt.Errorf("%w: %q", domain.ErrUnknownArtifactKind, kind)
	}

	session, err := n.requireSession()
	if err != nil {
		return domain.Message{}, err
	}

	if !n.gate.TryAcquire(1) {
		return domain.Message{}, domain.ErrBusy
	}
	defer n.gate.Release(1)

	n.mu.Lock()
	subject := n.subject
	generation := n.generation
	n.mu.Unlock()

	n.transition(domain.RequestState{Phase: domain.PhaseInFlight, Operation: domain.OperationStudio})

	answer, err := n.backend.GenerateStudio(ctx, ports.StudioRequest{
		Identity: session.Identity,
		Subject:  subject,
		Kind:     kind,
	})
	if err == nil {
		answer.Citation = ""
	}

	return n.settle(domain.OperationStudio, generation, answer, err)
}

// settle turns a backend result into the assistant message and appends it
// unless the transcript was reset in the meantime.
func (n *Notebook) settle(op domain.Operation, generation uint64, answer ports.Answer, err error) (domain.Message, error) {
	var message domain.Message
	if err != nil {
		n.logger.Warn("request failed", zap.String("operation", string(op)), zap.Error(err))
		message = domain.AnswerMessage(failureText(err), "", "")
	} else {
		message = domain.AnswerMessage(answer.Text, answer.Citation, answer.Confidence)
	}

	n.mu.Lock()
	stale := generation != n.generation
	if !stale {
		n.transcript = append(n.transcript, message)
	}
	n.mu.Unlock()

	switch {
	case stale:
		n.logger.Info("discarding late response", zap.String("operation", string(op)))
		n.transition(domain.RequestState{Phase: domain.PhaseIdle})
		return domain.Message{}, ErrAnswerDiscarded
	case err != nil:
		n.fail(op, err)
	default:
		n.transition(domain.RequestState{Phase: domain.PhaseSuccess, Operation: op})
	}

	return message, nil
}

func failureText(err error) string {
	var backendErr *domain.BackendError
	if errors.As(err, &backendErr) {
		if msg := strings.TrimSpace(backendErr.Message); msg != "" {
			return msg
		}
	}

	return domain.MessageConnectionFailed
}
