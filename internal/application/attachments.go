package application

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/bnema/notebook-cli/internal/ports"
	"go.uber.org/zap"
)

// Upload sends a file for subject ingestion and records it once the backend
// acknowledges it.
func (n *Notebook) Upload(ctx context.Context, in UploadInput) (domain.Attachment, error) {
	session, err := n.requireSession()
	if err != nil {
		return domain.Attachment{}, err
	}

	name := filepath.Base(strings.TrimSpace(in.Name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return domain.Attachment{}, fmt.Errorf("%w: file name is required", domain.ErrValidation)
	}
	if in.Content == nil {
		return domain.Attachment{}, fmt.Errorf("%w: file content is required", domain.ErrValidation)
	}

	subject := in.Subject
	if subject == "" {
		subject = n.ActiveSubject()
	}
	if !subject.Valid() {
		return domain.Attachment{}, fmt.Errorf("%w: %q", domain.ErrUnknownSubject, subject)
	}

	if !domain.HasAcceptedExtension(name) {
		n.logger.Warn("uploading file with unexpected extension",
			zap.String("file", name),
			zap.Strings("accepted", domain.AcceptedExtensions),
		)
	}

	if !n.gate.TryAcquire(1) {
		return domain.Attachment{}, domain.ErrBusy
	}
	defer n.gate.Release(1)

	n.mu.Lock()
	epoch := n.epoch
	n.mu.Unlock()

	n.transition(domain.RequestState{Phase: domain.PhaseInFlight, Operation: domain.OperationUpload})

	err = n.backend.Upload(ctx, ports.UploadRequest{
		Identity: session.Identity,
		Subject:  subject,
		FileName: name,
		Content:  in.Content,
	})
	if err != nil {
		n.logger.Warn("upload failed", zap.String("file", name), zap.String("subject", string(subject)), zap.Error(err))
		n.fail(domain.OperationUpload, err)
		return domain.Attachment{}, fmt.Errorf("upload %s: %w", name, err)
	}

	attachment := domain.Attachment{
		ID:          n.ids.NewAttachmentID(),
		DisplayName: name,
		Subject:     subject,
		AddedAt:     n.clock.Now(),
	}

	n.mu.Lock()
	stale := epoch != n.epoch
	n.mu.Unlock()
	if stale {
		n.transition(domain.RequestState{Phase: domain.PhaseIdle})
		return domain.Attachment{}, ErrAnswerDiscarded
	}

	if err := n.attachments.Save(ctx, attachment); err != nil {
		n.fail(domain.OperationUpload, err)
		return domain.Attachment{}, fmt.Errorf("save attachment: %w", err)
	}

	n.mu.Lock()
	n.sources = append(n.sources, attachment)
	if subject == n.subject {
		n.transcript = append(n.transcript, domain.Message{
			Role: domain.RoleSystem,
			Text: fmt.Sprintf("%s added to %s notes.", name, subject.Label()),
		})
	}
	n.mu.Unlock()

	n.logger.Info("upload succeeded",
		zap.String("attachment_id", string(attachment.ID)),
		zap.String("file", name),
		zap.String("subject", string(subject)),
	)
	n.transition(domain.RequestState{Phase: domain.PhaseSuccess, Operation: domain.OperationUpload})

	return attachment, nil
}

// RemoveAttachment forgets an attachment locally. The backend keeps whatever
// it indexed.
func (n *Notebook) RemoveAttachment(ctx context.Context, id domain.AttachmentID) error {
	if err := n.attachments.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove attachment: %w", err)
	}

	n.mu.Lock()
	kept := n.sources[:0:0]
	for _, attachment := range n.sources {
		if attachment.ID != id {
			kept = append(kept, attachment)
		}
	}
	n.sources = kept
	n.mu.Unlock()

	n.logger.Info("attachment removed", zap.String("attachment_id", string(id)))
	return nil
}

// VisibleAttachments returns the attachments of the active subject in upload
// order.
func (n *Notebook) VisibleAttachments() []domain.Attachment {
	n.mu.Lock()
	defer n.mu.Unlock()

	return domain.FilterBySubject(n.sources, n.subject)
}

func (n *Notebook) Attachments() []domain.Attachment {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]domain.Attachment(nil), n.sources...)
}
