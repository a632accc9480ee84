package toml

import (
	"context"
	"fmt"

	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/bnema/notebook-cli/internal/ports"
)

type AttachmentRepository struct {
	file *StateFile
}

var _ ports.AttachmentRepository = (*AttachmentRepository)(nil)

func NewAttachmentRepository(file *StateFile) *AttachmentRepository {
	return &AttachmentRepository{file: file}
}

// List returns attachments in insertion order.
func (r *AttachmentRepository) List(ctx context.Context) ([]domain.Attachment, error) {
	var attachments []domain.Attachment
	err := r.file.view(ctx, func(file fileSchema) error {
		attachments = make([]domain.Attachment, 0, len(file.Attachments))
		for i, entry := range file.Attachments {
			attachment := fromAttachmentSchema(entry)
			if err := attachment.Validate(); err != nil {
				return fmt.Errorf("%w: attachment %d in %s: %w", domain.ErrInvalidState, i+1, r.file.Path(), err)
			}
			attachments = append(attachments, attachment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return attachments, nil
}

func (r *AttachmentRepository) Save(ctx context.Context, attachment domain.Attachment) error {
	if err := attachment.Validate(); err != nil {
		return fmt.Errorf("save attachment: %w", err)
	}

	encoded := toAttachmentSchema(attachment)
	return r.file.update(ctx, func(file *fileSchema) error {
		for i := range file.Attachments {
			if file.Attachments[i].ID == encoded.ID {
				file.Attachments[i] = encoded
				return nil
			}
		}

		file.Attachments = append(file.Attachments, encoded)
		return nil
	})
}

func (r *AttachmentRepository) Delete(ctx context.Context, id domain.AttachmentID) error {
	return r.file.update(ctx, func(file *fileSchema) error {
		for i := range file.Attachments {
			if file.Attachments[i].ID == string(id) {
				file.Attachments = append(file.Attachments[:i], file.Attachments[i+1:]...)
				return nil
			}
		}

		return fmt.Errorf("%w: %s", domain.ErrAttachmentNotFound, id)
	})
}

func (r *AttachmentRepository) Clear(ctx context.Context) error {
	return r.file.update(ctx, func(file *fileSchema) error {
		file.Attachments = nil
		return nil
	})
}
