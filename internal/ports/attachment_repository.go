package ports

import (
	"context"

	"github.com/bnema/notebook-cli/internal/domain"
)

type AttachmentRepository interface {
	List(ctx context.Context) ([]domain.Attachment, error)
	Save(ctx context.Context, attachment domain.Attachment) error
	Delete(ctx context.Context, id domain.AttachmentID) error
	Clear(ctx context.Context) error
}
