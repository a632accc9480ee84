package ports

import "github.com/bnema/notebook-cli/internal/domain"

type IDGenerator interface {
	NewAttachmentID() domain.AttachmentID
}
