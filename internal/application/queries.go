package application

import "github.com/bnema/notebook-cli/internal/domain"

type Snapshot struct {
	Session domain.Session
	Subject domain.Subject
	// Visible holds the attachments of Subject only.
	Visible    []domain.Attachment
	Total      int
	Transcript []domain.Message
	State      domain.RequestState
}
