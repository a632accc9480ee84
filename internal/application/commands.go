package application

import (
	"io"

	"github.com/bnema/notebook-cli/internal/domain"
)

type UploadInput struct {
	// Name is the file name shown in the source list. Directories are stripped.
	Name    string
	Content io.Reader
	// Subject defaults to the active subject when empty.
	Subject domain.Subject
}
