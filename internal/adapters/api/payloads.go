package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bnema/notebook-cli/internal/domain"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type askPayload struct {
	User     string `json:"user"`
	Subject  string `json:"subject"`
	Question string `json:"question"`
}

type studioPayload struct {
	User    string `json:"user"`
	Subject string `json:"subject"`
	Task    string `json:"task"`
}

type statusResponse struct {
	Status  string `json:"status"`
	User    string `json:"user"`
	Message string `json:"message"`
}

type answerResponse struct {
	Answer     *string `json:"answer"`
	Citation   string  `json:"citation"`
	Confidence string  `json:"confidence"`
	Message    string  `json:"message"`
}

// rejection builds the BackendError for a non-2xx or status=error reply,
// lifting the message field when the body carries one.
func rejection(resp response) *domain.BackendError {
	var payload statusResponse
	_ = json.Unmarshal(resp.body, &payload)

	return &domain.BackendError{
		Status:  resp.status,
		Message: strings.TrimSpace(payload.Message),
	}
}

func decodeAnswer(resp response) (answerResponse, error) {
	var payload answerResponse
	if err := json.Unmarshal(resp.body, &payload); err != nil {
		return answerResponse{}, fmt.Errorf("%w: %w: %v", domain.ErrTransport, ErrMalformedResponse, err)
	}
	if payload.Answer == nil {
		return answerResponse{}, fmt.Errorf("%w: %w: answer field missing", domain.ErrTransport, ErrMalformedResponse)
	}

	return payload, nil
}
