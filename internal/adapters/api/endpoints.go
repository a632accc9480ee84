package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/bnema/notebook-cli/internal/ports"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
)

// sniffLimit matches mimetype's default read limit.
const sniffLimit = 3072

func (c *Client) Login(ctx context.Context, req ports.LoginRequest) (domain.Session, error) {
	resp, err := c.post(ctx, loginPath, func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/json").
			SetBody(loginPayload{Username: req.Username, Password: req.Password})
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}

	var payload statusResponse
	decodeErr := json.Unmarshal(resp.body, &payload)
	if !resp.ok() || strings.EqualFold(payload.Status, statusError) {
		return domain.Session{}, fmt.Errorf("login: %w", rejection(resp))
	}
	if decodeErr != nil {
		return domain.Session{}, fmt.Errorf("login: %w: %w: %v", domain.ErrTransport, ErrMalformedResponse, decodeErr)
	}

	session := domain.Session{Identity: strings.TrimSpace(payload.User)}
	if !session.Authenticated() {
		return domain.Session{}, fmt.Errorf("login: %w", &domain.BackendError{Status: resp.status, Message: strings.TrimSpace(payload.Message)})
	}

	return session, nil
}

func (c *Client) Upload(ctx context.Context, req ports.UploadRequest) error {
	if req.Content == nil {
		return fmt.Errorf("upload: %w: file content is required", domain.ErrValidation)
	}

	contentType, content, err := sniffContentType(req.Content)
	if err != nil {
		return fmt.Errorf("upload: read %q: %w", req.FileName, err)
	}

	resp, err := c.post(ctx, uploadPath, func(r *resty.Request) {
		r.SetMultipartField("file", req.FileName, contentType, content).
			SetMultipartFormData(map[string]string{
				"subject": string(req.Subject),
				"user":    req.Identity,
			})
	})
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	if !resp.ok() {
		return fmt.Errorf("upload: %w", rejection(resp))
	}

	var payload statusResponse
	if err := json.Unmarshal(resp.body, &payload); err == nil {
		if payload.Status != "" && !strings.EqualFold(payload.Status, statusSuccess) {
			return fmt.Errorf("upload: %w", rejection(resp))
		}
	}

	return nil
}

func (c *Client) Ask(ctx context.Context, req ports.AskRequest) (ports.Answer, error) {
	resp, err := c.post(ctx, askPath, func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/json").
			SetBody(askPayload{User: req.Identity, Subject: string(req.Subject), Question: req.Question})
	})
	if err != nil {
		return ports.Answer{}, fmt.Errorf("ask: %w", err)
	}

	return answerFrom("ask", resp)
}

func (c *Client) GenerateStudio(ctx context.Context, req ports.StudioRequest) (ports.Answer, error) {
	if !req.Kind.Valid() {
		return ports.Answer{}, fmt.Errorf("generate studio: %w: %q", domain.ErrUnknownArtifactKind, req.Kind)
	}

	resp, err := c.post(ctx, studioPath, func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/json").
			SetBody(studioPayload{User: req.Identity, Subject: string(req.Subject), Task: string(req.Kind)})
	})
	if err != nil {
		return ports.Answer{}, fmt.Errorf("generate studio: %w", err)
	}

	return answerFrom("generate studio", resp)
}

func answerFrom(op string, resp response) (ports.Answer, error) {
	if !resp.ok() {
		return ports.Answer{}, fmt.Errorf("%s: %w", op, rejection(resp))
	}

	payload, err := decodeAnswer(resp)
	if err != nil {
		return ports.Answer{}, fmt.Errorf("%s: %w", op, err)
	}

	return ports.Answer{
		Text:       *payload.Answer,
		Citation:   strings.TrimSpace(payload.Citation),
		Confidence: strings.TrimSpace(payload.Confidence),
	}, nil
}

// sniffContentType peeks at the head of r and returns a reader that still
// yields the full content.
func sniffContentType(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLimit)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, err
	}
	head = head[:n]

	return mimetype.Detect(head).String(), io.MultiReader(bytes.NewReader(head), r), nil
}
