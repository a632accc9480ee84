package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/bnema/notebook-cli/internal/ports"
	"github.com/bnema/notebook-cli/internal/version"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://127.0.0.1:5000"
	DefaultTimeout = 30 * time.Second

	loginPath  = "/login"
	uploadPath = "/upload"
	askPath    = "/ask"
	studioPath = "/generate-studio"

	requestIDHeader  = "X-Request-ID"
	maxResponseBytes = 1 << 20
)

var ErrMalformedResponse = errors.New("malformed backend response")

type Config struct {
	BaseURL string
	// Timeout bounds every request. Expiry surfaces as domain.ErrTransport.
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	resty  *resty.Client
	logger *zap.Logger
}

var _ ports.Backend = (*Client)(nil)

func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	var rc *resty.Client
	if cfg.HTTPClient != nil {
		rc = resty.NewWithClient(cfg.HTTPClient)
	} else {
		rc = resty.New()
	}

	rc.
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", version.UserAgent()).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{sugar: logger.Named("resty").Sugar()})

	return &Client{
		resty:  rc,
		logger: logger.Named("api"),
	}, nil
}

type response struct {
	status    int
	body      []byte
	requestID string
}

func (r response) ok() bool {
	return r.status >= http.StatusOK && r.status < http.StatusMultipleChoices
}

func (c *Client) post(ctx context.Context, path string, prepare func(*resty.Request)) (response, error) {
	requestID := uuid.NewString()

	req := c.resty.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, requestID).
		SetDoNotParseResponse(true)
	prepare(req)

	started := time.Now()
	resp, err := req.Post(path)
	if resp != nil && resp.RawBody() != nil {
		defer func() { _ = resp.RawBody().Close() }()
	}
	if err != nil {
		c.logger.Warn("backend request failed",
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err),
		)
		return response{requestID: requestID}, fmt.Errorf("post %s: %w: %w", path, domain.ErrTransport, err)
	}

	var body []byte
	if raw := resp.RawBody(); raw != nil {
		body, err = io.ReadAll(io.LimitReader(raw, maxResponseBytes))
		if err != nil {
			return response{requestID: requestID}, fmt.Errorf("read %s response: %w: %w", path, domain.ErrTransport, err)
		}
	}

	c.logger.Debug("backend request finished",
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("elapsed", time.Since(started)),
	)

	return response{status: resp.StatusCode(), body: body, requestID: requestID}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	return strings.TrimRight(parsed.String(), "/"), nil
}

// restyLogger routes resty's own diagnostics into zap instead of stderr.
type restyLogger struct {
	sugar *zap.SugaredLogger
}

func (l restyLogger) Errorf(format string, v ...interface{}) { l.sugar.Errorf(format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.sugar.Warnf(format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.sugar.Debugf(format, v...) }
