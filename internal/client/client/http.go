package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/textdesk/internal/auth"
	"github.com/dmitrijs2005/textdesk/internal/client/models"
	"github.com/dmitrijs2005/textdesk/internal/logging"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	PathGenerate  = "/generate"
	PathTranslate = "/translate"
	PathResize    = "/resize_image"

	// TokenSubject is the subject of outbound bearer tokens.
	TokenSubject = "textdesk"
	tokenTTL     = 5 * time.Minute

	maxErrorBody = 1024
)

// HTTPClient talks JSON over HTTP to the endpoints under baseURL.
// It adds no timeout of its own; cancellation comes from the caller's context.
type HTTPClient struct {
	baseURL  string
	http     *http.Client
	secret   []byte
	validate *validator.Validate
	logger   logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithSecret enables "Authorization: Bearer <jwt>" on every request.
func WithSecret(secret string) Option {
	return func(c *HTTPClient) {
		if secret != "" {
			c.secret = []byte(secret)
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l.With("module", "endpoint_client") }
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("endpoint base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("endpoint base url %q: want http(s)://host[:port]", baseURL)
	}

	c := &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     http.DefaultClient,
		validate: validator.New(),
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) Generate(ctx context.Context, prompt string) (string, error) {
	data, err := c.post(ctx, PathGenerate, generateRequest{InputTexts: []string{prompt}})
	if err != nil {
		return "", err
	}

	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if err := c.validate.Struct(parsed); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if err := c.validate.Struct(parsed.Choices[0]); err != nil {
		return "", fmt.Errorf("%w: choices[0]: %w", ErrMalformedResponse, err)
	}
	return *parsed.Choices[0].Text, nil
}

func (c *HTTPClient) Translate(ctx context.Context, prompt string, src, tgt models.Language) (string, error) {
	data, err := c.post(ctx, PathTranslate, translateRequest{
		InputTexts: []string{prompt},
		SrcLang:    src,
		TgtLang:    tgt,
	})
	if err != nil {
		return "", err
	}

	body := bytes.TrimSpace(data)
	if !json.Valid(body) {
		return "", fmt.Errorf("%w: translate body is not JSON", ErrMalformedResponse)
	}
	return string(body), nil
}

func (c *HTTPClient) Resize(ctx context.Context, req models.ResizeRequest) (string, error) {
	data, err := c.post(ctx, PathResize, resizeRequest{
		Base64Image: req.Base64Image,
		Ratio:       formNumber(req.Ratio),
		Quality:     formNumber(req.Quality),
	})
	if err != nil {
		return "", err
	}

	var parsed resizeResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	// MIME-style encoders wrap base64 at 76 columns.
	parsed.ResizedImage = strings.Join(strings.Fields(parsed.ResizedImage), "")
	if err := c.validate.Struct(parsed); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return parsed.ResizedImage, nil
}

// post sends payload as JSON and returns the body of a 2xx answer.
func (c *HTTPClient) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", path, err)
	}

	reqID := RequestID(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	if len(c.secret) > 0 {
		token, err := auth.GenerateToken(TokenSubject, reqID, c.secret, tokenTTL)
		if err != nil {
			return nil, fmt.Errorf("sign token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	c.logger.Debug(ctx, "endpoint answered",
		"path", path, "req_id", reqID, "status", resp.StatusCode,
		"request_bytes", len(body), "response_bytes", len(data), "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}
