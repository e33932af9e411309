package client

import (
	"context"

	"github.com/dmitrijs2005/textdesk/internal/client/models"
)

// Client is the transport-agnostic contract of the three remote endpoints.
type Client interface {
	// Generate returns the text of the first choice produced for prompt.
	Generate(ctx context.Context, prompt string) (string, error)
	// Translate returns the endpoint's JSON response body verbatim.
	Translate(ctx context.Context, prompt string, src, tgt models.Language) (string, error)
	// Resize returns the base64 payload of the resized image.
	Resize(ctx context.Context, req models.ResizeRequest) (string, error)
}

type requestIDKey struct{}

// WithRequestID attaches the id sent as X-Request-ID by the next call made with ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id attached by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
