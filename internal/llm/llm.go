package llm

import (
	"context"
	"errors"
)

// Client abstracts the text-generation capability used for technical-test
// generation. Implementations must respect ctx cancellation and carry their
// own request timeout; callers treat any error as a signal to degrade to the
// deterministic fallback.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is the stub wired when no provider is configured. Every
// call fails, which pushes consumers onto their fallback paths.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotImplemented
}
