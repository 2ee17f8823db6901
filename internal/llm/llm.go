package llm

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no API credential is configured. No
// upstream call is attempted in that case.
var ErrNotConfigured = errors.New("generative text service is not configured")

// ErrUpstream is returned when the upstream call fails or the response
// carries no usable text.
var ErrUpstream = errors.New("generative text service failed")

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}
