package llm

import "context"

// Provider generates text from a conversation.
type Provider interface {
	// Generate returns the completion for req. Implementations must honour
	// ctx cancellation.
	Generate(ctx context.Context, req Request) (*Response, error)
	// Name identifies the provider, e.g. "google".
	Name() string
	// Model is the default model used when a request leaves it blank.
	Model() string
}
