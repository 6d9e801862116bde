package openrouter

import "context"

// IOpenRouter defines the interface for the OpenRouter chat API client.
// Implementations are safe for concurrent use.
type IOpenRouter interface {
	// ChatCompletion sends a chat completion request to OpenRouter
	ChatCompletion(ctx context.Context, req *Request) (*Response, error)

	// Model returns the model being used
	Model() string
}

// New creates a new OpenRouter client with the given configuration
func New(cfg Config) (IOpenRouter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newOpenRouterImpl(cfg), nil
}
