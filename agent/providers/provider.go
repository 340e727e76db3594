// Package providers marshals request bodies for a chat-completion endpoint.
package providers

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingModel is returned by Marshal when ChatData carries no model.
var ErrMissingModel = errors.New("model is required")

// Provider converts chat data into the wire body for a specific endpoint.
type Provider interface {
	// Name returns the provider name used in logs.
	Name() string

	// Endpoint returns the absolute URL requests are posted to.
	Endpoint() string

	// Marshal converts chat data to JSON bytes.
	Marshal(data *ChatData) ([]byte, error)
}

// BaseProvider speaks the OpenAI-compatible chat-completion format:
// {"model": ..., "messages": [{"role": ..., "content": ...}]}.
type BaseProvider struct {
	name     string
	endpoint string
}

// NewBaseProvider creates a BaseProvider for the given endpoint.
func NewBaseProvider(name, endpoint string) *BaseProvider {
	return &BaseProvider{
		name:     name,
		endpoint: endpoint,
	}
}

func (p *BaseProvider) Name() string {
	return p.name
}

func (p *BaseProvider) Endpoint() string {
	return p.endpoint
}

type chatBody struct {
	Model    string `json:"model"`
	Messages any    `json:"messages"`
}

func (p *BaseProvider) Marshal(data *ChatData) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("%s: nil chat data", p.name)
	}
	if data.Model == "" {
		return nil, fmt.Errorf("%s: %w", p.name, ErrMissingModel)
	}

	body, err := json.Marshal(chatBody{
		Model:    data.Model,
		Messages: data.Messages,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to marshal chat body: %w", p.name, err)
	}
	return body, nil
}
