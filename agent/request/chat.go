package request

import (
	"github.com/nebula-edge/nebula/agent/providers"
	"github.com/nebula-edge/nebula/core/protocol"
)

// ChatRequest is a single-message chat completion. The conversation history
// is never sent; each request carries only the prompt being answered.
type ChatRequest struct {
	prompt     string
	credential string
	provider   providers.Provider
	model      string
}

// NewChat creates a ChatRequest. The credential is sent as a bearer token.
func NewChat(p providers.Provider, model, prompt, credential string) *ChatRequest {
	return &ChatRequest{
		prompt:     prompt,
		credential: credential,
		provider:   p,
		model:      model,
	}
}

var _ Request = (*ChatRequest)(nil)

func (r *ChatRequest) Headers() map[string]string {
	return map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + r.credential,
	}
}

func (r *ChatRequest) Marshal() ([]byte, error) {
	return r.provider.Marshal(&providers.ChatData{
		Model:    r.model,
		Messages: protocol.InitMessages(protocol.RoleUser, r.prompt),
	})
}

func (r *ChatRequest) Provider() providers.Provider {
	return r.provider
}

func (r *ChatRequest) Model() string {
	return r.model
}
