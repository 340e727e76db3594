// Package request binds a provider, model, prompt and credential into a
// single outbound chat request.
package request

import "github.com/nebula-edge/nebula/agent/providers"

// Request defines the interface for outbound requests.
type Request interface {
	// Headers returns the HTTP headers for this request.
	Headers() map[string]string

	// Marshal converts the request to JSON bytes.
	Marshal() ([]byte, error)

	// Provider returns the provider for this request.
	Provider() providers.Provider

	// Model returns the model identifier for this request.
	Model() string
}
