// Package config holds the configuration types shared by the inference
// client and the kernel.
package config

const (
	// DefaultEndpoint is the chat-completion URL the client posts to.
	DefaultEndpoint = "https://inference.nebulablock.com/v1/chat/completions"

	// DefaultModel is the model identifier placed in every request body.
	DefaultModel = "claude-3-opus"

	defaultName = "nebula"
)

// AgentConfig describes the single inference endpoint the client talks to.
// Timeout is zero by default: requests wait indefinitely unless a timeout is
// configured explicitly.
type AgentConfig struct {
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Endpoint string   `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Model    string   `json:"model,omitempty" yaml:"model,omitempty"`
	Timeout  Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// DefaultAgentConfig returns an AgentConfig pointing at the default endpoint
// and model with no request timeout.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		Name:     defaultName,
		Endpoint: DefaultEndpoint,
		Model:    DefaultModel,
	}
}

// Merge applies non-zero values from source into c.
func (c *AgentConfig) Merge(source *AgentConfig) {
	if source.Name != "" {
		c.Name = source.Name
	}
	if source.Endpoint != "" {
		c.Endpoint = source.Endpoint
	}
	if source.Model != "" {
		c.Model = source.Model
	}
	if source.Timeout > 0 {
		c.Timeout = source.Timeout
	}
}
