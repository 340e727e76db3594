package kernel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nebula-edge/nebula/core/config"
)

const (
	defaultObserver = "slog"
	defaultGreeting = "Hello"
)

// Config holds initialization parameters for the kernel and its subsystems.
type Config struct {
	Agent    config.AgentConfig `json:"agent" yaml:"agent"`
	Observer string             `json:"observer,omitempty" yaml:"observer,omitempty"`
	Greeting string             `json:"greeting,omitempty" yaml:"greeting,omitempty"`
}

// DefaultConfig returns a Config with the default endpoint, model and
// observer.
func DefaultConfig() Config {
	return Config{
		Agent:    config.DefaultAgentConfig(),
		Observer: defaultObserver,
		Greeting: defaultGreeting,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	c.Agent.Merge(&source.Agent)
	if source.Observer != "" {
		c.Observer = source.Observer
	}
	if source.Greeting != "" {
		c.Greeting = source.Greeting
	}
}

// LoadConfig reads a config file, merges it with defaults, and returns the
// resulting Config. Files ending in .yaml or .yml are read as YAML, anything
// else as JSON.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &loaded)
	default:
		err = json.Unmarshal(data, &loaded)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
