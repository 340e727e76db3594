// Package agent is the inference client. It performs exactly one
// request/response cycle against a chat-completion endpoint per call and
// turns every outcome into text that can be shown as an assistant turn.
//
//	c, err := agent.New(&cfg)
//	reply := c.Complete(ctx, "hello", apiKey)
package agent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/nebula-edge/nebula/agent/providers"
	"github.com/nebula-edge/nebula/agent/request"
	"github.com/nebula-edge/nebula/core/config"
	"github.com/nebula-edge/nebula/core/response"
	"github.com/nebula-edge/nebula/observability"
)

const (
	// NoResponse is returned by Complete when the endpoint answered with
	// well-formed JSON that carried no completion text.
	NoResponse = "No response received."

	// ErrorSentinel is returned by Complete for every transport, status or
	// decoding failure.
	ErrorSentinel = "ERROR: Engine failed to connect. Check your API key."

	maxResponseBytes = 8 << 20
)

// Completer performs one inference cycle. Complete never fails: errors are
// reported as display text.
type Completer interface {
	Complete(ctx context.Context, prompt, credential string) string
}

// Option configures a Client after config-driven initialization.
type Option func(*Client)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithProvider overrides the provider built from the config endpoint.
func WithProvider(p providers.Provider) Option {
	return func(c *Client) { c.provider = p }
}

// WithObserver overrides the default no-op observer.
func WithObserver(o observability.Observer) Option {
	return func(c *Client) { c.observer = o }
}

// Client talks to a single chat-completion endpoint with a fixed model.
type Client struct {
	provider providers.Provider
	model    string
	timeout  config.Duration
	http     *http.Client
	observer observability.Observer
}

var _ Completer = (*Client)(nil)

// New creates a Client from configuration. The endpoint must be an absolute
// http(s) URL and the model must be set.
func New(cfg *config.AgentConfig, opts ...Option) (*Client, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model is required", ErrInvalidConfig)
	}
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: endpoint %q is not an absolute http(s) URL", ErrInvalidConfig, cfg.Endpoint)
	}

	c := &Client{
		provider: providers.NewBaseProvider(cfg.Name, cfg.Endpoint),
		model:    cfg.Model,
		timeout:  cfg.Timeout,
		http:     &http.Client{},
		observer: observability.NoOpObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Model returns the model identifier sent with every request.
func (c *Client) Model() string {
	return c.model
}

// Complete sends prompt as a single user message and returns the assistant
// text. A well-formed reply without text yields NoResponse; any other
// failure yields ErrorSentinel.
func (c *Client) Complete(ctx context.Context, prompt, credential string) string {
	observability.Emit(ctx, c.observer, observability.Event{
		Type:   EventRequestStart,
		Level:  observability.LevelInfo,
		Source: "agent.Complete",
		Data: map[string]any{
			"provider":      c.provider.Name(),
			"model":         c.model,
			"prompt_length": len(prompt),
		},
	})

	text, err := c.Chat(ctx, prompt, credential)
	switch {
	case err == nil:
		observability.Emit(ctx, c.observer, observability.Event{
			Type:   EventRequestComplete,
			Level:  observability.LevelInfo,
			Source: "agent.Complete",
			Data:   map[string]any{"response_length": len(text)},
		})
		return text
	case errors.Is(err, ErrNoContent):
		observability.Emit(ctx, c.observer, observability.Event{
			Type:   EventRequestComplete,
			Level:  observability.LevelWarning,
			Source: "agent.Complete",
			Data:   map[string]any{"response_length": 0, "fallback": true},
		})
		return NoResponse
	default:
		observability.Emit(ctx, c.observer, observability.Event{
			Type:   EventRequestError,
			Level:  observability.LevelError,
			Source: "agent.Complete",
			Data:   map[string]any{"error": err.Error()},
		})
		return ErrorSentinel
	}
}

// Chat performs the request and returns the completion text or a typed
// error (ErrTransport, ErrStatus, ErrDecode, ErrNoContent).
func (c *Client) Chat(ctx context.Context, prompt, credential string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout.Std())
		defer cancel()
	}

	req := request.NewChat(c.provider, c.model, prompt, credential)
	body, err := req.Marshal()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.provider.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}
	for k, v := range req.Headers() {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %w", ErrTransport, err)
	}

	parsed, parseErr := response.ParseChat(data)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Code: resp.StatusCode}
		if parseErr == nil && parsed.Error != nil {
			statusErr.Message = parsed.Error.Message
		}
		return "", statusErr
	}
	if parseErr != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, parseErr)
	}

	content := parsed.Content()
	if content == "" {
		return "", ErrNoContent
	}
	return content, nil
}
