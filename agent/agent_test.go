package agent_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nebula-edge/nebula/agent"
	"github.com/nebula-edge/nebula/core/config"
	"github.com/nebula-edge/nebula/observability"
	"github.com/nebula-edge/nebula/observability/observabilitytest"
)

// --- Test helpers ---

type capturedRequest struct {
	method  string
	headers http.Header
	body    map[string]any
}

func newProvider(t *testing.T, status int, body string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			captured.method = r.Method
			captured.headers = r.Header.Clone()
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &captured.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, endpoint string, opts ...agent.Option) *agent.Client {
	t.Helper()
	cfg := config.DefaultAgentConfig()
	cfg.Endpoint = endpoint
	c, err := agent.New(&cfg, opts...)
	if err != nil {
		t.Fatalf("agent.New failed: %v", err)
	}
	return c
}

func chatBody(content string) string {
	return fmt.Sprintf(`{"choices":[{"index":0,"message":{"role":"assistant","content":%q}}]}`, content)
}

type failingTransport struct{ err error }

func (f failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, f.err
}

// --- Tests ---

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.AgentConfig
	}{
		{"missing model", config.AgentConfig{Endpoint: config.DefaultEndpoint}},
		{"missing endpoint", config.AgentConfig{Model: "m"}},
		{"relative endpoint", config.AgentConfig{Model: "m", Endpoint: "/v1/chat/completions"}},
		{"unsupported scheme", config.AgentConfig{Model: "m", Endpoint: "ftp://example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := agent.New(&tt.cfg)
			if !errors.Is(err, agent.ErrInvalidConfig) {
				t.Errorf("got error %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestComplete_Success(t *testing.T) {
	var captured capturedRequest
	srv := newProvider(t, http.StatusOK, chatBody("hi there"), &captured)
	c := newClient(t, srv.URL)

	got := c.Complete(context.Background(), "hello", "sk-ant-test")

	if got != "hi there" {
		t.Errorf("got %q, want %q", got, "hi there")
	}
	if captured.method != http.MethodPost {
		t.Errorf("got method %s, want POST", captured.method)
	}
	if h := captured.headers.Get("Authorization"); h != "Bearer sk-ant-test" {
		t.Errorf("got Authorization %q, want %q", h, "Bearer sk-ant-test")
	}
	if h := captured.headers.Get("Content-Type"); h != "application/json" {
		t.Errorf("got Content-Type %q, want application/json", h)
	}
	if captured.body["model"] != config.DefaultModel {
		t.Errorf("got model %v, want %s", captured.body["model"], config.DefaultModel)
	}
	messages, ok := captured.body["messages"].([]any)
	if !ok || len(messages) != 1 {
		t.Fatalf("got messages %v, want exactly one", captured.body["messages"])
	}
	msg := messages[0].(map[string]any)
	if msg["role"] != "user" || msg["content"] != "hello" {
		t.Errorf("got message %v, want {user hello}", msg)
	}
}

func TestComplete_SuccessWithMistypedFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"numeric id", `{"id":123,"choices":[{"message":{"role":"assistant","content":"hi there"}}]}`},
		{"fractional usage", `{"usage":{"total_tokens":1.5},"choices":[{"message":{"content":"hi there"}}]}`},
		{"string index", `{"choices":[{"index":"0","message":{"content":"hi there"}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newProvider(t, http.StatusOK, tt.body, nil)
			c := newClient(t, srv.URL)

			if got := c.Complete(context.Background(), "hello", "k"); got != "hi there" {
				t.Errorf("got %q, want %q", got, "hi there")
			}
		})
	}
}

func TestComplete_ConfiguredModel(t *testing.T) {
	var captured capturedRequest
	srv := newProvider(t, http.StatusOK, chatBody("ok"), &captured)

	cfg := config.DefaultAgentConfig()
	cfg.Endpoint = srv.URL
	cfg.Model = "claude-3-5-sonnet"
	c, err := agent.New(&cfg)
	if err != nil {
		t.Fatalf("agent.New failed: %v", err)
	}

	c.Complete(context.Background(), "hello", "k")

	if captured.body["model"] != "claude-3-5-sonnet" {
		t.Errorf("got model %v, want claude-3-5-sonnet", captured.body["model"])
	}
}

func TestComplete_NoResponseFallback(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no choices field", `{"id": "x", "model": "claude-3-opus"}`},
		{"empty choices", `{"choices": []}`},
		{"empty content", chatBody("")},
		{"null content", `{"choices":[{"message":{"role":"assistant","content":null}}]}`},
		{"empty object", `{}`},
		{"choices is an object", `{"choices":{}}`},
		{"choice is a string", `{"choices":["x"]}`},
		{"message is a string", `{"choices":[{"message":"x"}]}`},
		{"content is a number", `{"choices":[{"message":{"content":42}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newProvider(t, http.StatusOK, tt.body, nil)
			c := newClient(t, srv.URL)

			if got := c.Complete(context.Background(), "hello", "k"); got != "No response received." {
				t.Errorf("got %q, want %q", got, "No response received.")
			}
		})
	}
}

func TestComplete_ErrorSentinel(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"malformed json", http.StatusOK, `{invalid`},
		{"json array", http.StatusOK, `["hi there"]`},
		{"html gateway page", http.StatusBadGateway, `<html>502</html>`},
		{"unauthorized with error object", http.StatusUnauthorized, `{"error":{"message":"invalid x-api-key"}}`},
		{"server error without body", http.StatusInternalServerError, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newProvider(t, tt.status, tt.body, nil)
			c := newClient(t, srv.URL)

			got := c.Complete(context.Background(), "hello", "k")
			if got != "ERROR: Engine failed to connect. Check your API key." {
				t.Errorf("got %q, want error sentinel", got)
			}
		})
	}
}

func TestComplete_TransportFailure(t *testing.T) {
	c := newClient(t, "http://127.0.0.1:1/v1/chat/completions",
		agent.WithHTTPClient(&http.Client{Transport: failingTransport{err: errors.New("network unreachable")}}),
	)

	if got := c.Complete(context.Background(), "ping", "k"); got != agent.ErrorSentinel {
		t.Errorf("got %q, want %q", got, agent.ErrorSentinel)
	}
}

func TestComplete_ClosedServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	c := newClient(t, endpoint)

	if got := c.Complete(context.Background(), "ping", "k"); got != agent.ErrorSentinel {
		t.Errorf("got %q, want %q", got, agent.ErrorSentinel)
	}
}

func TestComplete_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	cfg := config.DefaultAgentConfig()
	cfg.Endpoint = srv.URL
	cfg.Timeout = config.Duration(50 * time.Millisecond)
	c, err := agent.New(&cfg)
	if err != nil {
		t.Fatalf("agent.New failed: %v", err)
	}

	start := time.Now()
	got := c.Complete(context.Background(), "hello", "k")

	if got != agent.ErrorSentinel {
		t.Errorf("got %q, want error sentinel", got)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout not applied, call took %v", elapsed)
	}
}

func TestChat_TypedErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"decode", http.StatusOK, `nope`, agent.ErrDecode},
		{"status", http.StatusTooManyRequests, `{"error":{"message":"slow down"}}`, agent.ErrStatus},
		{"no content", http.StatusOK, `{}`, agent.ErrNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newProvider(t, tt.status, tt.body, nil)
			c := newClient(t, srv.URL)

			_, err := c.Chat(context.Background(), "hello", "k")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestChat_StatusErrorMessage(t *testing.T) {
	srv := newProvider(t, http.StatusUnauthorized, `{"error":{"message":"invalid x-api-key"}}`, nil)
	c := newClient(t, srv.URL)

	_, err := c.Chat(context.Background(), "hello", "k")

	var statusErr *agent.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if statusErr.Code != http.StatusUnauthorized {
		t.Errorf("got code %d, want 401", statusErr.Code)
	}
	if statusErr.Message != "invalid x-api-key" {
		t.Errorf("got message %q, want %q", statusErr.Message, "invalid x-api-key")
	}
}

func TestComplete_OneRequestPerCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, chatBody("ok"))
	}))
	t.Cleanup(srv.Close)
	c := newClient(t, srv.URL)

	c.Complete(context.Background(), "a", "k")
	c.Complete(context.Background(), "b", "k")

	if got := calls.Load(); got != 2 {
		t.Errorf("got %d requests, want 2", got)
	}
}

func TestComplete_Events(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rec := &observabilitytest.Recorder{}
		srv := newProvider(t, http.StatusOK, chatBody("hi"), nil)
		c := newClient(t, srv.URL, agent.WithObserver(rec))

		c.Complete(context.Background(), "hello", "sk-secret")

		want := []observability.EventType{agent.EventRequestStart, agent.EventRequestComplete}
		assertTypes(t, rec.Types(), want)
		assertNoSecret(t, rec.Events(), "sk-secret")
	})

	t.Run("failure", func(t *testing.T) {
		rec := &observabilitytest.Recorder{}
		srv := newProvider(t, http.StatusUnauthorized, `{}`, nil)
		c := newClient(t, srv.URL, agent.WithObserver(rec))

		c.Complete(context.Background(), "hello", "sk-secret")

		want := []observability.EventType{agent.EventRequestStart, agent.EventRequestError}
		assertTypes(t, rec.Types(), want)
		assertNoSecret(t, rec.Events(), "sk-secret")
	})
}

func assertTypes(t *testing.T, got, want []observability.EventType) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got events %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func assertNoSecret(t *testing.T, events []observability.Event, secret string) {
	t.Helper()
	for _, e := range events {
		for k, v := range e.Data {
			if strings.Contains(fmt.Sprint(v), secret) {
				t.Errorf("event %s leaked credential in %q", e.Type, k)
			}
		}
	}
}
