// Package response decodes chat-completion responses returned by the
// inference endpoint.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	errInvalidJSON = errors.New("body is not valid JSON")
	errNotObject   = errors.New("body is not a JSON object")
)

// TokenUsage reports token consumption for a single completion.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens"`
}

// APIError is the error object some providers return alongside a non-2xx
// status.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Code    any    `json:"code,omitempty"`
}

// ChatResponse represents the response from a chat-completion request.
// Only choices[0].message.content is load-bearing. The remaining fields are
// decoded best-effort for logging and stay zero when their shape is
// unexpected.
type ChatResponse struct {
	ID      string
	Object  string
	Created int64
	Model   string
	Usage   *TokenUsage
	Error   *APIError

	content string
}

// Content returns the text at choices[0].message.content, or an empty string
// when that path is absent, null or not a string.
func (r *ChatResponse) Content() string {
	return r.content
}

// ParseChat parses a chat response from JSON bytes.
// Returns an error only when body is not a JSON object. Every other shape
// parses successfully; a missing completion path yields an empty Content.
func ParseChat(body []byte) (*ChatResponse, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("failed to parse chat response: %w", errInvalidJSON)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("failed to parse chat response: %w", errNotObject)
	}

	response := &ChatResponse{content: completionText(fields["choices"])}
	decodeField(fields, "id", &response.ID)
	decodeField(fields, "object", &response.Object)
	decodeField(fields, "created", &response.Created)
	decodeField(fields, "model", &response.Model)

	var usage TokenUsage
	if decodeField(fields, "usage", &usage) {
		response.Usage = &usage
	}
	response.Error = apiError(fields["error"])

	return response, nil
}

// completionText walks choices[0].message.content one level at a time so a
// shape mismatch anywhere on the path reads as absent.
func completionText(choices json.RawMessage) string {
	var list []json.RawMessage
	if json.Unmarshal(choices, &list) != nil || len(list) == 0 {
		return ""
	}

	var choice map[string]json.RawMessage
	if json.Unmarshal(list[0], &choice) != nil {
		return ""
	}

	var message map[string]json.RawMessage
	if json.Unmarshal(choice["message"], &message) != nil {
		return ""
	}

	var content string
	if json.Unmarshal(message["content"], &content) != nil {
		return ""
	}
	return content
}

// apiError accepts both {"error": {"message": ...}} and {"error": "..."}.
func apiError(raw json.RawMessage) *APIError {
	if len(raw) == 0 {
		return nil
	}

	var obj APIError
	if json.Unmarshal(raw, &obj) == nil && obj.Message != "" {
		return &obj
	}

	var msg string
	if json.Unmarshal(raw, &msg) == nil && msg != "" {
		return &APIError{Message: msg}
	}
	return nil
}

// decodeField unmarshals fields[key] into dst and reports whether it did.
// A missing, null or mistyped field leaves dst untouched.
func decodeField(fields map[string]json.RawMessage, key string, dst any) bool {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
