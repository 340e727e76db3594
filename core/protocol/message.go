// Package protocol defines the conversation types shared by the session
// store, the inference client and the presentation layer.
package protocol

import "fmt"

// Role identifies the speaker of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the roles a transcript may contain.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

// ParseRole converts s into a Role, rejecting anything outside the
// user/assistant pair.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid role: %q", s)
	}
	return r, nil
}

// Message is a single conversation turn. Messages are values; once appended
// to a transcript they are never modified.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewMessage creates a Message with the given role and content.
//
// Example:
//
//	msg := protocol.NewMessage(protocol.RoleUser, "Hello, world!")
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// InitMessages creates a single-element message slice from a role and content.
// The inference request body is always built from exactly one user message.
func InitMessages(role Role, content string) []Message {
	return []Message{NewMessage(role, content)}
}

// IsUser reports whether the turn was authored by the user.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}
