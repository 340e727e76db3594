// Package session owns the state of one chat session: the credential, the
// setup flag, the append-only transcript and the awaiting-response flag.
//
// All mutation goes through Store. The transcript only grows, and at most
// one user message is waiting for an assistant reply at any time.
package session

import "github.com/nebula-edge/nebula/core/protocol"

// Transcript holds an ordered, append-only sequence of conversation turns.
// Implementations must be safe for concurrent use.
type Transcript interface {
	// ID returns the unique transcript identifier.
	ID() string
	// Append adds a turn to the end of the transcript.
	Append(msg protocol.Message)
	// Messages returns a copy of the transcript, oldest first.
	Messages() []protocol.Message
	// Len returns the number of turns.
	Len() int
}
