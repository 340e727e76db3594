package session

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/nebula-edge/nebula/core/protocol"
)

type memoryTranscript struct {
	id       string
	messages []protocol.Message
	mu       sync.RWMutex
}

// NewMemoryTranscript creates a Transcript backed by an in-memory slice.
// The transcript is assigned a unique UUIDv7 identifier and is discarded
// with the process.
func NewMemoryTranscript() Transcript {
	return &memoryTranscript{
		id: uuid.Must(uuid.NewV7()).String(),
	}
}

func (t *memoryTranscript) ID() string {
	return t.id
}

func (t *memoryTranscript) Append(msg protocol.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
}

func (t *memoryTranscript) Messages() []protocol.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.messages)
}

func (t *memoryTranscript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}
