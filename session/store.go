package session

import (
	"sync"

	"github.com/nebula-edge/nebula/core/protocol"
)

// Dispatch is what a successful SubmitUserMessage hands to the inference
// client: the prompt and the credential current at submission time.
type Dispatch struct {
	Prompt     string
	Credential string
	// Turn is the transcript index of the user turn that was appended.
	Turn int
}

// Option configures a Store.
type Option func(*Store)

// WithTranscript replaces the default in-memory transcript.
func WithTranscript(t Transcript) Option {
	return func(s *Store) { s.transcript = t }
}

// Store is the single owner of a session's state. Every method is safe for
// concurrent use.
type Store struct {
	mu            sync.Mutex
	transcript    Transcript
	credential    string
	setupComplete bool
	awaiting      bool
	subscribers   map[*subscriber]struct{}
}

// NewStore creates an empty Store: no credential, setup incomplete, empty
// transcript, nothing in flight.
func NewStore(opts ...Option) *Store {
	s := &Store{
		subscribers: make(map[*subscriber]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.transcript == nil {
		s.transcript = NewMemoryTranscript()
	}
	return s
}

// ID returns the session identifier.
func (s *Store) ID() string {
	return s.transcript.ID()
}

// CommitCredential stores value as the credential and completes setup.
// An empty value is rejected and leaves the state unchanged.
func (s *Store) CommitCredential(value string) error {
	if value == "" {
		return invalid("commit credential", ErrCredentialRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.credential = value
	s.setupComplete = true
	s.publishLocked()
	return nil
}

// ResetSetup returns the session to the setup step. The stored credential
// and the transcript are kept.
func (s *Store) ResetSetup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setupComplete = false
	s.publishLocked()
}

// SubmitUserMessage appends a user turn and marks the session as awaiting a
// reply. It is rejected when text is empty, setup is incomplete, or a reply
// is already awaited; a rejection leaves the state unchanged.
//
// The caller must pass the returned Dispatch to exactly one inference call
// and settle it with RecordAssistantReply.
func (s *Store) SubmitUserMessage(text string) (Dispatch, error) {
	const op = "submit message"

	if text == "" {
		return Dispatch{}, invalid(op, ErrEmptyMessage)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.setupComplete {
		return Dispatch{}, invalid(op, ErrSetupIncomplete)
	}
	if s.awaiting {
		return Dispatch{}, invalid(op, ErrAwaitingResponse)
	}

	turn := s.transcript.Len()
	s.transcript.Append(protocol.NewMessage(protocol.RoleUser, text))
	s.awaiting = true
	s.publishLocked()

	return Dispatch{
		Prompt:     text,
		Credential: s.credential,
		Turn:       turn,
	}, nil
}

// RecordAssistantReply appends the assistant turn for the message in flight
// and clears the awaiting flag. content is stored as given, including error
// text produced by the inference client.
func (s *Store) RecordAssistantReply(content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.awaiting {
		return invalid("record reply", ErrNotAwaiting)
	}

	s.transcript.Append(protocol.NewMessage(protocol.RoleAssistant, content))
	s.awaiting = false
	s.publishLocked()
	return nil
}

// Credential returns the stored credential.
func (s *Store) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential
}

// IsSetupComplete reports whether a credential has been committed since the
// last reset.
func (s *Store) IsSetupComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setupComplete
}

// IsAwaitingResponse reports whether a user message is waiting for its reply.
func (s *Store) IsAwaitingResponse() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaiting
}

// Turns returns a copy of the transcript, oldest first.
func (s *Store) Turns() []protocol.Message {
	return s.transcript.Messages()
}

// Snapshot returns a copy of the observable state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel that receives a Snapshot after every state
// change, starting with the current state. A subscriber that falls behind
// skips intermediate snapshots but always receives the latest one.
// Publishing never blocks the store.
//
// The returned cancel func unsubscribes and closes the channel; it is safe
// to call more than once.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	sub := &subscriber{ch: make(chan Snapshot, 1)}

	s.mu.Lock()
	s.subscribers[sub] = struct{}{}
	sub.offer(s.snapshotLocked())
	s.mu.Unlock()

	cancel := func() {
		sub.once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, sub)
			s.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		SessionID:        s.transcript.ID(),
		SetupComplete:    s.setupComplete,
		HasCredential:    s.credential != "",
		AwaitingResponse: s.awaiting,
		Turns:            s.transcript.Messages(),
	}
}

func (s *Store) publishLocked() {
	if len(s.subscribers) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for sub := range s.subscribers {
		sub.offer(snap)
	}
}
