package session

import (
	"sync"

	"github.com/nebula-edge/nebula/core/protocol"
)

// Snapshot is a point-in-time copy of the observable session state.
// The credential itself is never included; HasCredential reports whether
// one is stored. Turns is shared between subscribers and must not be
// modified.
type Snapshot struct {
	SessionID        string
	SetupComplete    bool
	HasCredential    bool
	AwaitingResponse bool
	Turns            []protocol.Message
}

// LastTurn returns the most recent turn, if any.
func (s Snapshot) LastTurn() (protocol.Message, bool) {
	if len(s.Turns) == 0 {
		return protocol.Message{}, false
	}
	return s.Turns[len(s.Turns)-1], true
}

type subscriber struct {
	ch   chan Snapshot
	once sync.Once
}

// offer delivers snap, replacing any snapshot the subscriber has not read
// yet. Called with the store lock held, so it is the only sender.
func (s *subscriber) offer(snap Snapshot) {
	for {
		select {
		case s.ch <- snap:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}
