package session_test

import (
	"sync"
	"testing"

	"github.com/nebula-edge/nebula/core/protocol"
	"github.com/nebula-edge/nebula/session"
)

func TestMemoryTranscript_New(t *testing.T) {
	tr := session.NewMemoryTranscript()

	if tr.ID() == "" {
		t.Error("transcript ID should not be empty")
	}
	if tr.Len() != 0 {
		t.Errorf("new transcript should have 0 turns, got %d", tr.Len())
	}
}

func TestMemoryTranscript_ID_Unique(t *testing.T) {
	t1 := session.NewMemoryTranscript()
	t2 := session.NewMemoryTranscript()

	if t1.ID() == t2.ID() {
		t.Errorf("two transcripts should have different IDs, both got %q", t1.ID())
	}
}

func TestMemoryTranscript_AppendOrder(t *testing.T) {
	tr := session.NewMemoryTranscript()

	tr.Append(protocol.NewMessage(protocol.RoleUser, "first"))
	tr.Append(protocol.NewMessage(protocol.RoleAssistant, "second"))
	tr.Append(protocol.NewMessage(protocol.RoleUser, "third"))

	msgs := tr.Messages()
	want := []string{"first", "second", "third"}
	if len(msgs) != len(want) {
		t.Fatalf("got %d turns, want %d", len(msgs), len(want))
	}
	for i, w := range want {
		if msgs[i].Content != w {
			t.Errorf("turn %d: got %q, want %q", i, msgs[i].Content, w)
		}
	}
}

func TestMemoryTranscript_DefensiveCopy(t *testing.T) {
	tr := session.NewMemoryTranscript()
	tr.Append(protocol.NewMessage(protocol.RoleUser, "original"))

	msgs := tr.Messages()
	msgs[0].Content = "modified"

	if got := tr.Messages()[0].Content; got != "original" {
		t.Errorf("transcript was mutated through returned slice: got %q", got)
	}
}

func TestMemoryTranscript_Concurrent_AppendAndRead(t *testing.T) {
	tr := session.NewMemoryTranscript()
	const n = 100

	var wg sync.WaitGroup
	wg.Add(2 * n)

	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			tr.Append(protocol.NewMessage(protocol.RoleUser, "msg"))
		}()
		go func() {
			defer wg.Done()
			_ = tr.Messages()
		}()
	}
	wg.Wait()

	if tr.Len() != n {
		t.Errorf("got %d turns, want %d", tr.Len(), n)
	}
}
