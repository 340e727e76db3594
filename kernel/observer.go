package kernel

import (
	"context"

	"github.com/nebula-edge/nebula/observability"
)

// Kernel event types emitted across the setup and send cycle.
const (
	EventSetupCommit  observability.EventType = "kernel.setup.commit"
	EventSetupReset   observability.EventType = "kernel.setup.reset"
	EventSetupReject  observability.EventType = "kernel.setup.rejected"
	EventSendDispatch observability.EventType = "kernel.send.dispatch"
	EventSendSettle   observability.EventType = "kernel.send.settle"
	EventSendRejected observability.EventType = "kernel.send.rejected"
	EventSendPanic    observability.EventType = "kernel.send.panic"
)

// sessionObserver stamps the session ID on every event and forwards it to
// the kernel's current observer, so options applied after the inference
// client is built still take effect.
type sessionObserver struct {
	k *Kernel
}

func (o sessionObserver) OnEvent(ctx context.Context, event observability.Event) {
	if o.k.observer == nil {
		return
	}
	if event.SessionID == "" && o.k.store != nil {
		event.SessionID = o.k.store.ID()
	}
	o.k.observer.OnEvent(ctx, event)
}
