// Package kernel drives the send cycle: it validates and records the user
// turn, runs one inference call in the background, and settles the session
// with the assistant turn whatever the outcome.
//
// The kernel initializes from configuration via New. Functional options
// allow test overrides of any subsystem.
//
//	k, err := kernel.New(&cfg)
//	err = k.OnCredentialSubmit(ctx, apiKey)
//	ex, err := k.OnSendPressed(ctx, "hello")
//	reply, err := ex.Wait(ctx)
package kernel

import (
	"context"
	"fmt"
	"sync"

	"github.com/nebula-edge/nebula/agent"
	"github.com/nebula-edge/nebula/observability"
	"github.com/nebula-edge/nebula/session"
)

// Option configures a Kernel after config-driven initialization.
type Option func(*Kernel)

// WithStore overrides the config-created session store.
func WithStore(s *session.Store) Option {
	return func(k *Kernel) { k.store = s }
}

// WithCompleter overrides the config-created inference client.
func WithCompleter(c agent.Completer) Option {
	return func(k *Kernel) { k.client = c }
}

// WithObserver overrides the observer named in the config.
func WithObserver(o observability.Observer) Option {
	return func(k *Kernel) { k.observer = o }
}

// Kernel connects the session store to the inference client. It is the
// contract the presentation layer drives.
type Kernel struct {
	store    *session.Store
	client   agent.Completer
	observer observability.Observer
	greeting string
	inflight sync.WaitGroup
}

// New creates a Kernel from configuration.
func New(cfg *Config, opts ...Option) (*Kernel, error) {
	observer, err := observability.GetObserver(cfg.Observer)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve observer: %w", err)
	}

	k := &Kernel{
		store:    session.NewStore(),
		observer: observer,
		greeting: cfg.Greeting,
	}

	client, err := agent.New(&cfg.Agent, agent.WithObserver(sessionObserver{k: k}))
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	k.client = client

	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

// Session exposes the store for reads and subscriptions.
func (k *Kernel) Session() *session.Store {
	return k.store
}

// Greeting returns the text shown above an empty transcript.
func (k *Kernel) Greeting() string {
	return k.greeting
}

// OnCredentialSubmit commits the credential entered on the setup screen.
func (k *Kernel) OnCredentialSubmit(ctx context.Context, value string) error {
	if err := k.store.CommitCredential(value); err != nil {
		k.emit(ctx, observability.Event{
			Type:   EventSetupReject,
			Level:  observability.LevelWarning,
			Source: "kernel.OnCredentialSubmit",
			Data:   map[string]any{"error": err.Error()},
		})
		return err
	}

	k.emit(ctx, observability.Event{
		Type:   EventSetupCommit,
		Level:  observability.LevelInfo,
		Source: "kernel.OnCredentialSubmit",
	})
	return nil
}

// ResetSetup returns to the setup screen without discarding anything.
func (k *Kernel) ResetSetup(ctx context.Context) {
	k.store.ResetSetup()
	k.emit(ctx, observability.Event{
		Type:   EventSetupReset,
		Level:  observability.LevelInfo,
		Source: "kernel.ResetSetup",
	})
}

// OnSendPressed submits text and starts the inference call. Validation
// failures are returned synchronously and leave the session unchanged; no
// request is made. On success the returned Exchange settles once the
// assistant turn is recorded.
//
// ctx is used for values only: cancelling it does not abort the request.
func (k *Kernel) OnSendPressed(ctx context.Context, text string) (*Exchange, error) {
	d, err := k.store.SubmitUserMessage(text)
	if err != nil {
		k.emit(ctx, observability.Event{
			Type:   EventSendRejected,
			Level:  observability.LevelWarning,
			Source: "kernel.OnSendPressed",
			Data:   map[string]any{"error": err.Error()},
		})
		return nil, err
	}

	k.emit(ctx, observability.Event{
		Type:   EventSendDispatch,
		Level:  observability.LevelInfo,
		Source: "kernel.OnSendPressed",
		Data: map[string]any{
			"turn":          d.Turn,
			"prompt_length": len(d.Prompt),
		},
	})

	ex := newExchange(text)
	k.inflight.Add(1)
	go k.settle(context.WithoutCancel(ctx), ex, d)
	return ex, nil
}

// Send runs a full cycle and returns the assistant text. Cancelling ctx
// abandons the wait; the session still settles in the background.
func (k *Kernel) Send(ctx context.Context, text string) (string, error) {
	ex, err := k.OnSendPressed(ctx, text)
	if err != nil {
		return "", err
	}
	return ex.Wait(ctx)
}

// Wait blocks until every dispatched exchange has settled.
func (k *Kernel) Wait() {
	k.inflight.Wait()
}

func (k *Kernel) settle(ctx context.Context, ex *Exchange, d session.Dispatch) {
	defer k.inflight.Done()

	reply := k.complete(ctx, d)
	event := observability.Event{
		Type:   EventSendSettle,
		Level:  observability.LevelInfo,
		Source: "kernel.settle",
		Data: map[string]any{
			"turn":         d.Turn + 1,
			"reply_length": len(reply),
		},
	}
	if err := k.store.RecordAssistantReply(reply); err != nil {
		event.Level = observability.LevelError
		event.Data["error"] = err.Error()
	}
	k.emit(ctx, event)
	ex.settle(reply)
}

// complete shields settlement from a misbehaving Completer.
func (k *Kernel) complete(ctx context.Context, d session.Dispatch) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			k.emit(ctx, observability.Event{
				Type:   EventSendPanic,
				Level:  observability.LevelError,
				Source: "kernel.complete",
				Data:   map[string]any{"panic": fmt.Sprint(r)},
			})
			reply = agent.ErrorSentinel
		}
	}()
	return k.client.Complete(ctx, d.Prompt, d.Credential)
}

func (k *Kernel) emit(ctx context.Context, event observability.Event) {
	observability.Emit(ctx, sessionObserver{k: k}, event)
}
