package kernel

import "context"

// Exchange tracks one send cycle from dispatch to settlement. Settlement
// always happens: every exchange ends with exactly one assistant turn.
type Exchange struct {
	prompt string
	done   chan struct{}
	reply  string
}

func newExchange(prompt string) *Exchange {
	return &Exchange{
		prompt: prompt,
		done:   make(chan struct{}),
	}
}

// Prompt returns the user message that started the exchange.
func (e *Exchange) Prompt() string {
	return e.prompt
}

// Done is closed once the assistant turn has been recorded.
func (e *Exchange) Done() <-chan struct{} {
	return e.done
}

// Reply returns the recorded assistant text. It is empty until Done is
// closed.
func (e *Exchange) Reply() string {
	select {
	case <-e.done:
		return e.reply
	default:
		return ""
	}
}

// Wait blocks until the exchange settles or ctx ends. Cancelling ctx stops
// the wait only; the request keeps running and still settles the session.
func (e *Exchange) Wait(ctx context.Context) (string, error) {
	select {
	case <-e.done:
		return e.reply, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (e *Exchange) settle(reply string) {
	e.reply = reply
	close(e.done)
}
