package agent

import "github.com/nebula-edge/nebula/observability"

// Inference client event types.
const (
	EventRequestStart    observability.EventType = "agent.request.start"
	EventRequestComplete observability.EventType = "agent.request.complete"
	EventRequestError    observability.EventType = "agent.request.error"
)
