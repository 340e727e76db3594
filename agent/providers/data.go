package providers

import "github.com/nebula-edge/nebula/core/protocol"

// ChatData contains the data needed to marshal a chat request.
type ChatData struct {
	Model    string
	Messages []protocol.Message
}
