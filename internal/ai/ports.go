package ai

import "context"

// Responder is an external language model; it knows nothing about HR data
// or the assistant protocol.
type Responder interface {
	Reply(ctx context.Context, history []Message, userText string) (string, error)
}

// Message is the provider-neutral dialogue format.
type Message struct {
	Role string // "user" | "assistant" | "system"
	Text string
}
