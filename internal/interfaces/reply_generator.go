package interfaces

import "context"

// ReplyGenerator produces a free-form reply from an external language model.
// The contract carries only the two prompt strings, so live visitor data
// cannot be handed to the generative path by construction.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, systemPrompt, userMessage string) (string, error)
}
