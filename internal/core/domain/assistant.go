package domain

import (
	"context"
	"errors"
)

var ErrEmptyConversation = errors.New("conversation cannot be empty")

const (
	AssistantRoleUser = "user"
	AssistantRoleBot  = "assistant"
)

// AssistantMessage is one turn of the goal-planning conversation.
type AssistantMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AssistantClient produces the next reply for a conversation. Implementations
// may fail; the service layer converts any failure into a fixed fallback.
type AssistantClient interface {
	Reply(ctx context.Context, history []AssistantMessage) (string, error)
}
