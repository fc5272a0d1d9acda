package services

import (
	"context"
	"log"
	"strings"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

// AssistantFallbackReply is returned whenever the upstream assistant call
// fails for any reason. Callers never see a raw transport error.
const AssistantFallbackReply = "I couldn't reach the planning assistant right now. " +
	"Your goals and progress are safe; please try again in a moment."

// AssistantService fronts the goal-planning assistant with single-attempt,
// degrade-to-fallback semantics.
type AssistantService struct {
	client domain.AssistantClient
}

func NewAssistantService(client domain.AssistantClient) *AssistantService {
	return &AssistantService{client: client}
}

// Chat returns the assistant's next reply for the conversation history. Any
// client failure degrades to the fixed fallback string; there are no retries.
func (s *AssistantService) Chat(ctx context.Context, history []domain.AssistantMessage) (string, error) {
	trimmed := make([]domain.AssistantMessage, 0, len(history))
	for _, m := range history {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		trimmed = append(trimmed, m)
	}
	if len(trimmed) == 0 {
		return "", domain.ErrEmptyConversation
	}

	reply, err := s.client.Reply(ctx, trimmed)
	if err != nil {
		log.Printf("Assistant call failed, serving fallback: %v", err)
		return AssistantFallbackReply, nil
	}
	if strings.TrimSpace(reply) == "" {
		return AssistantFallbackReply, nil
	}
	return reply, nil
}
