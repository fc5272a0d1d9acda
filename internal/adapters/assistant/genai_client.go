package assistant

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

const defaultModel = "gemini-2.0-flash"

// systemPrompt scripts the assistant: it plans goals and nothing else.
const systemPrompt = `You are the in-app planning assistant of a personal wellness tracker.
The user tracks goals, habits, and routines across eight wellness dimensions:
physical, mental, environmental, financial, intellectual, occupational, social, spiritual.
Help them break intentions into concrete, scheduled goals with realistic targets.
Keep replies short and practical. Never discuss topics outside wellness planning.`

// GenAIClient answers goal-planning conversations with a Gemini model.
type GenAIClient struct {
	client *genai.Client
	model  string
}

var _ domain.AssistantClient = (*GenAIClient)(nil)

func NewGenAIClient(ctx context.Context, apiKey, model string) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("assistant: API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("assistant: failed to create client: %w", err)
	}

	return &GenAIClient{
		client: client,
		model:  model,
	}, nil
}

// Reply sends the system prompt plus the full conversation history and
// returns the model's free-text answer. Single attempt; errors propagate to
// the service layer, which degrades to its fallback string.
func (c *GenAIClient) Reply(ctx context.Context, history []domain.AssistantMessage) (string, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		var role genai.Role = genai.RoleUser
		if m.Role == domain.AssistantRoleBot {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("assistant: generate content: %w", err)
	}

	reply := strings.TrimSpace(result.Text())
	if reply == "" {
		return "", fmt.Errorf("assistant: model returned an empty reply")
	}
	return reply, nil
}
