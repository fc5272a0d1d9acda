package assistant

import (
	"context"
	"errors"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

var errAssistantDisabled = errors.New("assistant: no API key configured")

// DisabledClient stands in when no assistant credentials are configured.
// Every call fails, which the service layer turns into its fallback reply.
type DisabledClient struct{}

var _ domain.AssistantClient = (*DisabledClient)(nil)

func NewDisabledClient() *DisabledClient {
	return &DisabledClient{}
}

func (c *DisabledClient) Reply(ctx context.Context, history []domain.AssistantMessage) (string, error) {
	return "", errAssistantDisabled
}
