package clients

import (
	"context"

	"mubot/models"
)

// GatewayClient defines the outbound send surface of a chat platform.
// Either content or payload may be empty/nil; implementations send whatever
// is present. A platform-level permission rejection is reported as
// core.ErrPermissionDenied so the delivery pipeline can degrade; any other
// failure is reported as core.ErrTransport.
type GatewayClient interface {
	// SendChannelMessage sends to the originating channel.
	SendChannelMessage(ctx context.Context, channelID, content string, payload *models.ReplyPayload) error

	// SendDirectMessage sends a private message to the user.
	SendDirectMessage(ctx context.Context, userID, content string, payload *models.ReplyPayload) error
}

// HTTPDoer defines the HTTP lookup collaborator the aggregator consumes.
type HTTPDoer interface {
	// GetJSON fetches url and decodes the response body as JSON. The result
	// is a map[string]any or []any depending on the endpoint's top level.
	GetJSON(ctx context.Context, url string) (any, error)
}
