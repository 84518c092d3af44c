package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"mubot/clients"
	"mubot/core"
	"mubot/models"
)

// permission-style Slack error codes that the delivery pipeline should
// degrade on rather than report as transport failures
var permissionErrorCodes = map[string]bool{
	"not_in_channel":    true,
	"channel_not_found": true,
	"access_denied":     true,
	"restricted_action": true,
	"missing_scope":     true,
}

// SlackClient implements the clients.GatewayClient interface using the
// slack-go/slack SDK
type SlackClient struct {
	client *slack.Client
}

// NewSlackClient creates a new Slack gateway client with the provided bot token
func NewSlackClient(botToken string) clients.GatewayClient {
	return &SlackClient{client: slack.New(botToken)}
}

// SendChannelMessage sends a message to a Slack channel, as an attachment
// when a rich payload is present
func (c *SlackClient) SendChannelMessage(
	ctx context.Context,
	channelID, content string,
	payload *models.ReplyPayload,
) error {
	options := []slack.MsgOption{}
	if content != "" {
		options = append(options, slack.MsgOptionText(content, false))
	}
	if payload != nil {
		options = append(options, slack.MsgOptionAttachments(buildAttachment(payload)))
	}

	_, _, err := c.client.PostMessageContext(ctx, channelID, options...)
	if err != nil {
		return mapSendError(err)
	}
	return nil
}

// SendDirectMessage opens the IM conversation with the user and sends there
func (c *SlackClient) SendDirectMessage(
	ctx context.Context,
	userID, content string,
	payload *models.ReplyPayload,
) error {
	channel, _, _, err := c.client.OpenConversationContext(ctx, &slack.OpenConversationParameters{
		Users: []string{userID},
	})
	if err != nil {
		return mapSendError(err)
	}

	return c.SendChannelMessage(ctx, channel.ID, content, payload)
}

// buildAttachment converts the platform-agnostic rich payload into a Slack
// attachment
func buildAttachment(payload *models.ReplyPayload) slack.Attachment {
	attachment := slack.Attachment{
		Title:      payload.Title,
		TitleLink:  payload.URL,
		Text:       payload.Description,
		ThumbURL:   payload.ThumbnailURL,
		ImageURL:   payload.ImageURL,
		AuthorName: payload.Author,
		AuthorIcon: payload.AuthorIcon,
		Footer:     payload.Footer,
	}
	if payload.Color != 0 {
		attachment.Color = fmt.Sprintf("#%06x", payload.Color)
	}

	for _, section := range payload.Sections {
		attachment.Fields = append(attachment.Fields, slack.AttachmentField{
			Title: section.Label,
			Value: section.Body,
			Short: section.Inline,
		})
	}

	return attachment
}

// mapSendError classifies a slack-go failure into the delivery taxonomy.
// Slack reports API rejections as bare error-code strings.
func mapSendError(err error) error {
	if permissionErrorCodes[err.Error()] {
		return fmt.Errorf("slack send rejected: %s: %w", err.Error(), core.ErrPermissionDenied)
	}
	return fmt.Errorf("slack send failed: %v: %w", err, core.ErrTransport)
}
