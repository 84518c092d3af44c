package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"mubot/clients"
	"mubot/core"
	"mubot/models"
)

// DiscordClient implements the clients.GatewayClient interface using the
// bwmarrin/discordgo SDK
type DiscordClient struct {
	session *discordgo.Session
}

// NewDiscordClient creates a new Discord gateway client around an open
// discordgo session
func NewDiscordClient(session *discordgo.Session) clients.GatewayClient {
	return &DiscordClient{session: session}
}

// SendChannelMessage sends a message to a Discord channel, as an embed when
// a rich payload is present
func (c *DiscordClient) SendChannelMessage(
	ctx context.Context,
	channelID, content string,
	payload *models.ReplyPayload,
) error {
	send := &discordgo.MessageSend{Content: content}
	if payload != nil {
		send.Embeds = []*discordgo.MessageEmbed{buildEmbed(payload)}
	}

	_, err := c.session.ChannelMessageSendComplex(channelID, send, discordgo.WithContext(ctx))
	if err != nil {
		return mapSendError(err)
	}
	return nil
}

// SendDirectMessage opens (or reuses) the DM channel with the user and
// sends there
func (c *DiscordClient) SendDirectMessage(
	ctx context.Context,
	userID, content string,
	payload *models.ReplyPayload,
) error {
	dmChannel, err := c.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return mapSendError(err)
	}

	return c.SendChannelMessage(ctx, dmChannel.ID, content, payload)
}

// buildEmbed converts the platform-agnostic rich payload into a Discord embed
func buildEmbed(payload *models.ReplyPayload) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       payload.Title,
		Description: payload.Description,
		URL:         payload.URL,
		Color:       payload.Color,
	}

	if payload.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: payload.ThumbnailURL}
	}
	if payload.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: payload.ImageURL}
	}
	if payload.Author != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{
			Name:    payload.Author,
			IconURL: payload.AuthorIcon,
		}
	}
	if payload.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: payload.Footer}
	}

	for _, section := range payload.Sections {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   section.Label,
			Value:  section.Body,
			Inline: section.Inline,
		})
	}

	return embed
}

// mapSendError classifies a discordgo failure into the delivery taxonomy:
// missing access/permission codes become ErrPermissionDenied, everything
// else is a transport failure
func mapSendError(err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeMissingAccess,
			discordgo.ErrCodeMissingPermissions,
			discordgo.ErrCodeCannotSendMessagesToThisUser:
			return fmt.Errorf("discord send rejected: %s: %w", restErr.Message.Message, core.ErrPermissionDenied)
		}
	}
	return fmt.Errorf("discord send failed: %v: %w", err, core.ErrTransport)
}
