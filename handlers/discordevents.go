package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"mubot/models"
	"mubot/services"
)

type DiscordEventsHandler struct {
	discordSDKClient *discordgo.Session
	routerService    services.RouterService
}

// NewDiscordEventsHandler wires message events from the given session into
// the router. The session is shared with the send-side client, so the
// caller owns its lifecycle up to StartBot/StopBot.
func NewDiscordEventsHandler(session *discordgo.Session, routerService services.RouterService) *DiscordEventsHandler {
	handler := &DiscordEventsHandler{
		discordSDKClient: session,
		routerService:    routerService,
	}

	// Register event handlers
	session.AddHandler(handler.handleMessageCreatedEvent)

	// Set intents to receive guild messages with their content
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	return handler
}

// StartBot opens the Discord connection and starts listening for events
func (h *DiscordEventsHandler) StartBot() error {
	err := h.discordSDKClient.Open()
	if err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	log.Printf("🤖 Discord bot is now running and listening for events")
	return nil
}

// StopBot gracefully closes the Discord connection
func (h *DiscordEventsHandler) StopBot() {
	h.discordSDKClient.Close()
}

// handleMessageCreatedEvent handles incoming Discord messages
func (h *DiscordEventsHandler) handleMessageCreatedEvent(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	log.Printf("📨 Discord message received from %s in guild %s, channel %s",
		m.Author.Username, m.GuildID, m.ChannelID)

	event := h.mapToMessageEvent(s, m)
	h.routerService.HandleMessage(context.Background(), event)
}

// mapToMessageEvent maps a Discord SDK message event to our domain model
func (h *DiscordEventsHandler) mapToMessageEvent(s *discordgo.Session, m *discordgo.MessageCreate) models.MessageEvent {
	channelName := m.ChannelID
	if channel, err := s.Channel(m.ChannelID); err == nil {
		channelName = channel.Name
	} else {
		log.Printf("⚠️ Failed to get channel info for %s: %v", m.ChannelID, err)
	}

	guildName := m.GuildID
	if guild, err := s.Guild(m.GuildID); err == nil {
		guildName = guild.Name
	} else {
		log.Printf("⚠️ Failed to get guild info for %s: %v", m.GuildID, err)
	}

	mentions := make([]models.MessageUser, len(m.Mentions))
	for i, mentionedUser := range m.Mentions {
		mentions[i] = models.MessageUser{
			ID:          mentionedUser.ID,
			DisplayName: mentionedUser.Username,
			AvatarURL:   mentionedUser.AvatarURL(""),
		}
	}

	return models.MessageEvent{
		GuildID:     m.GuildID,
		GuildName:   guildName,
		ChannelID:   m.ChannelID,
		ChannelName: channelName,
		MessageID:   m.ID,
		User: models.MessageUser{
			ID:          m.Author.ID,
			DisplayName: m.Author.Username,
			AvatarURL:   m.Author.AvatarURL(""),
		},
		Content:  m.Content,
		Mentions: mentions,
	}
}
