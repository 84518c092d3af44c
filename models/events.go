package models

// MessageUser identifies the author of an inbound message as far as the
// core needs to know them.
type MessageUser struct {
	ID          string
	DisplayName string
	AvatarURL   string
}

// MessageEvent is the gateway-agnostic inbound event the router consumes.
// Gateway handlers map their platform's native event into this shape.
type MessageEvent struct {
	GuildID     string
	GuildName   string
	ChannelID   string
	ChannelName string
	MessageID   string
	User        MessageUser
	Content     string
	// Mentions contains the users mentioned in the message, in message order.
	Mentions []MessageUser
}
