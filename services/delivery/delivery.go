package delivery

import (
	"context"
	"fmt"
	"log"

	"mubot/clients"
	"mubot/core"
	"mubot/models"
)

// stage is one state of the degradation machine. The pipeline is terminal
// on the first successful send.
type stage int

const (
	richAttempt stage = iota
	plainAttempt
	privateFallback
)

const plainApology = "Hey, seems like I can't send embeds. Please check my permissions :)"

// DeliveryService sends replies through a gateway, degrading rich replies
// to plain text to a direct message when the bot lacks channel permissions.
type DeliveryService struct {
	gateway clients.GatewayClient
}

func NewDeliveryService(gateway clients.GatewayClient) *DeliveryService {
	return &DeliveryService{gateway: gateway}
}

// Deliver runs the RichAttempt -> PlainAttempt -> PrivateFallback machine
// for one reply. Permission rejections advance the machine; any other
// transport failure stops it and is reported to the caller. A failure at
// the private-fallback stage is swallowed: by then there is nowhere left
// to degrade to.
func (s *DeliveryService) Deliver(ctx context.Context, ev models.MessageEvent, reply *models.Reply) error {
	payload := reply.Payload
	if payload != nil && !payload.IsRenderable() {
		payload = nil
	}

	if payload == nil && reply.Text == "" {
		return fmt.Errorf("nothing to deliver")
	}

	current := richAttempt
	for {
		switch current {
		case richAttempt:
			err := s.gateway.SendChannelMessage(ctx, ev.ChannelID, reply.Text, payload)
			if err == nil {
				return nil
			}
			if !core.IsPermissionDeniedError(err) {
				return fmt.Errorf("failed to deliver reply: %w", err)
			}
			log.Printf("⚠️ Channel send rejected in %s, degrading to plain text", ev.ChannelID)
			current = plainAttempt

		case plainAttempt:
			err := s.gateway.SendChannelMessage(ctx, ev.ChannelID, plainApology, nil)
			if err == nil {
				return nil
			}
			if !core.IsPermissionDeniedError(err) {
				return fmt.Errorf("failed to deliver plain apology: %w", err)
			}
			log.Printf("⚠️ Plain send rejected in %s, falling back to direct message", ev.ChannelID)
			current = privateFallback

		case privateFallback:
			content := fmt.Sprintf(
				"Hey, seems like I can't send any message in %s on %s\n"+
					"May you inform the server team about this issue? :slight_smile: ",
				ev.ChannelName, ev.GuildName,
			)
			if err := s.gateway.SendDirectMessage(ctx, ev.User.ID, content, payload); err != nil {
				// terminal stage: nothing further to try
				log.Printf("❌ Private fallback to user %s failed: %v", ev.User.ID, err)
			}
			return nil
		}
	}
}
