package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/slack-go/slack"

	"mubot/models"
	"mubot/services"
)

type SlackEventsHandler struct {
	signingSecret string
	routerService services.RouterService
}

func NewSlackEventsHandler(signingSecret string, routerService services.RouterService) *SlackEventsHandler {
	return &SlackEventsHandler{
		signingSecret: signingSecret,
		routerService: routerService,
	}
}

// verifySlackSignature verifies the authenticity of a Slack webhook request.
// The verifier checks the v0 HMAC signature and rejects stale timestamps.
func (h *SlackEventsHandler) verifySlackSignature(r *http.Request, body []byte) error {
	verifier, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		return fmt.Errorf("invalid secret verifier: %w", err)
	}

	if _, err := verifier.Write(body); err != nil {
		return fmt.Errorf("failed to hash request body: %w", err)
	}

	if err := verifier.Ensure(); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}

	return nil
}

func (h *SlackEventsHandler) HandleSlackEvent(w http.ResponseWriter, r *http.Request) {
	log.Printf("📨 Slack event received from %s", r.RemoteAddr)

	// Read raw body for signature verification
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("❌ Failed to read request body: %v", err)
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	// Verify Slack signature
	if err := h.verifySlackSignature(r, bodyBytes); err != nil {
		log.Printf("❌ Slack signature verification failed: %v", err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// Parse JSON from body bytes
	var body map[string]any
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		log.Printf("❌ Failed to parse JSON body: %v", err)
		http.Error(w, "failed to parse body", http.StatusBadRequest)
		return
	}

	if body["type"] == "url_verification" {
		log.Printf("🔐 Slack URL verification challenge received")
		challenge, ok := body["challenge"].(string)
		if !ok {
			log.Printf("❌ Challenge not found in verification request")
			http.Error(w, "challenge not found", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		if _, err := w.Write([]byte(challenge)); err != nil {
			log.Printf("❌ Failed to write challenge response: %v", err)
		}
		return
	}

	if body["type"] != "event_callback" {
		log.Printf("📋 Non-event callback received: %s", body["type"])
		w.WriteHeader(http.StatusOK)
		return
	}

	teamID, ok := body["team_id"].(string)
	if !ok || teamID == "" {
		log.Printf("❌ Team ID not found in Slack event")
		http.Error(w, "team_id not found", http.StatusBadRequest)
		return
	}

	event, ok := body["event"].(map[string]any)
	if !ok {
		log.Printf("❌ Event payload not found in Slack callback")
		http.Error(w, "event not found", http.StatusBadRequest)
		return
	}

	eventType, _ := event["type"].(string)
	switch eventType {
	case "message", "app_mention":
		h.handleMessageEvent(event, teamID)
	default:
		log.Printf("📋 Ignoring unsupported event type: %s", eventType)
	}

	w.WriteHeader(http.StatusOK)
}

// handleMessageEvent maps a Slack message event to our domain model and
// dispatches it. Dispatch runs in its own goroutine so Slack gets its 200
// before any external lookups run.
func (h *SlackEventsHandler) handleMessageEvent(event map[string]any, teamID string) {
	if botID, ok := event["bot_id"].(string); ok && botID != "" {
		return
	}
	if subtype, ok := event["subtype"].(string); ok && subtype != "" {
		return
	}

	channel, _ := event["channel"].(string)
	user, _ := event["user"].(string)
	text, _ := event["text"].(string)
	timestamp, _ := event["ts"].(string)

	log.Printf("📨 Slack message from %s in channel %s", user, channel)

	messageEvent := models.MessageEvent{
		GuildID:     teamID,
		GuildName:   teamID,
		ChannelID:   channel,
		ChannelName: channel,
		MessageID:   timestamp,
		User:        models.MessageUser{ID: user, DisplayName: user},
		Content:     text,
	}

	go h.routerService.HandleMessage(context.Background(), messageEvent)
}

func (h *SlackEventsHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering Slack webhook endpoints")

	router.HandleFunc("/slack/events", h.HandleSlackEvent).Methods("POST")
	log.Printf("✅ POST /slack/events endpoint registered")
}
