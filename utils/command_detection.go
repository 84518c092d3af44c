package utils

import (
	"regexp"
	"strings"
)

// CommandDetectionResult represents the result of command detection
type CommandDetectionResult struct {
	IsCommand   bool
	CommandText string
}

// DetectCommand checks if a message text is a bot command: it strips
// platform mentions, then matches the configured command prefix. The
// returned CommandText has the prefix removed.
func DetectCommand(messageText, prefix string) CommandDetectionResult {
	strippedText := strings.TrimSpace(StripMentions(messageText))

	if strings.HasPrefix(strippedText, prefix) {
		return CommandDetectionResult{
			IsCommand:   true,
			CommandText: strings.TrimSpace(strings.TrimPrefix(strippedText, prefix)),
		}
	}

	return CommandDetectionResult{
		IsCommand:   false,
		CommandText: "",
	}
}

// StripMentions removes Slack and Discord mentions from message text
func StripMentions(text string) string {
	// Slack mentions: <@USER_ID> or <@USER_ID|username>
	slackMentionRegex := regexp.MustCompile(`<@[^>|]+(?:\|[^>]+)?>`)
	text = slackMentionRegex.ReplaceAllString(text, "")

	// Discord mentions: <@USER_ID> or <@!USER_ID>
	discordMentionRegex := regexp.MustCompile(`<@!?[0-9]+>`)
	text = discordMentionRegex.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}
