package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type DiscordConfig struct {
	BotToken string
}

// IsConfigured returns true if all required Discord configuration is present
func (c DiscordConfig) IsConfigured() bool {
	return c.BotToken != ""
}

type SlackConfig struct {
	BotToken      string
	SigningSecret string
}

// IsConfigured returns true if all required Slack configuration is present
func (c SlackConfig) IsConfigured() bool {
	return c.BotToken != "" && c.SigningSecret != ""
}

type ProvidersConfig struct {
	NASAAPIKey      string
	IMDBAPIKey      string
	ScreenshotToken string
}

// IsConfigured returns true if all provider API keys are present.
// Individual commands degrade gracefully when their provider key is missing.
func (c ProvidersConfig) IsConfigured() bool {
	return c.NASAAPIKey != "" &&
		c.IMDBAPIKey != "" &&
		c.ScreenshotToken != ""
}

type AppConfig struct {
	// Core configuration
	Port            string // Optional with default "8080"
	CommandPrefix   string // Optional with default "-p "
	Environment     string
	UseStrictConfig bool // If true, error when any integration is not fully configured

	// Integration configurations (grouped)
	DiscordConfig   DiscordConfig
	SlackConfig     SlackConfig
	ProvidersConfig ProvidersConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	config := &AppConfig{
		Port:            getEnvWithDefault("PORT", "8080"),
		CommandPrefix:   getEnvWithDefault("COMMAND_PREFIX", "-p "),
		Environment:     getEnvWithDefault("ENVIRONMENT", "dev"),
		UseStrictConfig: getEnvWithDefault("USE_STRICT_CONFIG", "true") == "true",

		DiscordConfig: DiscordConfig{
			BotToken: os.Getenv("DISCORD_BOT_TOKEN"),
		},

		SlackConfig: SlackConfig{
			BotToken:      os.Getenv("SLACK_BOT_TOKEN"),
			SigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		},

		ProvidersConfig: ProvidersConfig{
			NASAAPIKey:      os.Getenv("NASA_API_KEY"),
			IMDBAPIKey:      os.Getenv("IMDB_KEY"),
			ScreenshotToken: os.Getenv("SCREENSHOT_TOKEN"),
		},
	}

	if !config.DiscordConfig.IsConfigured() && !config.SlackConfig.IsConfigured() {
		return nil, fmt.Errorf("no gateway configured - set DISCORD_BOT_TOKEN or SLACK_BOT_TOKEN")
	}

	if config.DiscordConfig.IsConfigured() {
		log.Printf("✅ Discord gateway configured")
	} else {
		log.Printf("⚠️ Discord gateway not configured - Discord commands will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("discord gateway is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.SlackConfig.IsConfigured() {
		log.Printf("✅ Slack gateway configured")
	} else {
		log.Printf("⚠️ Slack gateway not configured - Slack events endpoint will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("slack gateway is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.ProvidersConfig.IsConfigured() {
		log.Printf("✅ Provider API keys configured")
	} else {
		log.Printf("⚠️ Some provider API keys missing - affected lookups will report a transport failure")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("provider API keys are not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	return config, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
