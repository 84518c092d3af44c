package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	discordclient "mubot/clients/discord"
	"mubot/clients/httpapi"
	slackclient "mubot/clients/slack"
	"mubot/config"
	"mubot/handlers"
	"mubot/services"
	"mubot/services/aggregator"
	"mubot/services/delivery"
	"mubot/services/router"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Shared lookup client for every aggregator-backed command
	httpClient := httpapi.NewClient(nil)
	aggregatorService := aggregator.NewAggregatorService(
		httpClient,
		cfg.ProvidersConfig.NASAAPIKey,
		cfg.ProvidersConfig.IMDBAPIKey,
		cfg.ProvidersConfig.ScreenshotToken,
	)
	commandsHandler := handlers.NewCommandsHandler(aggregatorService)

	// Each gateway gets its own delivery pipeline and router; the command
	// surface registered on them is the same.
	var gatewayRouters []services.RouterService

	var discordEventsHandler *handlers.DiscordEventsHandler
	if cfg.DiscordConfig.IsConfigured() {
		session, err := discordgo.New("Bot " + cfg.DiscordConfig.BotToken)
		if err != nil {
			return err
		}

		discordDelivery := delivery.NewDeliveryService(discordclient.NewDiscordClient(session))
		discordRouter := router.NewRouterService(cfg.CommandPrefix, discordDelivery)
		if err := commandsHandler.RegisterAll(discordRouter); err != nil {
			return err
		}

		discordEventsHandler = handlers.NewDiscordEventsHandler(session, discordRouter)
		gatewayRouters = append(gatewayRouters, discordRouter)
	}

	// Create a new router
	httpRouter := mux.NewRouter()

	if cfg.SlackConfig.IsConfigured() {
		slackDelivery := delivery.NewDeliveryService(slackclient.NewSlackClient(cfg.SlackConfig.BotToken))
		slackRouter := router.NewRouterService(cfg.CommandPrefix, slackDelivery)
		if err := commandsHandler.RegisterAll(slackRouter); err != nil {
			return err
		}

		slackHandler := handlers.NewSlackEventsHandler(cfg.SlackConfig.SigningSecret, slackRouter)
		slackHandler.SetupEndpoints(httpRouter)
		gatewayRouters = append(gatewayRouters, slackRouter)
	}

	statusHandler := handlers.NewStatusHandler(cfg.CommandPrefix, gatewayRouters...)
	statusHandler.SetupEndpoints(httpRouter)

	if discordEventsHandler != nil {
		if err := discordEventsHandler.StartBot(); err != nil {
			return err
		}
		defer discordEventsHandler.StopBot()
	}

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	// Setup and handle graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(httpRouter),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
