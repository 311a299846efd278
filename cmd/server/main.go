package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/nifgashim/trek-api/internal/alerts"
	"github.com/nifgashim/trek-api/internal/auth"
	"github.com/nifgashim/trek-api/internal/config"
	"github.com/nifgashim/trek-api/internal/database"
	"github.com/nifgashim/trek-api/internal/handlers"
	"github.com/nifgashim/trek-api/internal/mailer"
	"github.com/nifgashim/trek-api/internal/notifier"
	"github.com/nifgashim/trek-api/internal/suggest"
)

func main() {
	cfg := config.LoadConfig()

	db := database.Connect(cfg)

	// Optional collaborators: the server runs without any of them.
	var session *discordgo.Session
	if cfg.DiscordBotToken != "" {
		var err error
		session, err = discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			log.Printf("Discord session not initialized: %v", err)
			session = nil
		}
	}

	var discordNotifier notifier.Notifier
	if session != nil && cfg.DiscordNotificationsChannelID != "" {
		discordNotifier = notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID)
	}

	var m mailer.Mailer
	if cfg.ResendAPIKey != "" {
		m = mailer.NewResendMailer(cfg.ResendAPIKey, cfg.EmailFrom)
	}

	var oracle suggest.Oracle
	if cfg.SuggestionAPIKey != "" {
		oracle = suggest.NewChatOracle(cfg.SuggestionAPIURL, cfg.SuggestionAPIKey, cfg.SuggestionModel)
	}

	authHandler := auth.NewAuthHandler(cfg, db, session)
	alertStore := alerts.NewGormStore(db)

	h := handlers.Handlers{
		Auth:         authHandler,
		Registration: handlers.NewRegistrationHandler(db, discordNotifier, m, authHandler),
		Memorial:     handlers.NewMemorialHandler(db, discordNotifier, m, oracle, authHandler),
		Trip:         handlers.NewTripHandler(db, authHandler),
		Dashboard:    handlers.NewDashboardHandler(db, alertStore, authHandler),
		APIKey:       handlers.NewAPIKeyHandler(db, authHandler),
	}

	r := chi.NewRouter()
	handlers.RegisterRoutes(r, h)

	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
