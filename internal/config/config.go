package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port                          string `mapstructure:"PORT"`
	DatabasePath                  string `mapstructure:"DATABASE_PATH"`
	DiscordClientID               string `mapstructure:"DISCORD_CLIENT_ID"`
	DiscordClientSecret           string `mapstructure:"DISCORD_CLIENT_SECRET"`
	DiscordRedirectURL            string `mapstructure:"DISCORD_REDIRECT_URL"`
	DiscordGuildID                string `mapstructure:"DISCORD_GUILD_ID"`
	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	JWTSecret                     string `mapstructure:"JWT_SECRET"`
	FrontendURL                   string `mapstructure:"FRONTEND_URL"`
	OrganizerRole                 string `mapstructure:"ORGANIZER_ROLE"`
	EnableCORS                    bool   `mapstructure:"ENABLE_CORS"`
	ResendAPIKey                  string `mapstructure:"RESEND_API_KEY"`
	EmailFrom                     string `mapstructure:"EMAIL_FROM"`
	SuggestionAPIURL              string `mapstructure:"SUGGESTION_API_URL"`
	SuggestionAPIKey              string `mapstructure:"SUGGESTION_API_KEY"`
	SuggestionModel               string `mapstructure:"SUGGESTION_MODEL"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "trek.db")
	viper.SetDefault("DISCORD_REDIRECT_URL", "http://127.0.0.1:8080/auth/discord/callback")
	viper.SetDefault("FRONTEND_URL", "http://127.0.0.1:4000")
	viper.SetDefault("ORGANIZER_ROLE", "trek::orgs")
	viper.SetDefault("EMAIL_FROM", "Nifgashim <noreply@nifgashim.example>")
	viper.SetDefault("SUGGESTION_API_URL", "https://api.openai.com/v1")
	viper.SetDefault("SUGGESTION_MODEL", "gpt-4o-mini")

	viper.BindEnv("DISCORD_CLIENT_ID")
	viper.BindEnv("DISCORD_CLIENT_SECRET")
	viper.BindEnv("DISCORD_GUILD_ID")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("FRONTEND_URL")
	viper.BindEnv("ORGANIZER_ROLE")
	viper.BindEnv("ENABLE_CORS")
	viper.BindEnv("RESEND_API_KEY")
	viper.BindEnv("EMAIL_FROM")
	viper.BindEnv("SUGGESTION_API_URL")
	viper.BindEnv("SUGGESTION_API_KEY")
	viper.BindEnv("SUGGESTION_MODEL")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
