package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every environment-provided setting the service needs. It is
// built once in main and passed into the components that use it, so no
// credential is read from the environment at call time.
type Config struct {
	Port     string
	LogLevel string
	LogFile  string

	MongoURI string

	// Conversation platform (list/detail API).
	ChatPlatformURL string
	ChatAgentID     string
	ChatAgentToken  string

	// Summarization agent.
	SummaryAgentURL   string
	SummaryAgentID    string
	SummaryAgentToken string

	// Shared account identity sent to both remote agents.
	AccountID string

	// Catalog query agent (natural language to SQL).
	QueryAIHost string

	// Infobip WhatsApp delivery.
	InfobipURL          string
	InfobipClientID     string
	InfobipClientSecret string
	WhatsAppPhoneNumber string
}

func LoadEnv() error {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println(fmt.Sprintf("Could not load .env file: %v", err))
		return err
	}
	return nil
}

// Load reads the full configuration from the environment. Only the store
// connection string is mandatory; the remote-agent credentials are validated
// by the components that need them.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     getEnvDefault("PORT", "8080"),
		LogLevel: getEnvDefault("LOG_LEVEL", "info"),
		LogFile:  getEnvDefault("LOG_FILE", "lead-connector.log"),

		MongoURI: os.Getenv("MONGODB_URI"),

		ChatPlatformURL: os.Getenv("CHAT_PLATFORM_URL"),
		ChatAgentID:     cleanCredential(os.Getenv("CHAT_AGENT_ID")),
		ChatAgentToken:  cleanCredential(os.Getenv("CHAT_AGENT_TOKEN")),

		SummaryAgentURL:   os.Getenv("SUMMARY_AGENT_URL"),
		SummaryAgentID:    cleanCredential(os.Getenv("SUMMARY_AGENT_ID")),
		SummaryAgentToken: cleanCredential(os.Getenv("SUMMARY_AGENT_TOKEN")),

		AccountID: cleanCredential(os.Getenv("ACCOUNT_ID")),

		QueryAIHost: os.Getenv("QUERY_AI_API_HOST"),

		InfobipURL:          os.Getenv("INFOBIP_URL"),
		InfobipClientID:     cleanCredential(os.Getenv("INFOBIP_CLIENT_ID")),
		InfobipClientSecret: cleanCredential(os.Getenv("INFOBIP_CLIENT_SECRET")),
		WhatsAppPhoneNumber: os.Getenv("WHATSAPP_PHONE_NUMBER"),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("environment variable MONGODB_URI is required but not set")
	}

	return cfg, nil
}

// cleanCredential strips the stray quoting and whitespace that tend to leak
// into tokens pasted into .env files.
func cleanCredential(value string) string {
	return strings.Trim(strings.TrimSpace(value), `"'`)
}

func getEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
