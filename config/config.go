package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	WebRTC   WebRTCConfig
	Email    EmailConfig
	AI       AIConfig
	Features FeatureConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
	SiteURL            string // public site base URL used in emails and OG links
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL      string // if set, used as-is
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds JWT signing and validation settings.
type JWTConfig struct {
	Secret      string
	ExpireHours int
}

// WebRTCConfig holds STUN/TURN ICE server URLs handed to video callers.
type WebRTCConfig struct {
	ICEUrls []string // e.g. stun:stun.l.google.com:19302 (comma-separated in env)
}

// EmailConfig holds outbound email (Resend HTTP API) settings.
type EmailConfig struct {
	APIKey        string
	APIURL        string
	FromAddress   string
	FromName      string
	AdminAddress  string // recipient for admin notifications
	TestMode      bool   // redirect all emails to TestRecipient
	TestRecipient string
}

// AIConfig holds the Gemini assistant settings.
type AIConfig struct {
	APIKey       string
	Model        string
	SystemPrompt string
	MaxTokens    int
	Enabled      bool
}

// FeatureConfig holds site-wide feature flags exposed to the frontend.
type FeatureConfig struct {
	BetaMode   bool
	Blog       bool
	Events     bool
	Booking    bool
	LeadMagnet bool
}

// DSN returns the PostgreSQL connection string.
// If DatabaseConfig.URL is set (e.g. DATABASE_URL env), it is used as-is; otherwise built from components.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			SiteURL:            getEnv("SITE_URL", "https://lilystoica.com"),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "calmlily"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "change-me-in-production"),
			ExpireHours: getEnvInt("JWT_EXPIRE_HOURS", 24),
		},
		WebRTC: WebRTCConfig{
			ICEUrls: splitTrim(getEnv("WEBRTC_ICE_URLS", "stun:stun.l.google.com:19302"), ","),
		},
		Email: EmailConfig{
			APIKey:        getEnv("RESEND_API_KEY", ""),
			APIURL:        getEnv("RESEND_API_URL", "https://api.resend.com/emails"),
			FromAddress:   getEnv("EMAIL_FROM_ADDRESS", "hello@lilystoica.com"),
			FromName:      getEnv("EMAIL_FROM_NAME", "Lily Stoica"),
			AdminAddress:  getEnv("EMAIL_ADMIN_ADDRESS", "hello@lilystoica.com"),
			TestMode:      getEnvBool("EMAIL_TEST_MODE", true),
			TestRecipient: getEnv("EMAIL_TEST_RECIPIENT", ""),
		},
		AI: AIConfig{
			APIKey:       getEnv("GEMINI_API_KEY", ""),
			Model:        getEnv("GEMINI_MODEL", "models/gemini-2.0-flash"),
			SystemPrompt: getEnv("AI_SYSTEM_PROMPT", defaultSystemPrompt),
			MaxTokens:    getEnvInt("AI_MAX_TOKENS", 512),
			Enabled:      getEnvBool("AI_ENABLED", false),
		},
		Features: FeatureConfig{
			BetaMode:   getEnvBool("FEATURE_BETA_MODE", true),
			Blog:       getEnvBool("FEATURE_BLOG", true),
			Events:     getEnvBool("FEATURE_EVENTS", true),
			Booking:    getEnvBool("FEATURE_BOOKING", true),
			LeadMagnet: getEnvBool("FEATURE_LEAD_MAGNET", true),
		},
	}
	return cfg, nil
}

const defaultSystemPrompt = "You are Lily's virtual assistant on the Calm Lily website. " +
	"Answer only questions about Lily's coaching, hypnotherapy and nervous system " +
	"regulation services. Keep answers short (3-5 sentences), warm and professional. " +
	"Never provide medical diagnoses. If someone describes a crisis, direct them to " +
	"Samaritans (116 123) or NHS 111. Suggest booking a free discovery call for " +
	"personalised advice."

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func splitTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(s, sep) {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
