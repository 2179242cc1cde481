package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Mongo booking ledger. Empty DatabaseURL disables it.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisLoyaltyDB       int    `mapstructure:"REDIS_LOYALTY_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Gemini classification.
	GeminiAPIKey string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string        `mapstructure:"GEMINI_MODEL"`
	AIContextTTL time.Duration `mapstructure:"AI_CONTEXT_TTL"`

	// Booking wizard.
	SessionTTL         time.Duration `mapstructure:"SESSION_TTL"`
	PromptLatency      time.Duration `mapstructure:"PROMPT_LATENCY"`
	VerificationDelay  time.Duration `mapstructure:"VERIFICATION_DELAY"`
	CompletionDelay    time.Duration `mapstructure:"COMPLETION_DELAY"`
	SubmissionEndpoint string        `mapstructure:"SUBMISSION_ENDPOINT"`
	SubmissionTimeout  time.Duration `mapstructure:"SUBMISSION_TIMEOUT"`

	// IP geolocation fallback; %s is replaced with the client IP.
	GeoLookupURL string `mapstructure:"GEO_LOOKUP_URL"`

	// Visit reminders.
	RemindersEnabled bool          `mapstructure:"REMINDERS_ENABLED"`
	ReminderLead     time.Duration `mapstructure:"REMINDER_LEAD"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables win.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATABASE_NAME", "fayano")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_LOYALTY_DB", 1)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("AI_CONTEXT_TTL", 30*time.Minute)
	viper.SetDefault("SESSION_TTL", 30*time.Minute)
	viper.SetDefault("PROMPT_LATENCY", 2500*time.Millisecond)
	viper.SetDefault("VERIFICATION_DELAY", 2*time.Second)
	viper.SetDefault("COMPLETION_DELAY", 2*time.Second)
	viper.SetDefault("SUBMISSION_ENDPOINT", "https://formspree.io/f/movzeaqe")
	viper.SetDefault("SUBMISSION_TIMEOUT", 10*time.Second)
	viper.SetDefault("GEO_LOOKUP_URL", "http://ip-api.com/json/%s")
	viper.SetDefault("REMINDERS_ENABLED", false)
	viper.SetDefault("REMINDER_LEAD", 2*time.Hour)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
