package broker

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ThinkingMode is the caller-requested reasoning depth. Passed through to
// providers that support extended thinking; ignored otherwise.
type ThinkingMode string

const (
	ThinkingMinimal ThinkingMode = "minimal"
	ThinkingLow     ThinkingMode = "low"
	ThinkingMedium  ThinkingMode = "medium"
	ThinkingHigh    ThinkingMode = "high"
	ThinkingMax     ThinkingMode = "max"
)

func validThinkingMode(s string) (ThinkingMode, bool) {
	switch ThinkingMode(s) {
	case ThinkingMinimal, ThinkingLow, ThinkingMedium, ThinkingHigh, ThinkingMax:
		return ThinkingMode(s), true
	default:
		return "", false
	}
}

// Config is the fixed set of named options read once at process start
// (§4.1, §6). Every field except ConcurrencyLimit (fixed at 8 by
// LoadConfig) and Warnings (collected while loading) is read from one env
// variable; there is no other source of truth for process settings.
type Config struct {
	DefaultModel        string // alias | canonical | "auto"
	DefaultThinkingMode  ThinkingMode
	DefaultVisionModel   string

	GoogleAPIKey     string
	OpenAIAPIKey     string
	OpenRouterAPIKey string
	CustomAPIURL     string
	CustomAPIKey     string
	CustomModelName  string

	GoogleAllowedModels     string
	OpenAIAllowedModels     string
	OpenRouterAllowedModels string

	ConversationTTL      time.Duration
	MaxConversationTurns int
	MCPPromptSizeLimit   int

	RedisURL string
	LogLevel LogLevel

	ModelCatalogFile string

	ConcurrencyLimit int

	// Warnings accumulated during Load; never fatal on their own (unknown
	// thinking modes, etc. — see §4.1 validation rules).
	Warnings []string
}

// isPlaceholder treats blank and literal "your_*_api_key_here"-shaped
// sentinel values as absent, mirroring full_config.go's "zero-value is
// default" idiom throughout the teacher.
func isPlaceholder(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	lv := strings.ToLower(v)
	return strings.HasPrefix(lv, "your_") && strings.HasSuffix(lv, "_here")
}

func cleanKey(v string) string {
	if isPlaceholder(v) {
		return ""
	}
	return v
}

// LoadConfig reads Config from the environment. envFile, if non-empty, is
// loaded into the process environment first via godotenv (local-dev
// convenience only; production deployments set real env vars).
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	}

	c := &Config{
		DefaultModel:            getenvDefault("DEFAULT_MODEL", "auto"),
		DefaultVisionModel:      os.Getenv("DEFAULT_VISION_MODEL"),
		GoogleAPIKey:            cleanKey(os.Getenv("GEMINI_API_KEY")),
		OpenAIAPIKey:            cleanKey(os.Getenv("OPENAI_API_KEY")),
		OpenRouterAPIKey:        cleanKey(os.Getenv("OPENROUTER_API_KEY")),
		CustomAPIURL:            os.Getenv("CUSTOM_API_URL"),
		CustomAPIKey:            cleanKey(os.Getenv("CUSTOM_API_KEY")),
		CustomModelName:         os.Getenv("CUSTOM_MODEL_NAME"),
		GoogleAllowedModels:     os.Getenv("GOOGLE_ALLOWED_MODELS"),
		OpenAIAllowedModels:     os.Getenv("OPENAI_ALLOWED_MODELS"),
		OpenRouterAllowedModels: os.Getenv("OPENROUTER_ALLOWED_MODELS"),
		RedisURL:                os.Getenv("REDIS_URL"),
		ModelCatalogFile:        os.Getenv("MODEL_CATALOG_FILE"),
		ConcurrencyLimit:        8,
	}

	mode, ok := validThinkingMode(getenvDefault("DEFAULT_THINKING_MODE_THINKDEEP", "high"))
	if !ok {
		c.Warnings = append(c.Warnings, fmt.Sprintf("unknown DEFAULT_THINKING_MODE_THINKDEEP, falling back to %q", ThinkingHigh))
		mode = ThinkingHigh
	}
	c.DefaultThinkingMode = mode

	c.ConversationTTL = parseHoursDefault("CONVERSATION_TIMEOUT_HOURS", 3, &c.Warnings)
	c.MaxConversationTurns = parseIntDefault("MAX_CONVERSATION_TURNS", 20, &c.Warnings)
	c.MCPPromptSizeLimit = parseIntDefault("MCP_PROMPT_SIZE_LIMIT", 50000, &c.Warnings)
	c.LogLevel = ParseLogLevel(os.Getenv("LOG_LEVEL"))

	if c.GoogleAPIKey == "" && c.OpenAIAPIKey == "" && c.OpenRouterAPIKey == "" &&
		(c.CustomAPIURL == "" || c.CustomAPIKey == "") {
		return nil, ErrNoProviders
	}

	return c, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntDefault(key string, def int, warnings *[]string) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		*warnings = append(*warnings, fmt.Sprintf("invalid %s=%q, using default %d", key, v, def))
		return def
	}
	return n
}

func parseHoursDefault(key string, defHours int, warnings *[]string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(defHours) * time.Hour
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		*warnings = append(*warnings, fmt.Sprintf("invalid %s=%q, using default %dh", key, v, defHours))
		return time.Duration(defHours) * time.Hour
	}
	return time.Duration(n) * time.Hour
}
