package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Chatbot specifics
	Chat      ChatConfig
	Archive   ArchiveConfig
	RateLimit RateLimitConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"` // whole fallback chain, non-streaming only
	RequestTimeout  string           `yaml:"request_timeout"`   // per streaming comparison slot
	KeyCacheSize    int              `yaml:"key_cache_size"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string   `yaml:"name"`
	Enabled  bool     `yaml:"enabled"`
	Priority int      `yaml:"priority"`
	APIKey   string   `yaml:"api_key"`
	BaseURL  string   `yaml:"base_url,omitempty"`
	Model    string   `yaml:"model"`
	Models   []string `yaml:"models,omitempty"`
}

// ChatConfig holds the conversation defaults.
type ChatConfig struct {
	SystemPrompt     string
	DefaultModel     string
	CompareModels    []string
	Temperature      float64
	MinTemperature   float64
	MaxTemperature   float64
	MaxTokens        int
	SessionTTL       string
	MaxSessions      int
	MaxDocumentBytes int64
}

// ArchiveConfig holds the transcript archive settings.
type ArchiveConfig struct {
	Enabled    bool
	SQLitePath string
}

// RateLimitConfig holds the per-client API rate limit.
type RateLimitConfig struct {
	Enabled        bool
	RequestsPerMin int
	Burst          int
	MaxClients     int
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")
	cfg.LLM.RequestTimeout = viper.GetString("llm.request_timeout")
	cfg.LLM.KeyCacheSize = viper.GetInt("llm.key_cache_size")

	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Models:   getStringSliceFromMap(providerMap, "models"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// Without a providers section, fall back to a single Groq provider keyed
	// by GROQ_API_KEY.
	if len(cfg.LLM.Providers) == 0 {
		cfg.LLM.Providers = []ProviderConfig{{
			Name:     "groq",
			Enabled:  true,
			Priority: 1,
			APIKey:   expandEnvVar("${GROQ_API_KEY}"),
			Model:    viper.GetString("chat.default_model"),
		}}
	}

	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, err
	}

	// Chat
	cfg.Chat.SystemPrompt = viper.GetString("chat.system_prompt")
	cfg.Chat.DefaultModel = viper.GetString("chat.default_model")
	cfg.Chat.CompareModels = viper.GetStringSlice("chat.compare_models")
	cfg.Chat.Temperature = viper.GetFloat64("chat.temperature")
	cfg.Chat.MinTemperature = viper.GetFloat64("chat.min_temperature")
	cfg.Chat.MaxTemperature = viper.GetFloat64("chat.max_temperature")
	cfg.Chat.MaxTokens = viper.GetInt("chat.max_tokens")
	cfg.Chat.SessionTTL = viper.GetString("chat.session_ttl")
	cfg.Chat.MaxSessions = viper.GetInt("chat.max_sessions")
	cfg.Chat.MaxDocumentBytes = viper.GetInt64("chat.max_document_bytes")

	if err := validateChatConfig(&cfg.Chat); err != nil {
		return nil, err
	}

	// Archive
	cfg.Archive.Enabled = viper.GetBool("archive.enabled")
	cfg.Archive.SQLitePath = viper.GetString("archive.sqlite_path")

	// Rate limit
	cfg.RateLimit.Enabled = viper.GetBool("rate_limit.enabled")
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")
	cfg.RateLimit.Burst = viper.GetInt("rate_limit.burst")
	cfg.RateLimit.MaxClients = viper.GetInt("rate_limit.max_clients")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")
	viper.SetDefault("llm.request_timeout", "120s")
	viper.SetDefault("llm.key_cache_size", 64)

	// Chat defaults
	viper.SetDefault("chat.default_model", "llama-3.1-8b-instant")
	viper.SetDefault("chat.compare_models", []string{"llama-3.1-8b-instant", "llama-3.3-70b-versatile"})
	viper.SetDefault("chat.temperature", 0.7)
	viper.SetDefault("chat.min_temperature", 0.1)
	viper.SetDefault("chat.max_temperature", 1.0)
	viper.SetDefault("chat.max_tokens", 1024)
	viper.SetDefault("chat.session_ttl", "24h")
	viper.SetDefault("chat.max_sessions", 1000)
	viper.SetDefault("chat.max_document_bytes", 2<<20)

	viper.SetDefault("archive.enabled", false)
	viper.SetDefault("archive.sqlite_path", "./data/transcripts.db")

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests_per_min", 60)
	viper.SetDefault("rate_limit.burst", 10)
	viper.SetDefault("rate_limit.max_clients", 10000)
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		return os.Getenv(envVar)
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}

			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// validateChatConfig validates the conversation defaults
func validateChatConfig(cfg *ChatConfig) error {
	if cfg.MinTemperature > cfg.MaxTemperature {
		return fmt.Errorf("chat: min_temperature %.2f exceeds max_temperature %.2f", cfg.MinTemperature, cfg.MaxTemperature)
	}
	if cfg.Temperature < cfg.MinTemperature || cfg.Temperature > cfg.MaxTemperature {
		return fmt.Errorf("chat: temperature %.2f outside [%.2f, %.2f]", cfg.Temperature, cfg.MinTemperature, cfg.MaxTemperature)
	}
	if len(cfg.CompareModels) != 0 && len(cfg.CompareModels) != 2 {
		return fmt.Errorf("chat: compare_models needs exactly two entries, got %d", len(cfg.CompareModels))
	}
	if cfg.MaxTokens < 0 {
		return fmt.Errorf("chat: max_tokens must not be negative")
	}
	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}

func getStringSliceFromMap(m map[string]interface{}, key string) []string {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
