package config

import (
	"fmt"
	"os"
	"strconv"
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

	// Scheduler specifics
	Todoist        TodoistConfig
	Scheduler      SchedulerConfig
	LifeBlocks     LifeBlocksConfig
	Analytics      AnalyticsConfig
	GoogleCalendar GoogleCalendarConfig

	// LLM Provider Abstraction
	LLM LLMConfig
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

type TodoistConfig struct {
	BaseURL string
	APIKey  string
}

// SchedulerConfig tunes the scheduling passes and the day envelope.
type SchedulerConfig struct {
	Timezone        string
	IntervalMinutes int

	SleepTime        string // "HH:MM", e.g. "20:45"
	WeekdayStartHour int
	WeekendStartHour int

	DefaultDuration  int
	MinDuration      int
	FallbackDuration int

	LeadTime     string // e.g. "1h"
	SearchLimit  int
	PassInterval string // how often the daemon runs a pass, e.g. "10m"

	AutoPriorities bool

	// AI estimator knobs
	EstimateCacheSize     int
	EstimateCacheTTL      string
	EstimateRatePerMinute int
}

// SleepClock parses SleepTime into an (hour, minute) pair.
func (c SchedulerConfig) SleepClock() (int, int, error) {
	parts := strings.SplitN(c.SleepTime, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid sleep_time %q, expected HH:MM", c.SleepTime)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid sleep_time hour %q", parts[0])
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid sleep_time minute %q", parts[1])
	}
	return hour, minute, nil
}

type LifeBlocksConfig struct {
	Path string
}

type AnalyticsConfig struct {
	Path string
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
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

	// Todoist
	cfg.Todoist.BaseURL = viper.GetString("todoist.base_url")
	cfg.Todoist.APIKey = expandEnvVar(viper.GetString("todoist.api_key"))
	if todoistKey := viper.GetString("todoist_key"); todoistKey != "" {
		cfg.Todoist.APIKey = todoistKey
	}
	if cfg.Todoist.APIKey == "" {
		return nil, fmt.Errorf("todoist API key is required (todoist.api_key or TODOIST_KEY)")
	}

	// Scheduler
	cfg.Scheduler.Timezone = viper.GetString("scheduler.timezone")
	cfg.Scheduler.IntervalMinutes = viper.GetInt("scheduler.interval_minutes")
	cfg.Scheduler.SleepTime = viper.GetString("scheduler.sleep_time")
	cfg.Scheduler.WeekdayStartHour = viper.GetInt("scheduler.weekday_start_hour")
	cfg.Scheduler.WeekendStartHour = viper.GetInt("scheduler.weekend_start_hour")
	cfg.Scheduler.DefaultDuration = viper.GetInt("scheduler.default_duration")
	cfg.Scheduler.MinDuration = viper.GetInt("scheduler.min_duration")
	cfg.Scheduler.FallbackDuration = viper.GetInt("scheduler.fallback_duration")
	cfg.Scheduler.LeadTime = viper.GetString("scheduler.lead_time")
	cfg.Scheduler.SearchLimit = viper.GetInt("scheduler.search_limit")
	cfg.Scheduler.PassInterval = viper.GetString("scheduler.pass_interval")
	cfg.Scheduler.AutoPriorities = viper.GetBool("scheduler.auto_priorities")
	cfg.Scheduler.EstimateCacheSize = viper.GetInt("scheduler.estimate_cache_size")
	cfg.Scheduler.EstimateCacheTTL = viper.GetString("scheduler.estimate_cache_ttl")
	cfg.Scheduler.EstimateRatePerMinute = viper.GetInt("scheduler.estimate_rate_per_minute")

	if _, _, err := cfg.Scheduler.SleepClock(); err != nil {
		return nil, err
	}

	// Life blocks & analytics persistence
	cfg.LifeBlocks.Path = viper.GetString("life_blocks.path")
	cfg.Analytics.Path = viper.GetString("analytics.path")

	// Google Calendar (optional busy-window source)
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	// Load provider configurations
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
						Timeout:  getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// No providers is a valid state: the estimator falls back to
	// keyword heuristics. A misconfigured provider list is not.
	if len(cfg.LLM.Providers) > 0 {
		if err := validateLLMConfig(&cfg.LLM); err != nil {
			return nil, err
		}
	}

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

	viper.SetDefault("todoist.base_url", "https://api.todoist.com/rest/v2")

	// Scheduler defaults
	viper.SetDefault("scheduler.timezone", "Local")
	viper.SetDefault("scheduler.interval_minutes", 5)
	viper.SetDefault("scheduler.sleep_time", "20:45")
	viper.SetDefault("scheduler.weekday_start_hour", 15)
	viper.SetDefault("scheduler.weekend_start_hour", 9)
	viper.SetDefault("scheduler.default_duration", 30)
	viper.SetDefault("scheduler.min_duration", 5)
	viper.SetDefault("scheduler.fallback_duration", 10)
	viper.SetDefault("scheduler.lead_time", "1h")
	viper.SetDefault("scheduler.search_limit", 10000)
	viper.SetDefault("scheduler.pass_interval", "10m")
	viper.SetDefault("scheduler.auto_priorities", false)
	viper.SetDefault("scheduler.estimate_cache_size", 512)
	viper.SetDefault("scheduler.estimate_cache_ttl", "24h")
	viper.SetDefault("scheduler.estimate_rate_per_minute", 30)

	viper.SetDefault("life_blocks.path", "life_blocks.json")
	viper.SetDefault("analytics.path", "scheduler_passes.jsonl")

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	// Check if value is in format ${VAR_NAME}
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		// Try lowercase version
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		// Try direct os.Getenv as last resort
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		// Check required fields
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			// Check priority is valid
			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}

			// Check for duplicate priorities
			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		}
	}
	return 0
}
