package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Rules  RulesConfig
	Typing TypingConfig
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr            string   `validate:"required"`
	AllowedOrigins  []string `validate:"min=1,dive,required"`
	MaxMessageBytes int64    `validate:"gt=0"`
}

// LogConfig 描述日志输出。
type LogConfig struct {
	Level string `validate:"oneof=debug info warn error"`
	File  string
}

// RulesConfig points at an optional YAML file that extends the built-in matcher tables.
type RulesConfig struct {
	Path string
}

// TypingConfig bounds the simulated typing delay before replies are surfaced.
type TypingConfig struct {
	MinDelay time.Duration `validate:"gte=0"`
	MaxDelay time.Duration `validate:"gtefield=MinDelay"`
	PerChar  time.Duration `validate:"gte=0"`
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	typing, err := loadTypingConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: server,
		Log: LogConfig{
			Level: strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
			File:  strings.TrimSpace(os.Getenv("LOG_FILE")),
		},
		Rules:  RulesConfig{Path: strings.TrimSpace(os.Getenv("RULES_FILE"))},
		Typing: typing,
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return nil, oops.In("config").Wrapf(err, "invalid configuration")
	}

	return cfg, nil
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	maxBytes, err := parseOptionalIntEnv("MAX_MESSAGE_BYTES")
	if err != nil {
		return ServerConfig{}, err
	}
	limit := int64(16 << 10)
	if maxBytes != nil {
		limit = int64(*maxBytes)
	}

	origins := splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"))

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port, AllowedOrigins: origins, MaxMessageBytes: limit}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, oops.In("config").Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, AllowedOrigins: origins, MaxMessageBytes: limit}, nil
}

func loadTypingConfig() (TypingConfig, error) {
	minDelay, err := parseDurationEnv("TYPING_MIN_DELAY", 600*time.Millisecond)
	if err != nil {
		return TypingConfig{}, err
	}

	maxDelay, err := parseDurationEnv("TYPING_MAX_DELAY", 2200*time.Millisecond)
	if err != nil {
		return TypingConfig{}, err
	}

	perChar, err := parseDurationEnv("TYPING_PER_CHAR", 12*time.Millisecond)
	if err != nil {
		return TypingConfig{}, err
	}

	return TypingConfig{MinDelay: minDelay, MaxDelay: maxDelay, PerChar: perChar}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
