package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultSecretsFile = "secrets.yaml"

type Config struct {
	Port     string
	LogLevel string

	GeminiAPIKey  string
	GeminiModel   string
	SaplingAPIKey string
	SaplingURL    string

	// Timeout for outbound detector calls. The Gemini SDK call is bounded
	// by the request context only.
	HTTPTimeout time.Duration

	SessionTTL       time.Duration
	DatabaseURL      string
	TelegramBotToken string
}

// source resolves keys from the process environment first, then from the
// optional secrets file.
type source struct {
	secrets map[string]string
}

func (s source) lookup(k string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return strings.TrimSpace(s.secrets[k])
}

func (s source) mustEnv(k string) (string, error) {
	v := s.lookup(k)
	if v == "" {
		return "", fmt.Errorf("missing required env %s", k)
	}
	return v, nil
}

func (s source) getEnv(k, def string) string {
	if v := s.lookup(k); v != "" {
		return v
	}
	return def
}

func (s source) getDuration(k string, def time.Duration) (time.Duration, error) {
	v := s.lookup(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("bad %s: %w", k, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("bad %s: must be positive", k)
	}
	return d, nil
}

// Load builds the configuration. Both API keys are required; a missing key is
// reported as an error and the caller is expected to stop before serving.
func Load() (*Config, error) {
	secrets, err := loadSecrets()
	if err != nil {
		return nil, err
	}
	src := source{secrets: secrets}

	gemini, err := src.mustEnv("GEMINI_API_KEY")
	if err != nil {
		return nil, err
	}
	sapling, err := src.mustEnv("SAPLING_API_KEY")
	if err != nil {
		return nil, err
	}
	timeout, err := src.getDuration("HTTP_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	ttl, err := src.getDuration("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     src.getEnv("PORT", "8080"),
		LogLevel: strings.ToLower(src.getEnv("LOG_LEVEL", "info")),

		GeminiAPIKey:  gemini,
		GeminiModel:   src.getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		SaplingAPIKey: sapling,
		SaplingURL:    src.getEnv("SAPLING_URL", "https://api.sapling.ai/api/v1/aidetector"),

		HTTPTimeout: timeout,

		SessionTTL:       ttl,
		DatabaseURL:      src.lookup("DATABASE_URL"),
		TelegramBotToken: src.lookup("TELEGRAM_BOT_TOKEN"),
	}, nil
}

// loadSecrets reads a flat YAML mapping (KEY: value). The default file is
// optional; an explicitly named SECRETS_FILE must exist.
func loadSecrets() (map[string]string, error) {
	path := strings.TrimSpace(os.Getenv("SECRETS_FILE"))
	explicit := path != ""
	if !explicit {
		path = defaultSecretsFile
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil, nil
		}
		return nil, fmt.Errorf("read secrets file %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse secrets file %s: %w", path, err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out, nil
}
