package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every console environment variable.
const EnvPrefix = "FRESHMART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App    AppConfig
	API    APIConfig
	Chat   ChatConfig
	Upload UploadConfig
	Ops    OpsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env       string `envconfig:"FRESHMART_APP_ENV" default:"dev"`
	LogLevel  string `envconfig:"FRESHMART_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"FRESHMART_LOG_FORMAT" default:"console"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type APIConfig struct {
	BaseURL string        `envconfig:"FRESHMART_API_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"FRESHMART_API_TIMEOUT" default:"10s"`
}

func (a APIConfig) validate() error {
	trimmed := strings.TrimSpace(a.BaseURL)
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return fmt.Errorf("FRESHMART_API_BASE_URL must be an absolute http(s) URL, got %q", a.BaseURL)
	}
	return nil
}

type ChatConfig struct {
	PollInterval       time.Duration `envconfig:"FRESHMART_CHAT_POLL_INTERVAL" default:"3s"`
	SeparatorThreshold time.Duration `envconfig:"FRESHMART_CHAT_SEPARATOR_THRESHOLD" default:"5m"`
}

type UploadConfig struct {
	MaxUploadMB int `envconfig:"FRESHMART_MAX_UPLOAD_MB" default:"5"`
}

type OpsConfig struct {
	ListenAddr string `envconfig:"FRESHMART_OPS_ADDR" default:"127.0.0.1:9180"`
}
