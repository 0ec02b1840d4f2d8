package config

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/RichardoC/chatbot-core/internal/llm"
	"github.com/RichardoC/chatbot-core/internal/models"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Backend string

const (
	BackendHTTP      Backend = "http"
	BackendLangChain Backend = "langchain"
)

type Config struct {
	APIKey         string        `yaml:"api_key"`
	Model          models.Model  `yaml:"model"`
	StartMessage   string        `yaml:"start_message"`
	HistoryEnabled bool          `yaml:"history_enabled"`
	Backend        Backend       `yaml:"backend"`
	Endpoint       string        `yaml:"endpoint"`
	Timeout        time.Duration `yaml:"timeout"`
	LogLevel       string        `yaml:"log_level"`
	Server         ServerConfig  `yaml:"server"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

func Default() Config {
	return Config{
		Model:          models.DefaultModel,
		StartMessage:   models.DefaultStartMessage,
		HistoryEnabled: true,
		Backend:        BackendHTTP,
		Endpoint:       llm.DefaultEndpoint,
		Timeout:        llm.DefaultTimeout,
		LogLevel:       "info",
		Server:         ServerConfig{Addr: ":8100"},
	}
}

// Load reads the YAML file at path over the defaults, then applies the
// CHATBOT_* environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("CHATBOT_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("CHATBOT_MODEL"); v != "" {
		c.Model = models.Model(v)
	}
	if v := os.Getenv("CHATBOT_START_MESSAGE"); v != "" {
		c.StartMessage = v
	}
	if v := os.Getenv("CHATBOT_BACKEND"); v != "" {
		c.Backend = Backend(v)
	}
	if v := os.Getenv("CHATBOT_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("CHATBOT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("CHATBOT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("CHATBOT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CHATBOT_TIMEOUT %q: %w", v, err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate reports every problem with the config at once.
func (c Config) Validate() error {
	var err error
	if c.APIKey == "" {
		err = multierr.Append(err, errors.New("api_key is required (or set CHATBOT_API_KEY)"))
	}
	if c.Model == "" {
		err = multierr.Append(err, errors.New("model must not be empty"))
	}
	switch c.Backend {
	case BackendHTTP, BackendLangChain:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown backend %q", c.Backend))
	}
	if u, parseErr := url.Parse(c.Endpoint); parseErr != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		err = multierr.Append(err, fmt.Errorf("endpoint %q must be an absolute http(s) URL", c.Endpoint))
	}
	if c.Timeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	return err
}

// Completer builds the remote model client selected by Backend.
func (c Config) Completer() llm.Completer {
	if c.Backend == BackendLangChain {
		return llm.NewLangChainClient(c.Endpoint, &http.Client{Timeout: c.Timeout})
	}
	return llm.NewHTTPClient(llm.WithEndpoint(c.Endpoint), llm.WithTimeout(c.Timeout))
}

// Logger builds the process logger for LogLevel. Debug switches to the
// development encoder.
func (c Config) Logger() (*zap.Logger, error) {
	if c.LogLevel == "debug" {
		return zap.NewDevelopment()
	}
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
