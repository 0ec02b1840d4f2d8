package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/RichardoC/chatbot-core/internal/llm"
	"github.com/RichardoC/chatbot-core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chatbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, models.DefaultModel, cfg.Model)
	assert.Equal(t, llm.DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, ":8100", cfg.Server.Addr)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
api_key: file-key
model: Qwen/QwQ-32B
start_message: You are a coding assistant.
history_enabled: false
backend: langchain
endpoint: http://localhost:11434/v1
timeout: 15s
log_level: warn
server:
  addr: ":9000"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, models.QwenQwQ32B, cfg.Model)
	assert.Equal(t, "You are a coding assistant.", cfg.StartMessage)
	assert.False(t, cfg.HistoryEnabled)
	assert.Equal(t, BackendLangChain, cfg.Backend)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
	assert.IsType(t, &llm.LangChainClient{}, cfg.Completer())
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "api_key: file-key\nmodel: microsoft/phi-4\n")
	t.Setenv("CHATBOT_API_KEY", "env-key")
	t.Setenv("CHATBOT_TIMEOUT", "3s")
	t.Setenv("CHATBOT_ADDR", ":7000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, models.MicrosoftPhi4, cfg.Model)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.IsType(t, &llm.HTTPClient{}, cfg.Completer())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "api_key: [unterminated"))
	assert.Error(t, err)

	t.Setenv("CHATBOT_TIMEOUT", "soon")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Backend = "grpc"
	cfg.Endpoint = "not a url"
	cfg.Timeout = 0
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 5)
}

func TestLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "error"} {
		cfg := Default()
		cfg.LogLevel = level
		logger, err := cfg.Logger()
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
}
