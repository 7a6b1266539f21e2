package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/99designs/keyring"

	"github.com/leofalp/mmdraft/internal/credential"
)

// writeConfig writes content as config.ini in a fresh temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Minimal(t *testing.T) {
	path := writeConfig(t, `[DEFAULT]
ApiProvider = anthropic
ApiKey = sk-ant-test
Model = claude-3-5-sonnet-latest
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Provider != "anthropic" || cfg.APIKey != "sk-ant-test" || cfg.Model != "claude-3-5-sonnet-latest" {
		t.Errorf("unexpected required values %+v", cfg)
	}
	if cfg.MaxTokens != 1000 {
		t.Errorf("expected default MaxTokens 1000, got %d", cfg.MaxTokens)
	}
	if cfg.InsecureSkipVerify {
		t.Error("certificate verification must be on by default")
	}
	if cfg.Timeout != 0 {
		t.Errorf("expected no timeout, got %s", cfg.Timeout)
	}
	if cfg.LogFile != "/tmp/gpt_assist.log" || cfg.LogLevel != "DEBUG" || cfg.LogFormat != "compact" {
		t.Errorf("unexpected logging defaults %+v", cfg)
	}
}

func TestLoad_OptionalKeys(t *testing.T) {
	path := writeConfig(t, `[DEFAULT]
apiprovider = openai
APIKEY = sk-test
model = gpt-4o-mini
MaxTokens = 250
BaseURL = https://proxy.example.com/v1
InsecureSkipVerify = true
Timeout = 45s
HTMLToMarkdown = true
LogFile = /var/tmp/mmdraft.log
LogLevel = info
LogFormat = json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Config{
		Provider:           "openai",
		APIKey:             "sk-test",
		Model:              "gpt-4o-mini",
		MaxTokens:          250,
		BaseURL:            "https://proxy.example.com/v1",
		InsecureSkipVerify: true,
		Timeout:            45 * time.Second,
		HTMLToMarkdown:     true,
		LogFile:            "/var/tmp/mmdraft.log",
		LogLevel:           "info",
		LogFormat:          "json",
	}
	if *cfg != want {
		t.Errorf("got %+v\nwant %+v", *cfg, want)
	}
}

func TestLoad_UnknownProviderIsKept(t *testing.T) {
	path := writeConfig(t, "[DEFAULT]\nApiProvider = gemini\nApiKey = k\nModel = m\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Provider != "gemini" {
		t.Errorf("expected provider name as given, got %q", cfg.Provider)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{name: "missing keys", content: "[DEFAULT]\nApiProvider = openai\n", wantMsg: "ApiKey, Model"},
		{name: "bad max tokens", content: "[DEFAULT]\nApiProvider = openai\nApiKey = k\nModel = m\nMaxTokens = 0\n", wantMsg: "MaxTokens"},
		{name: "non numeric max tokens", content: "[DEFAULT]\nApiProvider = openai\nApiKey = k\nModel = m\nMaxTokens = lots\n", wantMsg: "parsing"},
		{name: "unknown request log", content: "[DEFAULT]\nApiProvider = openai\nApiKey = k\nModel = m\nRequestLog = loud\n", wantMsg: "RequestLog"},
		{name: "bad timeout", content: "[DEFAULT]\nApiProvider = openai\nApiKey = k\nModel = m\nTimeout = soon\n", wantMsg: "parsing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected %q in %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.ini"))
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected a not found message, got %q", err.Error())
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "[DEFAULT]\nApiProvider = anthropic\nApiKey = file-key\nModel = file-model\n")
	t.Setenv("MMDRAFT_MODEL", "env-model")
	t.Setenv("MMDRAFT_TIMEOUT", "5s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Model != "env-model" {
		t.Errorf("expected environment model, got %q", cfg.Model)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.Timeout)
	}
	if cfg.APIKey != "file-key" {
		t.Errorf("expected file key, got %q", cfg.APIKey)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	path := writeConfig(t, "[DEFAULT]\nApiProvider = anthropic\nApiKey = file-key\nModel = file-model\n")
	envFile := filepath.Join(filepath.Dir(path), ".env")
	content := "MMDRAFT_APIKEY=dotenv-key\nMMDRAFT_MODEL=dotenv-model\nUNRELATED=1\nMMDRAFT_UNKNOWN=x\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
	t.Setenv("MMDRAFT_MODEL", "env-model")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIKey != "dotenv-key" {
		t.Errorf("expected .env to override the file, got %q", cfg.APIKey)
	}
	if cfg.Model != "env-model" {
		t.Errorf("expected the environment to override .env, got %q", cfg.Model)
	}
	if os.Getenv("MMDRAFT_APIKEY") != "" {
		t.Error(".env values must not leak into the process environment")
	}
}

func TestLoad_KeyringReference(t *testing.T) {
	path := writeConfig(t, "[DEFAULT]\nApiProvider = openai\nApiKey = keyring:openai-work\nModel = gpt-4o\n")
	store := credential.New(keyring.NewArrayKeyring([]keyring.Item{
		{Key: "openai-work", Data: []byte("sk-from-keychain\n")},
	}))

	cfg, err := Load(path, WithSecretStore(store), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIKey != "sk-from-keychain" {
		t.Errorf("expected keyring secret, got %q", cfg.APIKey)
	}
}

func TestLoad_KeyringMissingItem(t *testing.T) {
	path := writeConfig(t, "[DEFAULT]\nApiProvider = openai\nApiKey = keyring:absent\nModel = gpt-4o\n")
	store := credential.New(keyring.NewArrayKeyring(nil))

	_, err := Load(path, WithSecretStore(store))
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if !errors.Is(err, keyring.ErrKeyNotFound) {
		t.Errorf("expected the keyring cause to be kept, got %v", err)
	}
}

func TestConfig_LogValueMasksKey(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))

	cfg := Config{Provider: "anthropic", APIKey: "sk-ant-abcdefghijkl", Model: "m", MaxTokens: 1000}
	logger.Info("config", "config", cfg)

	if strings.Contains(buf.String(), "sk-ant-abcdefghijkl") {
		t.Errorf("API key leaked into log: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "config.provider=anthropic") {
		t.Errorf("expected provider in log, got %s", buf.String())
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if !strings.HasSuffix(path, filepath.Join("GPTAssistant.mmbundle", "config.ini")) {
		t.Errorf("unexpected default path %q", path)
	}
}
