package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"

	"github.com/leofalp/mmdraft/internal/credential"
	"github.com/leofalp/mmdraft/internal/utils"
)

// ErrConfiguration marks a missing, unreadable or invalid configuration.
var ErrConfiguration = errors.New("configuration error")

// EnvPrefix prefixes environment variables that override file settings,
// e.g. MMDRAFT_MODEL.
const EnvPrefix = "MMDRAFT"

// keyringPrefix marks an ApiKey value that names a keyring item.
const keyringPrefix = "keyring:"

// Config is the immutable configuration of one invocation.
type Config struct {
	Provider           string        `mapstructure:"apiprovider"`
	APIKey             string        `mapstructure:"apikey"`
	Model              string        `mapstructure:"model"`
	MaxTokens          int           `mapstructure:"maxtokens"`
	BaseURL            string        `mapstructure:"baseurl"`
	InsecureSkipVerify bool          `mapstructure:"insecureskipverify"`
	Timeout            time.Duration `mapstructure:"timeout"`
	HTMLToMarkdown     bool          `mapstructure:"htmltomarkdown"`
	LogFile            string        `mapstructure:"logfile"`
	LogLevel           string        `mapstructure:"loglevel"`
	LogFormat          string        `mapstructure:"logformat"`
	RequestLog         string        `mapstructure:"requestlog"` // off, minimal, standard or verbose
}

// defaults lists every recognised key. Keys must be known to viper for
// AutomaticEnv to apply during Unmarshal, so required keys default to "".
var defaults = map[string]any{
	"apiprovider":        "",
	"apikey":             "",
	"model":              "",
	"maxtokens":          1000,
	"baseurl":            "",
	"insecureskipverify": false,
	"timeout":            "0s",
	"htmltomarkdown":     false,
	"logfile":            "/tmp/gpt_assist.log",
	"loglevel":           "DEBUG",
	"logformat":          "compact",
	"requestlog":         "off",
}

// DefaultConfigPath returns the config.ini inside the MailMate bundle.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.ini"
	}
	return filepath.Join(home, "Library", "Application Support", "MailMate", "Bundles", "GPTAssistant.mmbundle", "config.ini")
}

// Option customises [Load].
type Option func(*loadOptions)

type loadOptions struct {
	secrets     credential.Store
	openSecrets func() (credential.Store, error)
	envFile     string
	getenv      func(string) string
}

// WithSecretStore resolves keyring: references against store instead of the
// system keyring.
func WithSecretStore(store credential.Store) Option {
	return func(o *loadOptions) {
		o.secrets = store
	}
}

// WithEnvFile reads extra settings from path instead of the .env file next
// to the configuration.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) {
		o.envFile = path
	}
}

// Load reads the INI file at path (or [DefaultConfigPath] when empty) and
// layers settings as defaults < file < .env < MMDRAFT_* environment.
// Every failure wraps [ErrConfiguration].
func Load(path string, opts ...Option) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	options := loadOptions{
		envFile: filepath.Join(filepath.Dir(path), ".env"),
		openSecrets: func() (credential.Store, error) {
			return credential.Open()
		},
	}
	for _, opt := range opts {
		opt(&options)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	fileValues, err := readINI(path)
	if err != nil {
		return nil, err
	}
	if err := v.MergeConfigMap(fileValues); err != nil {
		return nil, fmt.Errorf("%w: merging %s: %w", ErrConfiguration, path, err)
	}

	envValues, err := readEnvFile(options.envFile)
	if err != nil {
		return nil, err
	}
	if len(envValues) > 0 {
		if err := v.MergeConfigMap(envValues); err != nil {
			return nil, fmt.Errorf("%w: merging %s: %w", ErrConfiguration, options.envFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrConfiguration, path, err)
	}
	cfg.Provider = strings.TrimSpace(cfg.Provider)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Model = strings.TrimSpace(cfg.Model)

	if ref, ok := strings.CutPrefix(cfg.APIKey, keyringPrefix); ok {
		secret, err := resolveSecret(options, ref)
		if err != nil {
			return nil, err
		}
		cfg.APIKey = secret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports missing required keys and out-of-range values.
func (c *Config) Validate() error {
	var missing []string
	if c.Provider == "" {
		missing = append(missing, "ApiProvider")
	}
	if c.APIKey == "" {
		missing = append(missing, "ApiKey")
	}
	if c.Model == "" {
		missing = append(missing, "Model")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required key(s) %s", ErrConfiguration, strings.Join(missing, ", "))
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("%w: MaxTokens must be positive, got %d", ErrConfiguration, c.MaxTokens)
	}
	switch strings.ToLower(c.RequestLog) {
	case "", "off", "minimal", "standard", "verbose":
	default:
		return fmt.Errorf("%w: RequestLog must be off, minimal, standard or verbose, got %q", ErrConfiguration, c.RequestLog)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: Timeout must not be negative, got %s", ErrConfiguration, c.Timeout)
	}
	return nil
}

// LogValue implements slog.LogValuer with the API key masked.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("provider", c.Provider),
		slog.String("api_key", utils.MaskSecret(c.APIKey)),
		slog.String("model", c.Model),
		slog.Int("max_tokens", c.MaxTokens),
		slog.String("base_url", c.BaseURL),
		slog.Bool("insecure_skip_verify", c.InsecureSkipVerify),
		slog.Duration("timeout", c.Timeout),
		slog.Bool("html_to_markdown", c.HTMLToMarkdown),
		slog.String("request_log", c.RequestLog),
	)
}

// readINI returns the DEFAULT section of the file with lower-cased keys.
func readINI(path string) (map[string]any, error) {
	file, err := ini.LoadSources(ini.LoadOptions{InsensitiveKeys: true}, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: config file %s not found", ErrConfiguration, path)
		}
		return nil, fmt.Errorf("%w: reading %s: %w", ErrConfiguration, path, err)
	}

	values := map[string]any{}
	for key, value := range file.Section(ini.DefaultSection).KeysHash() {
		values[key] = value
	}
	return values, nil
}

// readEnvFile reads MMDRAFT_* entries of a dotenv file without touching the
// process environment. A missing file yields no values.
func readEnvFile(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}

	entries, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %w", ErrConfiguration, path, err)
	}

	values := map[string]any{}
	for name, value := range entries {
		key, ok := strings.CutPrefix(name, EnvPrefix+"_")
		if !ok {
			continue
		}
		key = strings.ToLower(key)
		if _, known := defaults[key]; known {
			values[key] = value
		}
	}
	return values, nil
}

func resolveSecret(options loadOptions, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: ApiKey keyring reference is empty", ErrConfiguration)
	}

	store := options.secrets
	if store == nil {
		opened, err := options.openSecrets()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		store = opened
	}

	secret, err := store.Get(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return strings.TrimSpace(secret), nil
}
