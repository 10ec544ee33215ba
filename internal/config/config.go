// internal/config/config.go
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/codr1/themegradient/internal/llm"
	"github.com/codr1/themegradient/internal/secrets"
)

// APIKeyName is looked up in the environment first, then in the secrets store.
const APIKeyName = "GROQ_API_KEY"

const (
	defaultAppName         = "Theme Gradient"
	defaultEnvironment     = "development"
	defaultPort            = 8080
	defaultInputDelay      = 300 * time.Millisecond
	defaultShutdownTimeout = 30 * time.Second
	defaultSecretsFile     = ".streamlit/secrets.toml"
)

var ErrMissingAPIKey = errors.New("api key not found")

type LLMConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	Timeout     time.Duration `yaml:"timeout"`
	SecretsFile string        `yaml:"secrets_file"`

	AWSSecretID string `yaml:"aws_secret_id"`
	AWSRegion   string `yaml:"aws_region"`

	APIKey string `yaml:"-"` // Loaded from environment or secrets store
}

type Config struct {
	App struct {
		Name            string        `yaml:"name"`
		Environment     string        `yaml:"environment"`
		Port            int           `yaml:"port"`
		InputDelay      time.Duration `yaml:"input_delay"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"app"`

	LLM LLMConfig `yaml:"llm"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.App.Name = defaultAppName
	cfg.App.Environment = defaultEnvironment
	cfg.App.Port = defaultPort
	cfg.App.InputDelay = defaultInputDelay
	cfg.App.ShutdownTimeout = defaultShutdownTimeout
	cfg.LLM.BaseURL = llm.DefaultBaseURL
	cfg.LLM.Model = llm.DefaultModel
	cfg.LLM.Timeout = llm.DefaultTimeout
	cfg.LLM.SecretsFile = defaultSecretsFile
	return &cfg
}

// Load loads .env, the optional YAML file at configPath and the API key.
// A missing API key is reported as ErrMissingAPIKey.
func Load(ctx context.Context, configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := Default()
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg.applyEnv()
	cfg.resolvePaths(configPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := cfg.SecretStore(ctx)
	if err != nil {
		return nil, err
	}
	apiKey, err := ResolveAPIKey(ctx, store)
	if err != nil {
		return nil, err
	}
	cfg.LLM.APIKey = apiKey

	return cfg, nil
}

// ResolveAPIKey reads APIKeyName from the environment, falling back to store.
func ResolveAPIKey(ctx context.Context, store secrets.Store) (string, error) {
	if value, ok := os.LookupEnv(APIKeyName); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value), nil
	}
	if store == nil {
		return "", ErrMissingAPIKey
	}

	value, err := store.Lookup(ctx, APIKeyName)
	if err != nil {
		if errors.Is(err, secrets.ErrNotFound) {
			return "", ErrMissingAPIKey
		}
		return "", fmt.Errorf("error reading secrets store: %w", err)
	}
	return strings.TrimSpace(value), nil
}

// SecretStore builds the secrets chain: the TOML file, then AWS when configured.
func (c *Config) SecretStore(ctx context.Context) (secrets.Store, error) {
	chain := secrets.Chain{secrets.NewFileStore(c.LLM.SecretsFile)}
	if c.LLM.AWSSecretID != "" {
		awsStore, err := secrets.NewAWSStore(ctx, secrets.AWSOptions{
			SecretID:        c.LLM.AWSSecretID,
			Region:          c.LLM.AWSRegion,
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		})
		if err != nil {
			return nil, fmt.Errorf("error creating aws secrets store: %w", err)
		}
		chain = append(chain, awsStore)
	}
	return chain, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.App.Name) == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("app port must be between 1 and 65535")
	}
	if c.App.InputDelay < 0 {
		return fmt.Errorf("app input delay must not be negative")
	}
	if strings.TrimSpace(c.LLM.BaseURL) == "" {
		return fmt.Errorf("llm base url is required")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return fmt.Errorf("llm model is required")
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm timeout must not be negative")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.App.Port)
}

func (c *Config) applyEnv() {
	c.App.Environment = getEnv("ENVIRONMENT", c.App.Environment)
	c.App.Port = getEnvAsInt("PORT", c.App.Port)
	c.App.ShutdownTimeout = time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", int(c.App.ShutdownTimeout/time.Second))) * time.Second
	c.LLM.BaseURL = getEnv("LLM_BASE_URL", c.LLM.BaseURL)
	c.LLM.Model = getEnv("LLM_MODEL", c.LLM.Model)
	c.LLM.SecretsFile = getEnv("SECRETS_FILE", c.LLM.SecretsFile)
	c.LLM.AWSSecretID = getEnv("AWS_SECRET_ID", c.LLM.AWSSecretID)
	c.LLM.AWSRegion = getEnv("AWS_REGION", c.LLM.AWSRegion)
}

// resolvePaths anchors a relative secrets file next to the config file.
func (c *Config) resolvePaths(configPath string) {
	if c.LLM.SecretsFile == "" || filepath.IsAbs(c.LLM.SecretsFile) {
		return
	}
	c.LLM.SecretsFile = filepath.Join(filepath.Dir(configPath), c.LLM.SecretsFile)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}
