// Package config loads the settings of autoscript from a .env file, an
// optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/acrmp/autoscript/script"
)

const (
	ProviderAzure     = "azure"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds the settings for a run.
type Config struct {
	Provider          string            `yaml:"provider"`
	Model             string            `yaml:"model"`
	Endpoint          string            `yaml:"endpoint"`
	APIVersion        string            `yaml:"api_version"`
	APIKey            string            `yaml:"-"`
	Interpreter       string            `yaml:"interpreter"`
	Script            string            `yaml:"script"`
	GenerateMaxTokens int               `yaml:"generate_max_tokens"`
	FixMaxTokens      int               `yaml:"fix_max_tokens"`
	MaxInstalls       int               `yaml:"max_installs"`
	PackageAliases    map[string]string `yaml:"package_aliases"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Provider:          ProviderAzure,
		APIVersion:        "2024-02-01",
		Interpreter:       "python3",
		Script:            "generated_script.py",
		GenerateMaxTokens: script.DefaultGenerateMaxTokens,
		FixMaxTokens:      script.DefaultFixMaxTokens,
		MaxInstalls:       10,
	}
}

// Load builds the configuration.
// Variables in envFile are added to the environment without replacing those
// already set. The YAML configFile is applied over the defaults and the
// environment is applied last. Missing files are ignored.
func Load(envFile, configFile string) (Config, error) {
	c := Default()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return c, fmt.Errorf("could not load %s: %w", envFile, err)
		}
	}

	if configFile != "" {
		b, err := os.ReadFile(configFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return c, fmt.Errorf("could not read %s: %w", configFile, err)
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return c, fmt.Errorf("could not parse %s: %w", configFile, err)
			}
		}
	}

	c.applyEnv()
	return c, nil
}

func (c *Config) applyEnv() {
	setFromEnv(&c.Provider, "AUTOSCRIPT_PROVIDER")
	setFromEnv(&c.Model, "AUTOSCRIPT_MODEL")
	c.applyProviderEnv()
}

// UseProvider switches to provider p. The endpoint and credential of the
// previous provider are replaced with those of p from the environment.
// Nothing changes when p is already the configured provider.
func (c *Config) UseProvider(p string) {
	if p == c.Provider {
		return
	}
	c.Provider = p
	c.Endpoint = ""
	c.APIKey = ""
	c.applyProviderEnv()
}

func (c *Config) applyProviderEnv() {
	switch c.Provider {
	case ProviderAzure:
		setFromEnv(&c.Endpoint, "AZURE_OPENAI_ENDPOINT")
		setFromEnv(&c.APIVersion, "AZURE_OPENAI_API_VERSION")
		setFromEnv(&c.APIKey, "AZURE_OPENAI_API_KEY")
	case ProviderOpenAI:
		setFromEnv(&c.Endpoint, "OPENAI_BASE_URL")
		setFromEnv(&c.APIKey, "OPENAI_API_KEY")
	case ProviderAnthropic:
		setFromEnv(&c.APIKey, "ANTHROPIC_API_KEY")
	}
}

// ModelName returns the configured model, or the default model of the
// provider if none is configured.
func (c Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == ProviderAnthropic {
		return "claude-3-5-sonnet-20240620"
	}
	return "gpt-4o-mini"
}

func setFromEnv(field *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*field = v
	}
}

// Validate checks the settings that would otherwise fail late in a run.
// Credentials are not checked; the provider reports them when the model is
// created.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAzure, ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown provider: %q", c.Provider)
	}
	if c.Interpreter == "" {
		return errors.New("interpreter must be set")
	}
	if c.Script == "" {
		return errors.New("script must be set")
	}
	if c.GenerateMaxTokens <= 0 || c.FixMaxTokens <= 0 {
		return fmt.Errorf("token ceilings must be positive: generate=%d fix=%d", c.GenerateMaxTokens, c.FixMaxTokens)
	}
	if c.MaxInstalls < 0 {
		return fmt.Errorf("max installs must not be negative: %d", c.MaxInstalls)
	}
	return nil
}
