package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding an explicit config path.
const EnvVar = "PMINUS_CONFIG"

// TraceConfig gates what goes to the listing. None of the flags changes a
// parsing or checking decision.
type TraceConfig struct {
	EchoSource   bool `toml:"echo_source" yaml:"echo_source"`
	TraceScan    bool `toml:"trace_scan" yaml:"trace_scan"`
	TraceParse   bool `toml:"trace_parse" yaml:"trace_parse"`
	TraceAnalyze bool `toml:"trace_analyze" yaml:"trace_analyze"`
}

type LogConfig struct {
	Level      string `toml:"level" yaml:"level"`
	Timestamps bool   `toml:"timestamps" yaml:"timestamps"`
}

type Config struct {
	Trace TraceConfig `toml:"trace" yaml:"trace"`
	Log   LogConfig   `toml:"log" yaml:"log"`

	// Listing is the file receiving the listing; empty means stdout.
	Listing string `toml:"listing" yaml:"listing"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
}

// Load reads a TOML or YAML file, the decoder is picked by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// SearchPaths lists where LoadFromEnv looks when PMINUS_CONFIG is unset.
func SearchPaths() []string {
	paths := []string{"pminus.toml", "pminus.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "pminus", "config.toml"))
	}
	return paths
}

// LoadFromEnv loads the file named by PMINUS_CONFIG, or the first existing
// search path, or falls back to Default.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	for _, path := range SearchPaths() {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}
