package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "30m" as well as integer nanoseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw interface{}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case int:
		*d = Duration(v)
	default:
		return fmt.Errorf("invalid duration value %v", raw)
	}
	return nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds the gridboard server configuration, loaded from a YAML file.
type Config struct {
	// ListenAddr is the address the dashboard listens on
	ListenAddr string `yaml:"listen_addr"`

	// DataLocation points at the aggregated error data: either an
	// all_errors.json dump or an existing .db file
	DataLocation string `yaml:"data_location"`

	// DataDir is where the action history database lives
	DataDir string `yaml:"data_dir"`

	// RefreshInterval is how long a loaded error cache stays valid
	RefreshInterval Duration `yaml:"refresh_interval"`

	// Readiness configures the site readiness source
	Readiness ReadinessConfig `yaml:"readiness"`

	// ParamDefaults pre-fills free-text form fields by name
	ParamDefaults map[string]string `yaml:"param_defaults"`

	// IncludeAllACDCs also lists recovery workflows with zero errors
	IncludeAllACDCs bool `yaml:"include_all_acdcs"`

	// RateLimit is requests per second allowed per client IP (0 disables)
	RateLimit float64 `yaml:"rate_limit"`

	Log LogConfig `yaml:"log"`
}

// ReadinessConfig configures where site readiness statuses come from.
type ReadinessConfig struct {
	URL     string   `yaml:"url"`
	TTL     Duration `yaml:"ttl"`
	Timeout Duration `yaml:"timeout"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ListenAddr:      ":8080",
		DataLocation:    "all_errors.json",
		DataDir:         "data",
		RefreshInterval: Duration(30 * time.Minute),
		Readiness: ReadinessConfig{
			TTL:     Duration(15 * time.Minute),
			Timeout: Duration(10 * time.Second),
		},
		ParamDefaults: map[string]string{
			"group": "production",
		},
		RateLimit: 0,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration file at path, applying defaults for any
// fields the file leaves unset.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = Duration(30 * time.Minute)
	}
	if cfg.Readiness.Timeout <= 0 {
		cfg.Readiness.Timeout = Duration(10 * time.Second)
	}

	return cfg, nil
}
