package nodenet

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// Config stores the configuration for building and training a network.
type Config struct {
	Network  NetworkConfig
	Training TrainingConfig
	Logging  LoggingConfig
}

// NetworkConfig holds the topology and initialization parameters.
type NetworkConfig struct {
	NumInputs     int     `ini:"num_inputs"`
	HiddenWidth   int     `ini:"hidden_width"`
	HiddenDepth   int     `ini:"hidden_depth"`
	NumOutputs    int     `ini:"num_outputs"`
	InitialWeight float64 `ini:"initial_weight"` // Default: 0.5
	Bias          float64 `ini:"bias"`           // Default: 1.0
}

// TrainingConfig holds parameters for the trainer.
type TrainingConfig struct {
	Epochs       int     `ini:"epochs"`
	LearningRate float64 `ini:"learning_rate"` // Default: 0.8
	Dataset      string  `ini:"dataset"`       // Path to an HCL dataset; empty selects the built-in XOR set
}

// LoggingConfig selects the slog level and output format.
type LoggingConfig struct {
	Level  string `ini:"level"`  // debug, info, warn, error
	Format string `ini:"format"` // text, json
}

const (
	DefaultInitialWeight = 0.5
	DefaultBias          = 1.0
	DefaultLearningRate  = 0.8
)

// DefaultConfig returns the 2-2-1 XOR demo configuration.
func DefaultConfig() *Config {
	return &Config{
		Network: NetworkConfig{
			NumInputs:     2,
			HiddenWidth:   2,
			HiddenDepth:   1,
			NumOutputs:    1,
			InitialWeight: DefaultInitialWeight,
			Bias:          DefaultBias,
		},
		Training: TrainingConfig{
			Epochs:       1000,
			LearningRate: DefaultLearningRate,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration parameters from an INI file.
// Keys that are absent keep the values from DefaultConfig.
func LoadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}
	return mapConfig(cfg)
}

// ParseConfig is LoadConfig for in-memory INI data.
func ParseConfig(data []byte) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return mapConfig(cfg)
}

func mapConfig(cfg *ini.File) (*Config, error) {
	config := DefaultConfig()

	if err := cfg.Section("Network").MapTo(&config.Network); err != nil {
		return nil, fmt.Errorf("failed to map [Network] section: %w", err)
	}
	if err := cfg.Section("Training").MapTo(&config.Training); err != nil {
		return nil, fmt.Errorf("failed to map [Training] section: %w", err)
	}
	if err := cfg.Section("Logging").MapTo(&config.Logging); err != nil {
		return nil, fmt.Errorf("failed to map [Logging] section: %w", err)
	}

	config.Training.Dataset = cleanIniString(config.Training.Dataset)
	config.Logging.Level = strings.ToLower(cleanIniString(config.Logging.Level))
	config.Logging.Format = strings.ToLower(cleanIniString(config.Logging.Format))

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if err := c.Network.Validate(); err != nil {
		return err
	}
	if c.Training.Epochs < 0 {
		return fmt.Errorf("%w: epochs cannot be negative", ErrConfig)
	}
	if c.Training.LearningRate <= 0 {
		return fmt.Errorf("%w: learning_rate must be positive", ErrConfig)
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("%w: invalid log level '%s', must be one of 'debug', 'info', 'warn', 'error'", ErrConfig, c.Logging.Level)
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("%w: invalid log format '%s', must be 'text' or 'json'", ErrConfig, c.Logging.Format)
	}
	return nil
}

// Validate checks the topology dimensions. A depth of zero connects the
// output layer straight to the inputs, in which case the width is unused.
func (nc *NetworkConfig) Validate() error {
	if nc.NumInputs <= 0 {
		return fmt.Errorf("%w: num_inputs must be positive", ErrConfig)
	}
	if nc.NumOutputs <= 0 {
		return fmt.Errorf("%w: num_outputs must be positive", ErrConfig)
	}
	if nc.HiddenDepth < 0 {
		return fmt.Errorf("%w: hidden_depth cannot be negative", ErrConfig)
	}
	if nc.HiddenDepth > 0 && nc.HiddenWidth <= 0 {
		return fmt.Errorf("%w: hidden_width must be positive when hidden_depth is %d", ErrConfig, nc.HiddenDepth)
	}
	return nil
}

// NodeCount is the number of nodes a network with these dimensions holds.
func (nc *NetworkConfig) NodeCount() int {
	return nc.NumInputs + nc.HiddenWidth*nc.HiddenDepth + nc.NumOutputs
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
