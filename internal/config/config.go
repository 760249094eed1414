// Package config provides unified configuration loading for casegraph.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/analyticase/casegraph/internal/integrate"
)

// Dir is the per-project directory holding the config file, the run
// database, and trace logs.
const Dir = ".casegraph"

// Config contains all casegraph configuration settings.
type Config struct {
	// Engine holds the integration run tunables.
	Engine integrate.Config `json:"engine" yaml:"engine"`

	// Inputs points at the adapter input files.
	Inputs InputsConfig `json:"inputs" yaml:"inputs"`

	// Logging configures operational and trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// InputsConfig locates the legal framework and simulation output files.
type InputsConfig struct {
	// LexDir is a directory of legal framework YAML files. Empty means no
	// legal side is loaded from disk.
	LexDir string `json:"lex_dir,omitempty" yaml:"lex_dir,omitempty"`

	// SimFile is a simulation output JSON file. Empty means the built-in
	// sample scenario is used.
	SimFile string `json:"sim_file,omitempty" yaml:"sim_file,omitempty"`
}

// LoggingConfig configures casegraph's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables pipeline stage logging to .casegraph/trace.jsonl.
	// "trace" additionally includes per-node mapping decisions.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Engine: integrate.DefaultConfig(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration for the project rooted at root.
// Order: defaults -> <root>/.casegraph/config.yaml -> environment variables
func Load(root string) (*Config, error) {
	config := Default()

	configPath := filepath.Join(root, Dir, "config.yaml")
	if _, statErr := os.Stat(configPath); statErr == nil {
		fileConfig, loadErr := LoadFromFile(configPath)
		if loadErr != nil {
			return nil, fmt.Errorf("loading config file: %w", loadErr)
		}
		config = fileConfig
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("CASEGRAPH_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Engine.Seed = n
		}
	}

	if v := os.Getenv("CASEGRAPH_INPUT_DIM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Engine.InputDim = n
		}
	}

	if v := os.Getenv("CASEGRAPH_HIDDEN_DIM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Engine.HiddenDim = n
		}
	}

	if v := os.Getenv("CASEGRAPH_NUM_LAYERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Engine.NumLayers = n
		}
	}

	if v := os.Getenv("CASEGRAPH_NUM_ATTENTION_HEADS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Engine.NumAttentionHeads = n
		}
	}

	if v := os.Getenv("CASEGRAPH_SIMILARITY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Engine.SimilarityThreshold = f
		}
	}

	if v := os.Getenv("CASEGRAPH_TOP_K_LINKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Engine.TopKLinks = n
		}
	}

	if v := os.Getenv("CASEGRAPH_LEX_DIR"); v != "" {
		config.Inputs.LexDir = v
	}

	if v := os.Getenv("CASEGRAPH_SIM_FILE"); v != "" {
		config.Inputs.SimFile = v
	}

	if v := os.Getenv("CASEGRAPH_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
