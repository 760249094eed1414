package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	config := Default()

	// Engine defaults
	if config.Engine.InputDim != 64 {
		t.Errorf("expected InputDim 64, got %d", config.Engine.InputDim)
	}
	if config.Engine.HiddenDim != 32 {
		t.Errorf("expected HiddenDim 32, got %d", config.Engine.HiddenDim)
	}
	if config.Engine.NumLayers != 2 {
		t.Errorf("expected NumLayers 2, got %d", config.Engine.NumLayers)
	}
	if config.Engine.SimilarityThreshold != 0.85 {
		t.Errorf("expected SimilarityThreshold 0.85, got %f", config.Engine.SimilarityThreshold)
	}
	if config.Engine.Seed != 42 {
		t.Errorf("expected Seed 42, got %d", config.Engine.Seed)
	}

	// Logging defaults
	if config.Logging.Level != "info" {
		t.Errorf("expected Logging.Level 'info', got '%s'", config.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
engine:
  input_dim: 128
  hidden_dim: 64
  num_layers: 3
  similarity_threshold: 0.9
  seed: 7

inputs:
  lex_dir: frameworks/us
  sim_file: out/simulation.json
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.Engine.InputDim != 128 {
		t.Errorf("expected InputDim 128, got %d", config.Engine.InputDim)
	}
	if config.Engine.NumLayers != 3 {
		t.Errorf("expected NumLayers 3, got %d", config.Engine.NumLayers)
	}
	if config.Engine.SimilarityThreshold != 0.9 {
		t.Errorf("expected SimilarityThreshold 0.9, got %f", config.Engine.SimilarityThreshold)
	}
	if config.Engine.Seed != 7 {
		t.Errorf("expected Seed 7, got %d", config.Engine.Seed)
	}
	if config.Inputs.LexDir != "frameworks/us" {
		t.Errorf("expected LexDir 'frameworks/us', got '%s'", config.Inputs.LexDir)
	}
	if config.Inputs.SimFile != "out/simulation.json" {
		t.Errorf("expected SimFile 'out/simulation.json', got '%s'", config.Inputs.SimFile)
	}

	// Unset fields keep their defaults.
	if config.Engine.TopKLinks != 10 {
		t.Errorf("expected default TopKLinks 10, got %d", config.Engine.TopKLinks)
	}
}

func TestLoadFromFile_ExpandsEnvVars(t *testing.T) {
	t.Setenv("CASEGRAPH_TEST_DATA", "/srv/casegraph")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	configContent := `
inputs:
  lex_dir: ${CASEGRAPH_TEST_DATA}/frameworks
  sim_file: ${CASEGRAPH_TEST_DATA}/simulation.json
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.Inputs.LexDir != "/srv/casegraph/frameworks" {
		t.Errorf("expected expanded LexDir, got '%s'", config.Inputs.LexDir)
	}
	if config.Inputs.SimFile != "/srv/casegraph/simulation.json" {
		t.Errorf("expected expanded SimFile, got '%s'", config.Inputs.SimFile)
	}
}

func TestLoad_FromProjectRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, Dir), 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "engine:\n  seed: 99\n"
	if err := os.WriteFile(filepath.Join(root, Dir, "config.yaml"), []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.Engine.Seed != 99 {
		t.Errorf("expected Seed 99, got %d", config.Engine.Seed)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	config, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.Engine.Seed != 42 {
		t.Errorf("expected default Seed 42, got %d", config.Engine.Seed)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CASEGRAPH_SEED", "1234")
	t.Setenv("CASEGRAPH_INPUT_DIM", "256")
	t.Setenv("CASEGRAPH_SIMILARITY_THRESHOLD", "0.7")
	t.Setenv("CASEGRAPH_TOP_K_LINKS", "25")

	config := Default()
	applyEnvOverrides(config)

	if config.Engine.Seed != 1234 {
		t.Errorf("expected Seed 1234, got %d", config.Engine.Seed)
	}
	if config.Engine.InputDim != 256 {
		t.Errorf("expected InputDim 256, got %d", config.Engine.InputDim)
	}
	if config.Engine.SimilarityThreshold != 0.7 {
		t.Errorf("expected SimilarityThreshold 0.7, got %f", config.Engine.SimilarityThreshold)
	}
	if config.Engine.TopKLinks != 25 {
		t.Errorf("expected TopKLinks 25, got %d", config.Engine.TopKLinks)
	}
}

func TestEnvOverrides_Malformed(t *testing.T) {
	t.Setenv("CASEGRAPH_SEED", "not-a-number")

	config := Default()
	applyEnvOverrides(config)

	if config.Engine.Seed != 42 {
		t.Errorf("malformed override must keep default, got %d", config.Engine.Seed)
	}
}

func TestEnvOverrides_LogLevel(t *testing.T) {
	t.Setenv("CASEGRAPH_LOG_LEVEL", "debug")

	config := Default()
	applyEnvOverrides(config)

	if config.Logging.Level != "debug" {
		t.Errorf("expected Logging.Level 'debug', got '%s'", config.Logging.Level)
	}
}

func TestValidate_Valid(t *testing.T) {
	config := Default()
	if err := config.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestValidate_InvalidEngine(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero input dim", func(c *Config) { c.Engine.InputDim = 0 }},
		{"negative layers", func(c *Config) { c.Engine.NumLayers = -1 }},
		{"threshold above 1", func(c *Config) { c.Engine.SimilarityThreshold = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.mutate(config)
			if err := config.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	config := Default()
	config.Logging.Level = "verbose"
	if err := config.Validate(); err == nil {
		t.Error("expected validation error for invalid log level")
	}
}

func TestValidate_ValidLogLevels(t *testing.T) {
	validLevels := []string{"", "info", "debug", "trace"}

	for _, level := range validLevels {
		t.Run(level, func(t *testing.T) {
			config := Default()
			config.Logging.Level = level
			if err := config.Validate(); err != nil {
				t.Errorf("expected log level '%s' to be valid, got error: %v", level, err)
			}
		})
	}
}

func TestLoadFromFile_NotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	invalidYAML := `
engine:
  seed: [invalid yaml
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := LoadFromFile(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}
