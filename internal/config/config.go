package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonx/internal/decoder"
	"github.com/mcncl/jsonx/internal/session"
)

// Config represents the complete configuration for jsonx
type Config struct {
	Decode DecodeConfig `yaml:"decode"`
	Write  WriteConfig  `yaml:"write"`
	Output OutputConfig `yaml:"output"`
	Dev    DevConfig    `yaml:"dev"`
}

// DecodeConfig controls how normalized JSON is decoded
type DecodeConfig struct {
	Associative         bool `yaml:"associative"`
	MaxDepth            int  `yaml:"max_depth"`
	UseNumber           bool `yaml:"use_number"`
	RejectDuplicateKeys bool `yaml:"reject_duplicate_keys"`
}

// WriteConfig controls how translated files are written
type WriteConfig struct {
	Overwrite bool   `yaml:"overwrite"`
	Extension string `yaml:"extension"`
}

// OutputConfig controls cosmetic output rendering
type OutputConfig struct {
	Pretty  bool   `yaml:"pretty"`
	Compact bool   `yaml:"compact"`
	Indent  string `yaml:"indent"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Decode: DecodeConfig{
			Associative: true,
			MaxDepth:    decoder.DefaultMaxDepth,
		},
		Write: WriteConfig{
			Overwrite: false,
			Extension: session.DefaultExtension,
		},
		Output: OutputConfig{
			Indent: "  ",
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Decode.MaxDepth < 1 {
		cfg.Decode.MaxDepth = 1
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonx.yml", ".jsonx.yaml", "jsonx.yml", "jsonx.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Flags converts the decode section's flag booleans into a decoder bitset
func (c *Config) Flags() decoder.Flags {
	var flags decoder.Flags
	if c.Decode.UseNumber {
		flags |= decoder.FlagUseNumber
	}
	if c.Decode.RejectDuplicateKeys {
		flags |= decoder.FlagRejectDuplicateKeys
	}
	return flags
}

// ApplyToSession copies the decode and write settings onto a session
func (c *Config) ApplyToSession(s *session.Session) *session.Session {
	return s.
		Associative(c.Decode.Associative).
		MaxDepth(c.Decode.MaxDepth).
		Flags(c.Flags()).
		Overwrite(c.Write.Overwrite).
		Extension(c.Write.Extension)
}
