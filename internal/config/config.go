package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DatasetConfig locates the dataset file on disk.
type DatasetConfig struct {
	Path string `yaml:"path"`
}

// GeneratorConfig controls mock dataset synthesis. The protocol label set and
// address pool sizes live here rather than in the generator so that repeated
// runs stay analyzable without code changes.
type GeneratorConfig struct {
	Count          int      `yaml:"count"`
	Seed           int64    `yaml:"seed"`
	Protocols      []string `yaml:"protocols"`
	InternalHosts  int      `yaml:"internal_hosts"`
	ExternalHosts  int      `yaml:"external_hosts"`
	BaseTime       string   `yaml:"base_time"`
	MaxStepSeconds int      `yaml:"max_step_seconds"`
}

// APIConfig holds the query service settings.
type APIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	TopN       int    `yaml:"top_n"`
	MaxRows    int    `yaml:"max_rows"`
}

// ViewerConfig holds the interactive viewer settings.
type ViewerConfig struct {
	TopN    int `yaml:"top_n"`
	MaxRows int `yaml:"max_rows"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset"`
	Generator GeneratorConfig `yaml:"generator"`
	API       APIConfig       `yaml:"api"`
	Viewer    ViewerConfig    `yaml:"viewer"`
}

// DefaultProtocols is the protocol label set used when the config names none.
var DefaultProtocols = []string{"TCP", "UDP", "ICMP", "HTTP", "DNS", "FTP", "SSH", "HTTPS"}

// LoadConfig reads the configuration from a YAML file and returns a Config
// struct with defaults applied to any unset field.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Dataset.Path == "" {
		c.Dataset.Path = "mock_traffic.csv"
	}
	if c.Generator.Count <= 0 {
		c.Generator.Count = 500
	}
	if c.Generator.Seed == 0 {
		c.Generator.Seed = 1
	}
	if len(c.Generator.Protocols) == 0 {
		c.Generator.Protocols = DefaultProtocols
	}
	if c.Generator.InternalHosts <= 0 {
		c.Generator.InternalHosts = 12
	}
	if c.Generator.ExternalHosts <= 0 {
		c.Generator.ExternalHosts = 8
	}
	if c.Generator.BaseTime == "" {
		c.Generator.BaseTime = "2024-03-01 00:00:00"
	}
	if c.Generator.MaxStepSeconds <= 0 {
		c.Generator.MaxStepSeconds = 30
	}
	if c.API.ListenAddr == "" {
		c.API.ListenAddr = ":5000"
	}
	if c.API.TopN <= 0 {
		c.API.TopN = 5
	}
	if c.API.MaxRows <= 0 {
		c.API.MaxRows = 200
	}
	if c.Viewer.TopN <= 0 {
		c.Viewer.TopN = 5
	}
	if c.Viewer.MaxRows <= 0 {
		c.Viewer.MaxRows = 200
	}
}
