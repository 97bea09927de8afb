package logging

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoggerConfig holds logger configuration for a lexigraph process. The CLI
// subcommands log through one Logger built from a LoggerConfig (see NewCLI)
// rather than the zap package directly.
type LoggerConfig struct {
	DefaultLevel     string         `json:"defaultLevel" yaml:"defaultLevel"`
	Service          string         `json:"service" yaml:"service"`
	Component        string         `json:"component,omitempty" yaml:"component,omitempty"`
	Environment      string         `json:"environment" yaml:"environment"`
	Sinks            []SinkConfig   `json:"sinks" yaml:"sinks"`
	StaticFields     map[string]any `json:"staticFields,omitempty" yaml:"staticFields,omitempty"`
	EnableCaller     bool           `json:"enableCaller" yaml:"enableCaller"`
	EnableStacktrace bool           `json:"enableStacktrace" yaml:"enableStacktrace"`
}

// SinkConfig defines an output sink.
type SinkConfig struct {
	Type    string             `json:"type" yaml:"type"` // console, file
	Level   string             `json:"level,omitempty" yaml:"level,omitempty"`
	Format  string             `json:"format" yaml:"format"` // json, console
	Console *ConsoleSinkConfig `json:"console,omitempty" yaml:"console,omitempty"`
	File    *FileSinkConfig    `json:"file,omitempty" yaml:"file,omitempty"`
}

// ConsoleSinkConfig configures console output. Stream is always stderr:
// stdout is reserved for query/search/index/learn command output.
type ConsoleSinkConfig struct {
	Stream   string `json:"stream" yaml:"stream"`
	Colorize bool   `json:"colorize" yaml:"colorize"`
}

// FileSinkConfig configures rotated file output via lumberjack.
type FileSinkConfig struct {
	Path       string `json:"path" yaml:"path"`
	MaxSize    int    `json:"maxSize" yaml:"maxSize"` // MB
	MaxAge     int    `json:"maxAge" yaml:"maxAge"`   // days
	MaxBackups int    `json:"maxBackups" yaml:"maxBackups"`
	Compress   bool   `json:"compress" yaml:"compress"`
}

// LoadConfig loads logger configuration from a YAML or JSON file.
func LoadConfig(path string) (*LoggerConfig, error) {
	// #nosec G304 -- user-controlled path, by design
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var jsonData []byte
	if isYAML(path) {
		var yamlContent any
		if err := yaml.Unmarshal(data, &yamlContent); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		jsonData, err = json.Marshal(yamlContent)
		if err != nil {
			return nil, fmt.Errorf("failed to convert YAML to JSON: %w", err)
		}
	} else {
		jsonData = data
	}

	var config LoggerConfig
	if err := json.Unmarshal(jsonData, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&config)
	if err := validateConsoleSinks(config.Sinks); err != nil {
		return nil, fmt.Errorf("sink validation failed: %w", err)
	}
	return &config, nil
}

func applyDefaults(config *LoggerConfig) {
	if config.DefaultLevel == "" {
		config.DefaultLevel = "INFO"
	}
	if config.Environment == "" {
		config.Environment = "development"
	}
	if config.StaticFields == nil {
		config.StaticFields = make(map[string]any)
	}
	if len(config.Sinks) == 0 {
		config.Sinks = []SinkConfig{{
			Type:    "console",
			Format:  "console",
			Console: &ConsoleSinkConfig{Stream: "stderr"},
		}}
	}
	for i := range config.Sinks {
		sink := &config.Sinks[i]
		if sink.Format == "" {
			sink.Format = "json"
		}
		if sink.Type == "console" && sink.Console == nil {
			sink.Console = &ConsoleSinkConfig{Stream: "stderr"}
		}
	}
}

func validateConsoleSinks(sinks []SinkConfig) error {
	for _, sink := range sinks {
		if sink.Type == "console" && sink.Console != nil && sink.Console.Stream != "" && sink.Console.Stream != "stderr" {
			return fmt.Errorf("console sink must use stderr (stdout is reserved for command output), got: %s", sink.Console.Stream)
		}
	}
	return nil
}

func isYAML(path string) bool {
	return len(path) > 5 && (path[len(path)-5:] == ".yaml" || path[len(path)-4:] == ".yml")
}

// DefaultConfig returns a default logger configuration for a CLI service.
func DefaultConfig(service string) *LoggerConfig {
	return &LoggerConfig{
		DefaultLevel: "INFO",
		Service:      service,
		Environment:  "development",
		Sinks: []SinkConfig{{
			Type:    "console",
			Format:  "console",
			Console: &ConsoleSinkConfig{Stream: "stderr"},
		}},
		StaticFields: make(map[string]any),
	}
}
