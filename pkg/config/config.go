// Package config loads graphstats run settings from YAML, the environment,
// and command-line flags, in increasing order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-graphstats/pkg/edgelist"
	"gopkg.in/yaml.v3"
)

// Defaults target the Facebook page-page graph from the MUSAE dataset.
const (
	DefaultInput  = "facebook_large/musae_facebook_edges.csv"
	DefaultReport = "degree_distribution.csv"
	DefaultTable  = "degree_distribution"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvInput    = "GRAPHSTATS_INPUT"
	EnvReport   = "GRAPHSTATS_REPORT"
	EnvWorkers  = "GRAPHSTATS_WORKERS"
	EnvLogLevel = "LOG_LEVEL"
)

// Config is the full set of run settings.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Report   ReportConfig   `yaml:"report"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Log      LogConfig      `yaml:"log"`
}

// InputConfig selects the edge list and how it is read.
type InputConfig struct {
	Path        string `yaml:"path" validate:"required"`
	Mmap        bool   `yaml:"mmap"`
	Compression string `yaml:"compression" validate:"omitempty,oneof=auto none snappy"`
}

// OpenOptions converts the input settings for edgelist.Open.
func (c InputConfig) OpenOptions() edgelist.OpenOptions {
	compression := edgelist.Compression(c.Compression)
	if compression == "" {
		compression = edgelist.CompressionAuto
	}
	return edgelist.OpenOptions{Mmap: c.Mmap, Compression: compression}
}

// AnalysisConfig tunes the statistics queries.
type AnalysisConfig struct {
	Workers int `yaml:"workers" validate:"min=1,max=256"`
}

// ReportConfig lists the report sinks. The file sink is always written.
type ReportConfig struct {
	Path     string         `yaml:"path" validate:"required"`
	Styled   bool           `yaml:"styled"`
	S3       S3Config       `yaml:"s3"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// S3Config enables the S3 sink when Bucket is set.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint" validate:"omitempty,url"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UsePathStyle    bool   `yaml:"use_path_style"`
}

// Enabled reports whether the S3 sink should run.
func (c S3Config) Enabled() bool { return c.Bucket != "" }

// PostgresConfig enables the Postgres sink when DSN is set.
type PostgresConfig struct {
	DSN   string `yaml:"dsn"`
	Table string `yaml:"table"`
}

// Enabled reports whether the Postgres sink should run.
func (c PostgresConfig) Enabled() bool { return c.DSN != "" }

// MetricsConfig controls the Prometheus textfile dump.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Input: InputConfig{
			Path:        DefaultInput,
			Compression: "auto",
		},
		Analysis: AnalysisConfig{Workers: 1},
		Report: ReportConfig{
			Path:   DefaultReport,
			Styled: true,
			Postgres: PostgresConfig{
				Table: DefaultTable,
			},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Load reads a YAML file. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvInput); v != "" {
		c.Input.Path = v
	}
	if v := getenv(EnvReport); v != "" {
		c.Report.Path = v
	}
	if v := strings.TrimSpace(getenv(EnvWorkers)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		c.Analysis.Workers = n
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = strings.TrimSpace(v)
	}
	return nil
}
