package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/snapshot"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "vtree.json"

	// YAMLConfigFileName is the name of the YAML configuration file.
	YAMLConfigFileName = "vtree.yaml"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultNamespace is the default metrics namespace and tracer name.
	DefaultNamespace = "vtree"
)

// Environment variables that override the file.
const (
	EnvPort     = "VTREE_PORT"
	EnvStrategy = "VTREE_STRATEGY"
)

// Config represents the complete vtree configuration.
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	Render   RenderConfig   `json:"render" yaml:"render"`
	Log      LogConfig      `json:"log" yaml:"log"`
	Metrics  MetricsConfig  `json:"metrics" yaml:"metrics"`
	Tracing  TracingConfig  `json:"tracing" yaml:"tracing"`
	Snapshot SnapshotConfig `json:"snapshot" yaml:"snapshot"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host  string `json:"host,omitempty" yaml:"host,omitempty"`
	Port  int    `json:"port,omitempty" yaml:"port,omitempty"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// RenderConfig contains reconciliation settings.
type RenderConfig struct {
	// Strategy is "positional" or "keyed".
	Strategy string `json:"strategy,omitempty" yaml:"strategy,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// SnapshotConfig selects where cycle snapshots are stored.
type SnapshotConfig struct {
	// Backend is none, dir, bolt or s3.
	Backend  string `json:"backend,omitempty" yaml:"backend,omitempty"`
	Dir      string `json:"dir,omitempty" yaml:"dir,omitempty"`
	BoltPath string `json:"boltPath,omitempty" yaml:"boltPath,omitempty"`
	Bucket   string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region   string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:  DefaultHost,
			Port:  DefaultPort,
			Title: "vtree",
		},
		Render: RenderConfig{
			Strategy: reconcile.Positional.String(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultNamespace,
		},
		Snapshot: SnapshotConfig{
			Backend: snapshot.BackendNone,
		},
	}
}

// Load reads configuration from dir. It prefers vtree.json, falls back to
// vtree.yaml and then applies environment overrides.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		if yamlPath := filepath.Join(dir, YAMLConfigFileName); fileExists(yamlPath) {
			path = yamlPath
		}
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads configuration from path. Files ending in .yaml or .yml
// are parsed as YAML, anything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("VT021").
				WithDetail("No " + ConfigFileName + " or " + YAMLConfigFileName + " found in " + filepath.Dir(path))
		}
		return nil, errors.New("VT020").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("VT020").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// ApplyEnv applies VTREE_PORT and VTREE_STRATEGY from lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("VT020").WithDetail(EnvPort + " must be a number, got " + strconv.Quote(v))
		}
		c.Server.Port = port
	}
	if v, ok := lookup(EnvStrategy); ok && v != "" {
		c.Render.Strategy = v
	}
	return nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path, as YAML when the extension
// says so.
func (c *Config) SaveTo(path string) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("VT020").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("VT020").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Render.Strategy == "" {
		c.Render.Strategy = reconcile.Positional.String()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultNamespace
	}
	if c.Snapshot.Backend == "" {
		c.Snapshot.Backend = snapshot.BackendNone
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("VT020").WithDetail("Port must be between 0 and 65535")
	}
	if _, err := c.Strategy(); err != nil {
		return errors.New("VT020").WithDetail("render.strategy must be positional or keyed").Wrap(err)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return errors.New("VT020").WithDetail("log.level must be debug, info, warn or error").Wrap(err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("VT020").WithDetail("log.format must be text or json, got " + strconv.Quote(c.Log.Format))
	}

	s := c.Snapshot
	switch s.Backend {
	case snapshot.BackendNone:
	case snapshot.BackendDir:
		if s.Dir == "" {
			return errors.New("VT020").WithDetail("snapshot.dir is required for the dir backend")
		}
	case snapshot.BackendBolt:
		if s.BoltPath == "" {
			return errors.New("VT020").WithDetail("snapshot.boltPath is required for the bolt backend")
		}
	case snapshot.BackendS3:
		if s.Bucket == "" || s.Region == "" {
			return errors.New("VT020").WithDetail("snapshot.bucket and snapshot.region are required for the s3 backend")
		}
	default:
		return errors.New("VT020").WithDetail("snapshot.backend must be none, dir, bolt or s3, got " + strconv.Quote(s.Backend))
	}
	return nil
}

// Address returns the host:port address for the server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// Strategy returns the parsed render strategy.
func (c *Config) Strategy() (reconcile.Strategy, error) {
	return reconcile.ParseStrategy(c.Render.Strategy)
}

// LogLevel returns the slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// SnapshotOptions converts the snapshot section for snapshot.Open.
func (c *Config) SnapshotOptions() snapshot.Config {
	s := c.Snapshot
	return snapshot.Config{
		Backend:  s.Backend,
		Dir:      s.Dir,
		BoltPath: s.BoltPath,
		Bucket:   s.Bucket,
		Prefix:   s.Prefix,
		Region:   s.Region,
		Endpoint: s.Endpoint,
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: %w", err)
	}
	return level, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	return fileExists(filepath.Join(dir, ConfigFileName)) || fileExists(filepath.Join(dir, YAMLConfigFileName))
}
