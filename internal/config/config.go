package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "formwork.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"
)

// Config represents the complete formwork.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Server contains HTTP server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Uploads contains file upload configuration.
	Uploads UploadsConfig `json:"uploads,omitempty"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// ReadTimeout is the WebSocket read deadline (e.g., "60s").
	ReadTimeout string `json:"readTimeout,omitempty"`

	// WriteTimeout is the WebSocket write deadline (e.g., "10s").
	WriteTimeout string `json:"writeTimeout,omitempty"`

	// PingInterval is the heartbeat interval (e.g., "30s").
	PingInterval string `json:"pingInterval,omitempty"`

	// AllowAllOrigins disables origin checking on the WebSocket
	// handshake. Never enable in production.
	AllowAllOrigins bool `json:"allowAllOrigins,omitempty"`
}

// UploadsConfig contains file upload settings.
type UploadsConfig struct {
	// Dir is the directory for staged uploads. Empty disables uploads.
	Dir string `json:"dir,omitempty"`

	// MaxSizeBytes limits the size of a single upload.
	MaxSizeBytes int64 `json:"maxSizeBytes,omitempty"`

	// S3Bucket, if set, stages uploads in S3 instead of on disk.
	S3Bucket string `json:"s3Bucket,omitempty"`

	// S3Prefix is the key prefix for staged S3 objects.
	S3Prefix string `json:"s3Prefix,omitempty"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled mounts the /metrics endpoint.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace is the metrics namespace (default: "formwork").
	Namespace string `json:"namespace,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// New returns a Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         DefaultPort,
			Host:         DefaultHost,
			ReadTimeout:  "60s",
			WriteTimeout: "10s",
			PingInterval: "30s",
		},
		Uploads: UploadsConfig{
			MaxSizeBytes: 10 << 20,
		},
		Metrics: MetricsConfig{
			Namespace: "formwork",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for formwork.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
// A missing file is not an error; defaults are returned.
func LoadFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Address returns the host:port listen address.
func (c *Config) Address() string {
	host := c.Server.Host
	if host == "" {
		host = DefaultHost
	}
	port := c.Server.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// ReadTimeout parses the configured read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, 60*time.Second)
}

// WriteTimeout parses the configured write timeout.
func (c *Config) WriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, 10*time.Second)
}

// PingInterval parses the configured heartbeat interval.
func (c *Config) PingInterval() time.Duration {
	return parseDuration(c.Server.PingInterval, 30*time.Second)
}

// CheckOrigin returns the WebSocket origin check, or nil for the
// default same-origin check.
func (c *Config) CheckOrigin() func(*http.Request) bool {
	if c.Server.AllowAllOrigins {
		return func(*http.Request) bool { return true }
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Server.Port)
	}
	if c.Uploads.MaxSizeBytes < 0 {
		return fmt.Errorf("config: invalid uploads.maxSizeBytes %d", c.Uploads.MaxSizeBytes)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: invalid log format %q", c.Log.Format)
	}
	return nil
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Uploads.MaxSizeBytes == 0 {
		c.Uploads.MaxSizeBytes = 10 << 20
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "formwork"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
