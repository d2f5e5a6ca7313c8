// Package config provides configuration loading for chatkeys.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is used when no --config flag is given.
	DefaultPath = "config.yaml"

	DefaultHold       = 100 * time.Millisecond
	DefaultSettle     = 20 * time.Millisecond
	DefaultLogFile    = "chatkeys.log"
	DefaultLogLevel   = "info"
	DefaultIngestAddr = "127.0.0.1:18080"

	// MaxMillis is the largest millisecond count a time.Duration can hold.
	MaxMillis = math.MaxInt64 / int64(time.Millisecond)
)

//go:embed template_config.yaml
var templateConfig []byte

var (
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("invalid configuration")

	// ErrTemplateCreated is returned by Load when the config file was
	// missing and a template was written in its place.
	ErrTemplateCreated = errors.New("config file did not exist, template written")
)

// Config represents the application configuration
type Config struct {
	// Channel is the chat channel whose messages are dispatched
	Channel string `yaml:"channel"`

	// Actions maps a chat command to the keys it presses
	Actions map[string]ActionConfig `yaml:"actions"`

	// ControlKeys are the global exit and pause keys
	ControlKeys ControlKeys `yaml:"control_keys"`

	// LogLevel is one of off, error, warn, info, debug, trace
	LogLevel string `yaml:"log_level,omitempty"`

	// LogFile receives a copy of every log line (default chatkeys.log)
	LogFile *string `yaml:"log_file,omitempty"`

	// SettleMS is the pause between a release and re-acquisition (default 20)
	SettleMS *int `yaml:"settle_ms,omitempty"`

	// DefaultHoldMS replaces missing or invalid action times (default 100)
	DefaultHoldMS *int `yaml:"default_hold_ms,omitempty"`

	// Ingest configures the local chat ingest server
	Ingest IngestConfig `yaml:"ingest"`

	// SentryDSN enables fatal error reporting when set
	SentryDSN string `yaml:"sentry_dsn,omitempty"`
}

// ActionConfig is one entry of the actions mapping.
type ActionConfig struct {
	// Key is a "+"-joined list of key names, e.g. "ControlLeft+C"
	Key string `yaml:"key"`

	// Time is the hold duration in milliseconds
	Time HoldTime `yaml:"time,omitempty"`
}

// HoldTime records what the configuration said about an action's hold time.
// Present is false when the field was omitted; Valid is false when it was
// present but not an integer.
type HoldTime struct {
	Millis  int64
	Present bool
	Valid   bool
}

// Millis returns a present, valid hold time.
func Millis(ms int64) HoldTime {
	return HoldTime{Millis: ms, Present: true, Valid: true}
}

// UnmarshalYAML accepts any scalar; non-integers are kept as invalid rather
// than failing the whole document.
func (h *HoldTime) UnmarshalYAML(node *yaml.Node) error {
	h.Present = true
	var ms int64
	if err := node.Decode(&ms); err != nil {
		h.Valid = false
		return nil
	}
	h.Millis = ms
	h.Valid = true
	return nil
}

// ControlKeys names the global control keys.
type ControlKeys struct {
	Exit  string `yaml:"exit"`
	Pause string `yaml:"pause"`
}

// IngestConfig configures where chat messages come from.
type IngestConfig struct {
	// Listen is the HTTP/WebSocket address; "off" disables the server
	Listen string `yaml:"listen,omitempty"`

	// Token is an optional bearer token required by the ingest server
	Token string `yaml:"token,omitempty"`

	// Stdin reads "sender: text" lines from standard input (default true)
	Stdin *bool `yaml:"stdin,omitempty"`
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields and tunable ranges. Key names are
// resolved later, by the action table builder and the control listener.
func (c *Config) Validate() error {
	if c.Channel == "" {
		return invalid("could not find channel to connect in config file")
	}
	if c.Actions == nil {
		return invalid("problem reading actions from config")
	}
	for name, a := range c.Actions {
		if name == "" {
			return invalid("action name must not be empty")
		}
		if a.Key == "" {
			return invalid("key in action %s not found in config", name)
		}
	}
	if c.ControlKeys.Exit == "" {
		return invalid("control_keys.exit not found in config")
	}
	if c.ControlKeys.Pause == "" {
		return invalid("control_keys.pause not found in config")
	}
	if c.SettleMS != nil && (*c.SettleMS < 0 || int64(*c.SettleMS) > MaxMillis) {
		return invalid("settle_ms must be between 0 and %d, got %d", MaxMillis, *c.SettleMS)
	}
	if c.DefaultHoldMS != nil && (*c.DefaultHoldMS <= 0 || int64(*c.DefaultHoldMS) > MaxMillis) {
		return invalid("default_hold_ms must be between 1 and %d, got %d", MaxMillis, *c.DefaultHoldMS)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Settle returns the settle delay.
func (c *Config) Settle() time.Duration {
	if c.SettleMS == nil {
		return DefaultSettle
	}
	return time.Duration(*c.SettleMS) * time.Millisecond
}

// DefaultHold returns the hold time used for actions without a valid time.
func (c *Config) DefaultHold() time.Duration {
	if c.DefaultHoldMS == nil {
		return DefaultHold
	}
	return time.Duration(*c.DefaultHoldMS) * time.Millisecond
}

// LogPath returns the log file path; empty means stderr only.
func (c *Config) LogPath() string {
	if c.LogFile == nil {
		return DefaultLogFile
	}
	return *c.LogFile
}

// IngestAddr returns the ingest listen address, or "" when disabled.
func (c *Config) IngestAddr() string {
	switch c.Ingest.Listen {
	case "":
		return DefaultIngestAddr
	case "off", "none", "false":
		return ""
	default:
		return c.Ingest.Listen
	}
}

// ReadStdin reports whether chat lines are read from standard input.
func (c *Config) ReadStdin() bool {
	return c.Ingest.Stdin == nil || *c.Ingest.Stdin
}

// Manager handles loading configuration from disk
type Manager struct {
	configPath string
}

// NewManager creates a configuration manager for path.
func NewManager(path string) *Manager {
	if path == "" {
		path = DefaultPath
	}
	return &Manager{configPath: path}
}

// Path returns the configuration file path.
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads and validates the configuration. A missing file is replaced by
// the template and ErrTemplateCreated is returned.
func (m *Manager) Load() (*Config, error) {
	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		if werr := os.WriteFile(m.configPath, templateConfig, 0644); werr != nil {
			return nil, fmt.Errorf("could not write template config: %w", werr)
		}
		return nil, ErrTemplateCreated
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", m.configPath, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Template returns the template written for a missing config file.
func Template() []byte {
	out := make([]byte, len(templateConfig))
	copy(out, templateConfig)
	return out
}
