package config

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Configuration is hashstore's root configuration document, intended to be
// provided as a YAML file and optionally overridden by environment
// variables (see Parser).
type Configuration struct {
	// Store configures the content-addressed object store.
	Store Store `yaml:"store"`

	// Log configures the structured logger.
	Log Log `yaml:"log,omitempty"`
}

// Store configures where object and log data live on disk.
type Store struct {
	// BaseDir is the root directory of the two-level object tree and the
	// log head pointer.
	BaseDir string `yaml:"basedir"`
}

// Log configures the logrus-based logger shared by every package through
// internal/dlog.
type Log struct {
	// Level is the minimum severity logged ("debug", "info", "warn",
	// "error").
	Level string `yaml:"level,omitempty"`

	// Formatter selects the log line format: "text" or "json".
	Formatter string `yaml:"formatter,omitempty"`
}

// Parse reads a Configuration from rd, applying HASHSTORE_-prefixed
// environment variable overrides.
func Parse(rd io.Reader) (*Configuration, error) {
	in, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	c := &Configuration{
		Store: Store{BaseDir: "."},
		Log:   Log{Level: "info", Formatter: "text"},
	}
	if err := NewParser(EnvPrefix).Parse(in, c); err != nil {
		return nil, err
	}
	if c.Store.BaseDir == "" {
		return nil, fmt.Errorf("config: store.basedir must not be empty")
	}
	return c, nil
}

// Logrus builds a *logrus.Logger matching this Configuration's Log section.
func (c *Configuration) Logrus() (*logrus.Logger, error) {
	l := logrus.New()
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("config: invalid log level %q: %w", c.Log.Level, err)
	}
	l.SetLevel(level)
	switch c.Log.Formatter {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("config: unknown log formatter %q", c.Log.Formatter)
	}
	return l, nil
}
