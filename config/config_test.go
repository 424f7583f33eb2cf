package config

import (
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	c, err := Parse(strings.NewReader("store:\n  basedir: /tmp/store\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Store.BaseDir != "/tmp/store" {
		t.Fatalf("basedir = %q", c.Store.BaseDir)
	}
	if c.Log.Level != "info" {
		t.Fatalf("default log level = %q, want info", c.Log.Level)
	}
}

func TestParseRejectsEmptyBaseDir(t *testing.T) {
	if _, err := Parse(strings.NewReader("store:\n  basedir: \"\"\n")); err == nil {
		t.Fatal("expected an error for an empty basedir")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("HASHSTORE_LOG_LEVEL", "debug")
	c, err := Parse(strings.NewReader("store:\n  basedir: /tmp/store\nlog:\n  level: info\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Log.Level != "debug" {
		t.Fatalf("log level = %q, want debug (env override)", c.Log.Level)
	}
}

func TestEnvOverrideNestedField(t *testing.T) {
	t.Setenv("HASHSTORE_STORE_BASEDIR", "/var/lib/hashstore")
	c, err := Parse(strings.NewReader("store:\n  basedir: /tmp/store\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Store.BaseDir != "/var/lib/hashstore" {
		t.Fatalf("basedir = %q, want env override", c.Store.BaseDir)
	}
}

func TestLogrusBuildsConfiguredLogger(t *testing.T) {
	c := &Configuration{Log: Log{Level: "warn", Formatter: "json"}}
	l, err := c.Logrus()
	if err != nil {
		t.Fatalf("logrus: %v", err)
	}
	if l.GetLevel().String() != "warning" {
		t.Fatalf("level = %v, want warning", l.GetLevel())
	}
}
