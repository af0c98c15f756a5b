// Package config loads howtotype settings from a file and the environment.
//
// Precedence, lowest first: defaults, config file, environment, command-line
// flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/japaniel/howtotype/pkg/cangjie"
	"github.com/japaniel/howtotype/pkg/howtotype"
)

// Format is an output format of the CLI.
type Format string

const (
	FormatCode    Format = "code"
	FormatRadical Format = "radical"
	FormatJSON    Format = "json"
)

// ParseFormat accepts a format name or its one-letter alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "code", "c":
		return FormatCode, nil
	case "radical", "r":
		return FormatRadical, nil
	case "json", "j":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (want code, radical or json)", s)
}

// Config holds the settings shared by the config file and the CLI.
type Config struct {
	// Database is the path of libcangjie's table.
	Database string `toml:"database" yaml:"database" json:"database"`
	// Version is the Cangjie version discriminator, 3 or 5.
	Version int `toml:"version" yaml:"version" json:"version"`
	// Format is code, radical or json (or c, r, j).
	Format string `toml:"format" yaml:"format" json:"format"`
	// Separator is printed between codes.
	Separator string `toml:"separator" yaml:"separator" json:"separator"`
	// Normalize applies NFC to the queried character.
	Normalize bool `toml:"normalize" yaml:"normalize" json:"normalize"`
	// Verbose logs engine activity to stderr.
	Verbose bool `toml:"verbose" yaml:"verbose" json:"verbose"`
}

// Environment variables read by ApplyEnv.
const (
	EnvDatabase = "HOWTOTYPE_DB"
	EnvVersion  = "HOWTOTYPE_VERSION"
	EnvFormat   = "HOWTOTYPE_FORMAT"
)

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Database:  howtotype.DefaultPath,
		Version:   3,
		Format:    string(FormatRadical),
		Separator: "\n",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/howtotype/config.toml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "howtotype", "config.toml")
}

// ApplyEnv overrides fields from the environment. An unparsable
// HOWTOTYPE_VERSION is an error; other values are checked by Validate.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Database = v
	}
	if v := os.Getenv(EnvVersion); v != "" {
		ver, err := cangjie.ParseVersion(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVersion, err)
		}
		c.Version, _ = ver.Discriminator()
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Format = v
	}
	return nil
}

// CangjieVersion returns Version as a cangjie.Version.
func (c *Config) CangjieVersion() (cangjie.Version, error) {
	return cangjie.VersionOf(c.Version)
}

// OutputFormat returns Format parsed.
func (c *Config) OutputFormat() (Format, error) {
	return ParseFormat(c.Format)
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Database) == "" {
		errs = append(errs, errors.New("database must be non-empty"))
	}
	if _, err := c.CangjieVersion(); err != nil {
		errs = append(errs, fmt.Errorf("version: %w", err))
	}
	if _, err := c.OutputFormat(); err != nil {
		errs = append(errs, fmt.Errorf("format: %w", err))
	}
	return errors.Join(errs...)
}
