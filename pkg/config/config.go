// Package config provides configuration loading for gff2sbol.
//
// Settings are layered: built-in defaults, then a gff2sbol.yaml file, then
// GFF2SBOL_* environment variables, then command line flags bound by the
// caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/coolbeans/gff2sbol/pkg/convert"
	"github.com/coolbeans/gff2sbol/pkg/sbol"
)

const (
	// FileName is the config file looked up in the working directory.
	FileName = "gff2sbol.yaml"

	// EnvPrefix prefixes environment overrides, e.g. GFF2SBOL_CONTIG.
	EnvPrefix = "GFF2SBOL"
)

// Config is the complete gff2sbol configuration.
type Config struct {
	Namespace NamespaceConfig `yaml:"namespace" mapstructure:"namespace"`
	Contig    string          `yaml:"contig" mapstructure:"contig"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Roles     RolesConfig     `yaml:"roles" mapstructure:"roles"`
	Watch     WatchConfig     `yaml:"watch" mapstructure:"watch"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// NamespaceConfig sets the URI namespaces of generated resources.
type NamespaceConfig struct {
	// URIPrefix is prepended to every minted identity
	URIPrefix string `yaml:"uri_prefix" mapstructure:"uri_prefix"`
	// AnnotationPrefix is the namespace of GFF3 specific annotations
	AnnotationPrefix string `yaml:"annotation_prefix" mapstructure:"annotation_prefix"`
}

// OutputConfig selects the serialization.
type OutputConfig struct {
	// Format is one of rdfxml, turtle, jsonld or dot
	Format string `yaml:"format" mapstructure:"format"`
}

// RolesConfig points at extra role tables.
type RolesConfig struct {
	// Dir holds YAML role tables layered over the built-in table
	Dir string `yaml:"dir" mapstructure:"dir"`
	// Watch reloads the tables when files in Dir change
	Watch bool `yaml:"watch" mapstructure:"watch"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `yaml:"level" mapstructure:"level"`
	// Format is text or json
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultConfig returns a Config with the converter defaults.
func DefaultConfig() *Config {
	return &Config{
		Namespace: NamespaceConfig{
			URIPrefix:        convert.DefaultURIPrefix,
			AnnotationPrefix: convert.DefaultAnnotationPrefix,
		},
		Contig: convert.DefaultContig,
		Output: OutputConfig{
			Format: string(sbol.FormatRDFXML),
		},
		Watch: WatchConfig{
			Debounce: 250 * time.Millisecond,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Namespace.URIPrefix == "" {
		return fmt.Errorf("namespace.uri_prefix is required")
	}
	if !strings.HasSuffix(c.Namespace.URIPrefix, "/") && !strings.HasSuffix(c.Namespace.URIPrefix, "#") {
		return fmt.Errorf("namespace.uri_prefix must end with / or #: %q", c.Namespace.URIPrefix)
	}
	if c.Namespace.AnnotationPrefix == "" {
		return fmt.Errorf("namespace.annotation_prefix is required")
	}
	if strings.TrimSpace(c.Contig) == "" {
		return fmt.Errorf("contig is required")
	}
	if _, err := sbol.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce cannot be negative")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// ConvertOptions maps the configuration onto converter options. Roles and
// Logger are left for the caller.
func (c *Config) ConvertOptions() convert.Options {
	return convert.Options{
		URIPrefix:        c.Namespace.URIPrefix,
		AnnotationPrefix: c.Namespace.AnnotationPrefix,
		Contig:           c.Contig,
	}
}

// Format returns the parsed output format.
func (c *Config) Format() sbol.Format {
	format, err := sbol.ParseFormat(c.Output.Format)
	if err != nil {
		return sbol.FormatRDFXML
	}
	return format
}

// ParseLevel maps a level name onto a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// Logger builds the logger described by the configuration.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return config, nil
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SetDefaults registers every key with v so environment variables are seen
// by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("namespace.uri_prefix", d.Namespace.URIPrefix)
	v.SetDefault("namespace.annotation_prefix", d.Namespace.AnnotationPrefix)
	v.SetDefault("contig", d.Contig)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("roles.dir", d.Roles.Dir)
	v.SetDefault("roles.watch", d.Roles.Watch)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load resolves the configuration through v. path names an explicit config
// file; when empty, gff2sbol.yaml in the working directory is used if it
// exists. Flags must already be bound to v by the caller.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
