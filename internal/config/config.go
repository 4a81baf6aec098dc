package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that mirror each flag
const EnvPrefix = "ETH_VANITY"

// Keys shared by flags, environment variables and Config fields
const (
	KeyRegexp      = "regexp"
	KeyQuiet       = "quiet"
	KeyColor       = "color"
	KeyStream      = "stream"
	KeyWorkers     = "workers"
	KeyVerbose     = "verbose"
	KeyLogFile     = "log-file"
	KeyMetricsAddr = "metrics-addr"
)

// Color choices
const (
	ColorAlways     = "always"
	ColorAlwaysANSI = "always_ansi"
	ColorAuto       = "auto"
	ColorNever      = "never"
)

// Errors
var (
	ErrInvalidColor   = errors.New("invalid color choice")
	ErrInvalidWorkers = errors.New("number of workers must be positive")
)

// Config holds the application configuration
type Config struct {
	Regexp      bool
	Quiet       bool
	Color       string
	Stream      bool
	Workers     int
	Verbose     bool
	LogFile     string
	MetricsAddr string // empty disables the metrics endpoint

	// Raw patterns, from positional arguments or stdin
	Patterns []string
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Color:   ColorAuto,
		Workers: runtime.NumCPU(),
	}
}

// RegisterFlags adds every configuration flag to fs
func RegisterFlags(fs *pflag.FlagSet) {
	def := NewConfig()
	fs.BoolP(KeyRegexp, "e", def.Regexp, "Use regex pattern matching")
	fs.BoolP(KeyQuiet, "q", def.Quiet, "Output only the resulting address and private key separated by a space")
	fs.StringP(KeyColor, "c", def.Color, "Color formatting strategy: always, always_ansi, auto or never")
	fs.BoolP(KeyStream, "s", def.Stream, "Keep outputting results until terminated")
	fs.IntP(KeyWorkers, "w", def.Workers, "Number of worker goroutines")
	fs.BoolP(KeyVerbose, "v", def.Verbose, "Verbose diagnostic logging")
	fs.StringP(KeyLogFile, "l", def.LogFile, "Write diagnostic logs to this file as JSON lines")
	fs.String(KeyMetricsAddr, def.MetricsAddr, "Serve Prometheus metrics on this address (e.g. :9100)")
}

// NewViper returns a viper instance reading fs and ETH_VANITY_* variables
func NewViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}
	return v, nil
}

// Load builds a validated Config from v. Patterns come from args when any
// are given, otherwise one per line from stdin.
func Load(v *viper.Viper, args []string, stdin io.Reader) (*Config, error) {
	def := NewConfig()
	v.SetDefault(KeyColor, def.Color)
	v.SetDefault(KeyWorkers, def.Workers)

	cfg := &Config{
		Regexp:      v.GetBool(KeyRegexp),
		Quiet:       v.GetBool(KeyQuiet),
		Color:       v.GetString(KeyColor),
		Stream:      v.GetBool(KeyStream),
		Workers:     v.GetInt(KeyWorkers),
		Verbose:     v.GetBool(KeyVerbose),
		LogFile:     v.GetString(KeyLogFile),
		MetricsAddr: v.GetString(KeyMetricsAddr),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	patterns, err := ReadPatterns(args, stdin)
	if err != nil {
		return nil, err
	}
	cfg.Patterns = patterns

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAlways, ColorAlwaysANSI, ColorAuto, ColorNever:
	default:
		return fmt.Errorf("%w %q", ErrInvalidColor, c.Color)
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	return nil
}

// ReadPatterns returns args if non-empty, otherwise the non-blank lines of r
func ReadPatterns(args []string, r io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if r == nil {
		return nil, nil
	}

	var patterns []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading patterns: %w", err)
	}
	return patterns, nil
}

// GetTargetDescription returns a human-readable description of the target
func (c *Config) GetTargetDescription() string {
	mode := "prefix"
	if c.Regexp {
		mode = "regex"
	}
	noun := "patterns"
	if len(c.Patterns) == 1 {
		noun = "pattern"
	}
	return fmt.Sprintf("%d %s %s", len(c.Patterns), mode, noun)
}
