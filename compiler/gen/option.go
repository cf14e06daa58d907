package gen

import (
	"errors"
	"log/slog"
	"strings"
)

// Indentation defaults.
const (
	DefaultIndentSpaces = 4
	// MaxIndentSpaces bounds the indentation width.
	MaxIndentSpaces = 16
)

// Config holds the options of a generation pass. A Config is not modified
// by the generator and can be shared between passes.
type Config struct {
	// Documentation emits "# " comment lines for element documentation and
	// advisory warnings.
	Documentation bool
	// IndentSpaces is the indentation width when UseTab is false.
	IndentSpaces int
	// UseTab indents with a tab character.
	UseTab bool
	// Debug enables debug traces. It never changes the output.
	Debug bool
	// Metadata emits the project metadata block at the top of Generate output.
	Metadata bool
	// Logger receives debug traces and warnings.
	Logger *slog.Logger
}

// Indent returns the indentation unit.
func (c *Config) Indent() string {
	if c.UseTab {
		return "\t"
	}
	return strings.Repeat(" ", c.IndentSpaces)
}

// Option configures code generation.
type Option func(*Config) error

// WithDocumentation toggles documentation comments.
func WithDocumentation(enabled bool) Option {
	return func(c *Config) error {
		c.Documentation = enabled
		return nil
	}
}

// WithIndentSpaces indents with n spaces.
func WithIndentSpaces(n int) Option {
	return func(c *Config) error {
		if n < 0 || n > MaxIndentSpaces {
			return NewConfigError("IndentSpaces", n, "indentation must be between 0 and 16 spaces")
		}
		c.IndentSpaces = n
		c.UseTab = false
		return nil
	}
}

// WithTabs toggles indentation with a tab character. Disabling it falls
// back to the configured number of spaces.
func WithTabs(enabled bool) Option {
	return func(c *Config) error {
		c.UseTab = enabled
		return nil
	}
}

// WithDebug toggles debug traces.
func WithDebug(enabled bool) Option {
	return func(c *Config) error {
		c.Debug = enabled
		return nil
	}
}

// WithMetadata toggles the project metadata block.
func WithMetadata(enabled bool) Option {
	return func(c *Config) error {
		c.Metadata = enabled
		return nil
	}
}

// WithLogger sets the logger used for traces and warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Documentation: true,
		IndentSpaces:  DefaultIndentSpaces,
		Metadata:      true,
		Logger:        slog.Default(),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
