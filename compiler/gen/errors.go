package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidConfig indicates a configuration error.
	ErrInvalidConfig = errors.New("umlgql: invalid configuration")
	// ErrCyclicHierarchy indicates a containment or inheritance cycle in the model.
	ErrCyclicHierarchy = errors.New("umlgql: cyclic hierarchy detected")
	// ErrGenerationFailed indicates a generation or write failure.
	ErrGenerationFailed = errors.New("umlgql: generation failed")
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("umlgql: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("umlgql: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// HierarchyError reports a cycle found while walking the model.
type HierarchyError struct {
	// Relation is the relation that closed the cycle, e.g. "containment"
	// or "generalization".
	Relation string
	// Path lists the element names along the cycle, ending with the
	// element that was visited twice.
	Path []string
}

// Error implements the error interface.
func (e *HierarchyError) Error() string {
	var b strings.Builder
	b.WriteString("umlgql: cyclic hierarchy detected")
	if e.Relation != "" {
		b.WriteString(" in ")
		b.WriteString(e.Relation)
	}
	if len(e.Path) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Path, " -> "))
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for HierarchyError.
func (e *HierarchyError) Is(target error) bool {
	return target == ErrCyclicHierarchy
}

// NewHierarchyError creates a new HierarchyError.
func NewHierarchyError(relation string, path ...string) *HierarchyError {
	return &HierarchyError{
		Relation: relation,
		Path:     path,
	}
}

// GenerationError represents a generation or output error.
type GenerationError struct {
	Phase   string // "render", "write", "hook"
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("umlgql: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsHierarchyError reports whether the error is a HierarchyError.
func IsHierarchyError(err error) bool {
	var hierErr *HierarchyError
	return errors.As(err, &hierErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
