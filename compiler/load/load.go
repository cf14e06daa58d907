// Package load reads UML model files into an in-memory uml.Model.
//
// StarUML project files (.mdj) and plain JSON are decoded with the same
// schema as YAML model files (.yaml, .yml). Input may carry a UTF-8 or
// UTF-16 byte order mark.
package load

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/syssam/umlgql/internal/ctxlog"
	"github.com/syssam/umlgql/uml"
)

// Format is the encoding of a model file.
type Format int

// Supported formats.
const (
	FormatJSON Format = iota
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mdj", ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads the model file at path.
func Load(ctx context.Context, path string) (*uml.Model, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	defer f.Close()

	m, err := Read(ctx, f, format)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	ctxlog.FromContext(ctx).Debug("model loaded", "path", path, "format", format.String(), "relationships", len(m.Relationships()))
	return m, nil
}

// Read decodes a model document from r.
func Read(ctx context.Context, r io.Reader, format Format) (*uml.Model, error) {
	buf, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	var root *Element
	switch format {
	case FormatJSON:
		root, err = UnmarshalElement(buf)
	case FormatYAML:
		root, err = UnmarshalElementYAML(buf)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	if root.Type == "" {
		return nil, fmt.Errorf("%w: missing root element type", ErrInvalidModel)
	}
	return Build(ctx, root), nil
}
