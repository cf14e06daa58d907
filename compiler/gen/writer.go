package gen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// codeWriter accumulates indented lines for one declaration block.
type codeWriter struct {
	indent string
	depth  int
	lines  []string
}

func newCodeWriter(indent string) *codeWriter {
	return &codeWriter{indent: indent}
}

// writeLine appends a line at the current indentation. Empty lines carry no
// indentation.
func (w *codeWriter) writeLine(s string) {
	if s == "" {
		w.lines = append(w.lines, "")
		return
	}
	w.lines = append(w.lines, strings.Repeat(w.indent, w.depth)+s)
}

func (w *codeWriter) in() { w.depth++ }

func (w *codeWriter) out() {
	if w.depth > 0 {
		w.depth--
	}
}

// String joins the accumulated lines without a trailing newline.
func (w *codeWriter) String() string {
	return strings.Join(w.lines, "\n")
}

// Writer persists a rendered schema.
type Writer interface {
	Write(ctx context.Context, path, schema string) error
}

// The WriteFunc type is an adapter to allow the use of ordinary
// functions as Writer.
type WriteFunc func(ctx context.Context, path, schema string) error

// Write calls f(ctx, path, schema).
func (f WriteFunc) Write(ctx context.Context, path, schema string) error {
	return f(ctx, path, schema)
}

// Hook wraps a Writer. Hooks can transform the schema before it is written
// or act on the written file afterwards.
type Hook func(next Writer) Writer

// Chain applies hooks to w. The first hook is the outermost one.
func Chain(w Writer, hooks ...Hook) Writer {
	for i := len(hooks) - 1; i >= 0; i-- {
		w = hooks[i](w)
	}
	return w
}

// FileWriter writes schemas to disk. The file is written to a temporary
// sibling and renamed into place, so a failed write never leaves a partial
// file behind.
type FileWriter struct {
	// Perm is the permission of created files. Zero means 0o644.
	Perm os.FileMode
}

// Write implements Writer.
func (w FileWriter) Write(ctx context.Context, path, schema string) error {
	if err := ctx.Err(); err != nil {
		return NewGenerationError("write", path, "canceled", err)
	}
	perm := w.Perm
	if perm == 0 {
		perm = 0o644
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return NewGenerationError("write", path, "create directory", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return NewGenerationError("write", path, "create temporary file", err)
	}
	tmpName := tmp.Name()
	fail := func(msg string, err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return NewGenerationError("write", path, msg, err)
	}
	if _, err := tmp.WriteString(schema); err != nil {
		return fail("write temporary file", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fail("set permissions", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return NewGenerationError("write", path, "close temporary file", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return NewGenerationError("write", path, "rename into place", err)
	}
	return nil
}
