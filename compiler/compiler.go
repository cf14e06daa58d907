// Package compiler runs generation passes over model files: it loads a
// model, selects the element to generate from, renders it and hands the
// result to the output writer through the configured hooks.
//
// Usage:
//
//	cfg, err := gen.NewConfig(gen.WithIndentSpaces(2))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := compiler.Generate(ctx, "./shop.mdj", cfg,
//	    compiler.Output("./graph/schema.graphql"),
//	    compiler.Element("Model::Domain"),
//	)
package compiler

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/syssam/umlgql/compiler/gen"
	"github.com/syssam/umlgql/compiler/load"
	"github.com/syssam/umlgql/internal/ctxlog"
	"github.com/syssam/umlgql/uml"
)

// SchemaExt is the extension of generated schema files.
const SchemaExt = ".graphql"

// Extension bundles hooks and options contributed by an integration.
type Extension interface {
	// Hooks wrap the output writer.
	Hooks() []gen.Hook
	// Options returns additional run options.
	Options() []Option
}

// DefaultExtension is an Extension without hooks or options. Embed it to
// implement only part of the interface.
type DefaultExtension struct{}

// Hooks implements Extension.
func (DefaultExtension) Hooks() []gen.Hook { return nil }

// Options implements Extension.
func (DefaultExtension) Options() []Option { return nil }

var _ Extension = DefaultExtension{}

// Settings are the per-run settings built from Options.
type Settings struct {
	// Output is a file or directory path. Empty writes to Stdout.
	Output string
	// Element is the qualified path of the element to generate from.
	// Empty selects the model root.
	Element string
	// Stdout receives the schema when Output is empty.
	Stdout io.Writer
	// Writer persists schemas written to Output.
	Writer gen.Writer
	// Hooks wrap Writer; the first hook is the outermost one.
	Hooks []gen.Hook
	// Workers bounds parallel generation in GenerateAll.
	Workers int
	// Debounce is the quiet period Watch waits for before regenerating.
	Debounce time.Duration
}

// Option configures a generation run.
type Option func(*Settings) error

// Output sets the output file or directory.
func Output(path string) Option {
	return func(s *Settings) error {
		s.Output = path
		return nil
	}
}

// Element selects the element to generate from by qualified path, for
// example "Model::Domain".
func Element(path string) Option {
	return func(s *Settings) error {
		s.Element = path
		return nil
	}
}

// Stdout sets the destination used when no output path is given.
func Stdout(w io.Writer) Option {
	return func(s *Settings) error {
		if w == nil {
			return gen.NewConfigError("Stdout", nil, "writer cannot be nil")
		}
		s.Stdout = w
		return nil
	}
}

// Writer replaces the file writer.
func Writer(w gen.Writer) Option {
	return func(s *Settings) error {
		if w == nil {
			return gen.NewConfigError("Writer", nil, "writer cannot be nil")
		}
		s.Writer = w
		return nil
	}
}

// Hooks appends output hooks.
func Hooks(hooks ...gen.Hook) Option {
	return func(s *Settings) error {
		s.Hooks = append(s.Hooks, hooks...)
		return nil
	}
}

// Workers bounds the number of models generated concurrently.
func Workers(n int) Option {
	return func(s *Settings) error {
		if n < 1 {
			return gen.NewConfigError("Workers", n, "must be at least 1")
		}
		s.Workers = n
		return nil
	}
}

// Debounce sets the quiet period of Watch.
func Debounce(d time.Duration) Option {
	return func(s *Settings) error {
		if d <= 0 {
			return gen.NewConfigError("Debounce", d, "must be positive")
		}
		s.Debounce = d
		return nil
	}
}

// Extensions installs the hooks and options of the given extensions.
func Extensions(extensions ...Extension) Option {
	return func(s *Settings) error {
		for _, ex := range extensions {
			s.Hooks = append(s.Hooks, ex.Hooks()...)
			for _, opt := range ex.Options() {
				if err := opt(s); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// NewSettings returns settings with defaults and the given options applied.
func NewSettings(opts ...Option) (*Settings, error) {
	s := &Settings{
		Stdout:   os.Stdout,
		Writer:   gen.FileWriter{},
		Workers:  4,
		Debounce: 250 * time.Millisecond,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Result describes one generated schema.
type Result struct {
	// Model is the model file the schema was generated from.
	Model string
	// Path is the written file, or "" when the schema went to Stdout.
	Path string
	// Schema is the generated text as passed to the hooks.
	Schema string
}

// Generate loads the model at modelPath and writes its schema, including
// the project metadata block.
func Generate(ctx context.Context, modelPath string, cfg *gen.Config, opts ...Option) (*Result, error) {
	s, err := NewSettings(opts...)
	if err != nil {
		return nil, err
	}
	return generate(ctx, modelPath, cfg, s)
}

func generate(ctx context.Context, modelPath string, cfg *gen.Config, s *Settings) (*Result, error) {
	model, root, err := loadElement(ctx, modelPath, s.Element)
	if err != nil {
		return nil, err
	}
	schema, err := gen.NewGenerator(model, cfg).Generate(root)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", modelPath, err)
	}
	path, err := OutputPath(modelPath, s.Output)
	if err != nil {
		return nil, err
	}

	res := &Result{Model: modelPath, Path: path}
	sink := s.Writer
	if path == "" {
		sink = stdoutWriter(s.Stdout)
	}
	record := func(next gen.Writer) gen.Writer {
		return gen.WriteFunc(func(ctx context.Context, path, schema string) error {
			res.Schema = schema
			return next.Write(ctx, path, schema)
		})
	}
	hooks := append(append([]gen.Hook(nil), s.Hooks...), record)
	if err := gen.Chain(sink, hooks...).Write(ctx, path, schema); err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Info("schema generated", "model", modelPath, "output", displayPath(path))
	return res, nil
}

// Preview renders the element at elementPath of the model without the
// project metadata block.
func Preview(ctx context.Context, modelPath, elementPath string, cfg *gen.Config) (string, error) {
	model, root, err := loadElement(ctx, modelPath, elementPath)
	if err != nil {
		return "", err
	}
	out, err := gen.Render(model, root, cfg)
	if err != nil {
		return "", fmt.Errorf("preview %s: %w", modelPath, err)
	}
	return out, nil
}

func loadElement(ctx context.Context, modelPath, elementPath string) (*uml.Model, uml.Element, error) {
	model, err := load.Load(ctx, modelPath)
	if err != nil {
		return nil, nil, err
	}
	root, ok := model.Find(elementPath)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q in %s", ErrElementNotFound, elementPath, modelPath)
	}
	return model, root, nil
}

// OutputPath resolves where the schema of modelPath is written. An empty
// output means standard output. An existing directory, or a path ending in
// a separator, receives "<model name>.graphql".
func OutputPath(modelPath, output string) (string, error) {
	if output == "" {
		return "", nil
	}
	if strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(filepath.Separator)) {
		return filepath.Join(output, schemaName(modelPath)), nil
	}
	info, err := os.Stat(output)
	switch {
	case err == nil && info.IsDir():
		return filepath.Join(output, schemaName(modelPath)), nil
	case err == nil || os.IsNotExist(err):
		return output, nil
	default:
		return "", gen.NewGenerationError("write", output, "stat output", err)
	}
}

func schemaName(modelPath string) string {
	base := filepath.Base(modelPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + SchemaExt
}

func stdoutWriter(w io.Writer) gen.Writer {
	return gen.WriteFunc(func(ctx context.Context, _, schema string) error {
		if err := ctx.Err(); err != nil {
			return gen.NewGenerationError("write", "", "canceled", err)
		}
		if _, err := io.WriteString(w, schema); err != nil {
			return gen.NewGenerationError("write", "", "write to stdout", err)
		}
		return nil
	})
}

func displayPath(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
