package graphql

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/syssam/umlgql/compiler"
	"github.com/syssam/umlgql/compiler/gen"
	"github.com/syssam/umlgql/internal/ctxlog"
)

// SchemaHook is called with the generated schema before it is written and
// may return a modified schema.
type SchemaHook func(schema string) (string, error)

// Extension implements the compiler.Extension interface for gqlgen projects.
// It runs schema hooks before the schema is written and registers written
// schema files in gqlgen.yml.
//
// Usage:
//
//	ex, err := graphql.NewExtension(
//	    graphql.WithConfigPath("./gqlgen.yml"),
//	    graphql.WithScalarBinding("DateTime", "time.Time"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_, err = compiler.Generate(ctx, "./shop.mdj", cfg,
//	    compiler.Output("./graph/"),
//	    compiler.Extensions(ex),
//	)
type Extension struct {
	compiler.DefaultExtension

	// configPath is the gqlgen.yml to register schemas in. Empty disables
	// registration.
	configPath string

	// schemaHooks run in order before the schema is written.
	schemaHooks []SchemaHook

	// models binds GraphQL scalars to Go types in gqlgen.yml.
	models map[string]string

	hooks []gen.Hook

	// mu serializes updates of the gqlgen config across parallel runs.
	mu sync.Mutex
}

// ExtensionOption is a function that configures the Extension.
type ExtensionOption func(*Extension) error

// NewExtension creates a new GraphQL extension with the given options.
func NewExtension(opts ...ExtensionOption) (*Extension, error) {
	ex := &Extension{models: make(map[string]string)}
	for _, opt := range opts {
		if err := opt(ex); err != nil {
			return nil, err
		}
	}
	ex.hooks = append(ex.hooks, ex.schemaHook(), ex.registerHook())
	return ex, nil
}

// Hooks returns the output hooks of the extension.
func (e *Extension) Hooks() []gen.Hook {
	return e.hooks
}

// ConfigPath returns the gqlgen.yml path, or "" when registration is off.
func (e *Extension) ConfigPath() string {
	return e.configPath
}

// schemaHook applies the schema hooks before the schema reaches the writer.
func (e *Extension) schemaHook() gen.Hook {
	return func(next gen.Writer) gen.Writer {
		return gen.WriteFunc(func(ctx context.Context, path, schema string) error {
			for i, hook := range e.schemaHooks {
				out, err := hook(schema)
				if err != nil {
					return gen.NewGenerationError("hook", path, fmt.Sprintf("schema hook %d", i), err)
				}
				schema = out
			}
			return next.Write(ctx, path, schema)
		})
	}
}

// registerHook registers the written schema file in gqlgen.yml. Schemas
// written to standard output are not registered.
func (e *Extension) registerHook() gen.Hook {
	return func(next gen.Writer) gen.Writer {
		return gen.WriteFunc(func(ctx context.Context, path, schema string) error {
			if err := next.Write(ctx, path, schema); err != nil {
				return err
			}
			if e.configPath == "" || path == "" {
				return nil
			}
			e.mu.Lock()
			defer e.mu.Unlock()
			log := ctxlog.FromContext(ctx)
			cfg, err := LoadGQLGenConfig(e.configPath)
			if err != nil {
				return gen.NewGenerationError("hook", e.configPath, "load config", err)
			}
			if e.registered(cfg, path) {
				log.Debug("schema already registered", "schema", path, "config", e.configPath)
			} else {
				if err := RegisterSchema(ctx, e.configPath, path, e.models); err != nil {
					return gen.NewGenerationError("hook", e.configPath, "register schema", err)
				}
				if cfg, err = LoadGQLGenConfig(e.configPath); err != nil {
					return gen.NewGenerationError("hook", e.configPath, "reload config", err)
				}
				log.Debug("schema registered", "schema", path, "config", e.configPath)
			}
			for _, name := range cfg.UnboundScalars(schema) {
				log.Warn("scalar has no model binding in gqlgen config", "scalar", name, "config", e.configPath)
			}
			return nil
		})
	}
}

// registered reports whether cfg already lists the schema at path and every
// scalar binding of the extension.
func (e *Extension) registered(cfg *GQLGenConfig, path string) bool {
	if !cfg.HasSchema(relativeTo(filepath.Dir(e.configPath), path)) {
		return false
	}
	for scalar, model := range e.models {
		if !slices.Contains(cfg.Models[scalar].Model, model) {
			return false
		}
	}
	return true
}

// WithConfigPath sets the gqlgen.yml the schema is registered in.
func WithConfigPath(path string) ExtensionOption {
	return func(ex *Extension) error {
		ex.configPath = path
		return nil
	}
}

// WithSchemaHook adds hooks that post-process the schema before it is
// written.
func WithSchemaHook(hooks ...SchemaHook) ExtensionOption {
	return func(ex *Extension) error {
		for _, h := range hooks {
			if h == nil {
				return gen.NewConfigError("SchemaHook", nil, "hook cannot be nil")
			}
		}
		ex.schemaHooks = append(ex.schemaHooks, hooks...)
		return nil
	}
}

// WithScalarBinding binds a GraphQL scalar to a Go type in gqlgen.yml,
// for example ("DateTime", "time.Time").
func WithScalarBinding(scalar, model string) ExtensionOption {
	return func(ex *Extension) error {
		if scalar == "" || model == "" {
			return gen.NewConfigError("ScalarBinding", scalar, "scalar and model are required")
		}
		ex.models[scalar] = model
		return nil
	}
}

var _ compiler.Extension = (*Extension)(nil)
