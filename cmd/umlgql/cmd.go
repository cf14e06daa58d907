package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/syssam/umlgql/compiler"
	"github.com/syssam/umlgql/compiler/gen"
	"github.com/syssam/umlgql/contrib/graphql"
	"github.com/syssam/umlgql/internal/ctxlog"
)

// genFlags are the generator settings shared by all commands.
type genFlags struct {
	config   string
	doc      bool
	indent   int
	tab      bool
	debug    bool
	metadata bool
}

func (f *genFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "preferences file (default: "+compiler.DefaultConfigFile+" next to the model)")
	cmd.Flags().BoolVar(&f.doc, "doc", true, "emit documentation comments")
	cmd.Flags().IntVar(&f.indent, "indent", gen.DefaultIndentSpaces, "number of spaces per indentation level")
	cmd.Flags().BoolVar(&f.tab, "tab", false, "indent with tabs")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "log generation traces")
	cmd.Flags().BoolVar(&f.metadata, "metadata", true, "emit the project metadata header")
}

// load reads the preferences file for model. An explicit --config must
// exist; the default file is optional.
func (f *genFlags) load(model string) (*compiler.FileConfig, error) {
	if f.config != "" {
		return compiler.LoadConfigFile(f.config, false)
	}
	return compiler.LoadConfigFile(filepath.Join(filepath.Dir(model), compiler.DefaultConfigFile), true)
}

// options merges the preferences file with the flags set on the command
// line. Flags win.
func (f *genFlags) options(cmd *cobra.Command, fc *compiler.FileConfig) []gen.Option {
	opts := fc.GenOptions()
	changed := cmd.Flags().Changed
	if changed("doc") {
		opts = append(opts, gen.WithDocumentation(f.doc))
	}
	if changed("indent") {
		opts = append(opts, gen.WithIndentSpaces(f.indent))
	}
	if changed("tab") {
		opts = append(opts, gen.WithTabs(f.tab))
	}
	if changed("debug") {
		opts = append(opts, gen.WithDebug(f.debug))
	}
	if changed("metadata") {
		opts = append(opts, gen.WithMetadata(f.metadata))
	}
	return opts
}

// setup builds the generator config and a context carrying the logger.
func (f *genFlags) setup(cmd *cobra.Command, fc *compiler.FileConfig) (context.Context, *gen.Config, error) {
	cfg, err := gen.NewConfig(f.options(cmd, fc)...)
	if err != nil {
		return nil, nil, err
	}
	log := newLogger(cmd.ErrOrStderr(), cfg.Debug)
	if err := cfg.Apply(gen.WithLogger(log)); err != nil {
		return nil, nil, err
	}
	return ctxlog.WithLogger(cmd.Context(), log), cfg, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "umlgql",
		Short:        "Generate GraphQL schemas from UML models",
		SilenceUsage: true,
	}
	root.AddCommand(newGenerateCmd(), newPreviewCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	var (
		flags   genFlags
		output  string
		element string
		gqlgen  string
		workers int
		watch   bool
	)
	cmd := &cobra.Command{
		Use:   "generate [-o <output>] <model...>",
		Short: "Generate the schema of one or more model files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := flags.load(args[0])
			if err != nil {
				return err
			}
			ctx, cfg, err := flags.setup(cmd, fc)
			if err != nil {
				return err
			}

			opts := append(fc.Options(), compiler.Stdout(cmd.OutOrStdout()))
			changed := cmd.Flags().Changed
			if changed("output") {
				opts = append(opts, compiler.Output(output))
			}
			if changed("element") {
				opts = append(opts, compiler.Element(element))
			}
			if changed("workers") {
				opts = append(opts, compiler.Workers(workers))
			}
			if !changed("gqlgen") {
				gqlgen = fc.GQLGen
			}
			if gqlgen != "" {
				ex, err := graphql.NewExtension(graphql.WithConfigPath(gqlgen))
				if err != nil {
					return err
				}
				opts = append(opts, compiler.Extensions(ex))
			}

			if watch {
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()
				return compiler.Watch(ctx, args, cfg, opts...)
			}
			_, err = compiler.GenerateAll(ctx, args, cfg, opts...)
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or directory (default: standard output)")
	cmd.Flags().StringVarP(&element, "element", "e", "", "qualified path of the element to generate from, e.g. Model::Domain")
	cmd.Flags().StringVar(&gqlgen, "gqlgen", "", "gqlgen.yml to register the written schema in")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "number of models generated concurrently")
	cmd.Flags().BoolVar(&watch, "watch", false, "regenerate when a model file changes")
	return cmd
}

func newPreviewCmd() *cobra.Command {
	var flags genFlags
	cmd := &cobra.Command{
		Use:   "preview <model> [element]",
		Short: "Print the schema of a model element without the metadata header",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := flags.load(args[0])
			if err != nil {
				return err
			}
			ctx, cfg, err := flags.setup(cmd, fc)
			if err != nil {
				return err
			}
			element := fc.Element
			if len(args) == 2 {
				element = args[1]
			}
			out, err := compiler.Preview(ctx, args[0], element, cfg)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	flags.register(cmd)
	return cmd
}
