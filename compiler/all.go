package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/umlgql/compiler/gen"
)

// GenerateAll generates every model in parallel, at most Workers at a time.
// Results are returned in the order of modelPaths. The first failure
// cancels the remaining work. Hooks may run concurrently.
func GenerateAll(ctx context.Context, modelPaths []string, cfg *gen.Config, opts ...Option) ([]*Result, error) {
	s, err := NewSettings(opts...)
	if err != nil {
		return nil, err
	}
	if err := s.multiOutput(len(modelPaths)); err != nil {
		return nil, err
	}

	results := make([]*Result, len(modelPaths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Workers)
	for i, path := range modelPaths {
		i, path := i, path
		g.Go(func() error {
			res, err := generate(ctx, path, cfg, s)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// multiOutput checks that n models can share the output setting and turns
// Output into a directory path when n > 1.
func (s *Settings) multiOutput(n int) error {
	if n < 2 {
		return nil
	}
	if s.Output == "" {
		return gen.NewConfigError("Output", nil, "an output directory is required for more than one model")
	}
	if info, err := os.Stat(s.Output); err == nil && !info.IsDir() {
		return gen.NewConfigError("Output", s.Output, "must be a directory when generating several models")
	}
	s.Output = filepath.Clean(s.Output) + string(filepath.Separator)
	return nil
}
