package compiler

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/umlgql/compiler/gen"
	"github.com/syssam/umlgql/internal/ctxlog"
)

// Watch generates every model once and then regenerates a model whenever
// its file changes, until ctx is canceled. Changes are batched until no
// event arrived for the Debounce period. Failed passes are logged and do
// not stop the watcher.
func Watch(ctx context.Context, modelPaths []string, cfg *gen.Config, opts ...Option) error {
	s, err := NewSettings(opts...)
	if err != nil {
		return err
	}
	if err := s.multiOutput(len(modelPaths)); err != nil {
		return err
	}
	log := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files on save, so the parent directories are
	// watched and events are filtered by path.
	models := make(map[string]string, len(modelPaths))
	dirs := make(map[string]bool)
	for _, p := range modelPaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		models[abs] = p
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	regenerate := func(path string) {
		if _, err := generate(ctx, path, cfg, s); err != nil {
			log.Error("generation failed", "model", path, "error", err)
		}
	}
	for _, p := range modelPaths {
		regenerate(p)
	}
	log.Info("watching models", "count", len(modelPaths), "debounce", s.Debounce)

	var (
		pending = make(map[string]bool)
		timer   *time.Timer
		timerC  <-chan time.Time
	)
	flush := func() {
		changed := make([]string, 0, len(pending))
		for p := range pending {
			changed = append(changed, p)
		}
		slices.Sort(changed)
		clear(pending)
		for _, p := range changed {
			log.Debug("model changed", "model", p)
			regenerate(p)
		}
	}
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}

	for {
		select {
		case <-ctx.Done():
			stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				stop()
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			p, ok := models[filepath.Clean(event.Name)]
			if !ok {
				continue
			}
			pending[p] = true
			if timer == nil {
				timer = time.NewTimer(s.Debounce)
				timerC = timer.C
			} else {
				timer.Reset(s.Debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				stop()
				return nil
			}
			log.Warn("watch error", "error", err)
		case <-timerC:
			flush()
		}
	}
}
