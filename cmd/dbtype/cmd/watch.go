package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/syssam/dbtype/compiler"
	"github.com/syssam/dbtype/compiler/gen"
	"github.com/syssam/dbtype/compiler/gen/sql"
	"github.com/syssam/dbtype/compiler/load"
	"github.com/syssam/dbtype/internal/logger"
)

// debounce collapses the burst of events an editor save produces.
const debounce = 200 * time.Millisecond

func newWatchCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [packages]",
		Short: "Regenerate on every change to the loaded packages",
		Long: `Generate once, then watch the directories of the loaded packages and
regenerate after each change to a Go file. Invalid declarations are reported
and the previous output is kept. Stop with Ctrl-C.

Examples:
  dbtype watch --backend postgres ./...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := v.GetString(flagOutput)
			if output == "" {
				output = load.DefaultOutput
			}
			w := &watcher{
				patterns: args,
				output:   output,
				opts:     options(v),
				report:   func(err error) error { return report(cmd.ErrOrStderr(), err) },
			}
			return w.run(cmd.Context())
		},
	}
}

// watcher regenerates the packages matching patterns on file changes.
type watcher struct {
	patterns []string
	output   string
	opts     []gen.Option
	report   func(error) error
	fs       *fsnotify.Watcher
	dirs     map[string]bool
}

func (w *watcher) run(ctx context.Context) error {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer fs.Close()
	w.fs, w.dirs = fs, make(map[string]bool)

	switch err := w.generate(ctx); {
	case err == nil, gen.IsDiagnostic(err):
	case len(w.dirs) == 0:
		return err
	default:
		logger.Errorw("generation failed", "error", err)
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fs.Events:
			if !ok {
				return nil
			}
			if w.relevant(ev) {
				logger.Debugw("change detected", "file", ev.Name, "op", ev.Op.String())
				timer.Reset(debounce)
			}
		case err, ok := <-fs.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("file watcher error", "error", err)
		case <-timer.C:
			// Packages may not type-check halfway through an edit.
			if err := w.generate(ctx); err != nil && !gen.IsDiagnostic(err) {
				logger.Errorw("generation failed", "error", err)
			}
		}
	}
}

// relevant reports whether ev can change the generated output. Writes of
// the output file itself are ignored.
func (w *watcher) relevant(ev fsnotify.Event) bool {
	name := filepath.Base(ev.Name)
	if name == w.output || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

// generate regenerates all packages. Directories are watched before the
// packages are validated, so that a package that is invalid on startup is
// regenerated once it is fixed. Diagnostics are reported and returned.
func (w *watcher) generate(ctx context.Context) error {
	if err := w.watch(ctx); err != nil {
		return err
	}
	g, err := compiler.LoadGraph(ctx, w.patterns, w.opts...)
	if err != nil {
		if gen.IsDiagnostic(err) {
			logger.Errorw("invalid declarations", "error", w.report(err))
		}
		return err
	}
	if err := sql.Generate(ctx, g); err != nil {
		return err
	}
	logger.Infow("generated", "packages", len(g.Packages))
	return nil
}

// watch adds the directories of packages that appeared since the last run.
func (w *watcher) watch(ctx context.Context) error {
	cfg, err := gen.NewConfig(w.opts...)
	if err != nil {
		return err
	}
	dirs, err := (&load.Config{BuildFlags: cfg.BuildFlags}).Dirs(ctx, w.patterns...)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if w.dirs[dir] {
			continue
		}
		if err := w.fs.Add(dir); err != nil {
			return errors.Wrapf(err, "watching %s", dir)
		}
		w.dirs[dir] = true
	}
	return nil
}
