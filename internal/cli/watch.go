package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/relkit/relkit/internal/config"
	"github.com/relkit/relkit/internal/output"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// watchDebounce coalesces bursts of write events from editors that save
// in multiple steps.
const watchDebounce = 200 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate the changelog on every change",
	Long: `Watch the changelog and version file and re-run validation whenever
either changes. Runs until interrupted.

Example:
  relkit watch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directories: editors replace files on save,
	// which drops direct file watches.
	dirs := map[string]bool{}
	for _, p := range []string{cfg.ChangelogPath, cfg.VersionFile} {
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s and %s (ctrl-c to stop)\n", cfg.ChangelogPath, cfg.VersionFile)
	revalidate(cmd, cfg)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watchLoop(ctx, cmd, cfg, watcher)
	})
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// watchLoop processes watcher events until the context is cancelled.
func watchLoop(ctx context.Context, cmd *cobra.Command, cfg *config.Configuration, watcher *fsnotify.Watcher) error {
	watched := map[string]bool{
		filepath.Clean(cfg.ChangelogPath): true,
		filepath.Clean(cfg.VersionFile):   true,
	}

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			revalidate(cmd, cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}

// revalidate runs a single validation pass and prints the outcome.
func revalidate(cmd *cobra.Command, cfg *config.Configuration) {
	out := cmd.OutOrStdout()
	stamp := time.Now().Format("15:04:05")

	doc, err := loadDocument(cfg)
	if err != nil {
		output.PrintFailure(out, fmt.Sprintf("[%s] %v", stamp, err))
		return
	}

	if violations := doc.Validate(); len(violations) > 0 {
		output.PrintFailure(out, fmt.Sprintf("[%s] %d violation(s):", stamp, len(violations)))
		for _, v := range violations {
			fmt.Fprintf(out, "  - %s\n", v)
		}
		return
	}

	output.PrintSuccess(out, fmt.Sprintf("[%s] %s is valid", stamp, cfg.ChangelogPath))
}
