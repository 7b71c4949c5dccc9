package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sbackup/internal/app"
	"sbackup/internal/config"
	"sbackup/internal/domain"
	appErrors "sbackup/internal/errors"
	"sbackup/internal/infra/console"
	osfs "sbackup/internal/infra/fs"
	"sbackup/internal/logging"
	"sbackup/internal/presentation"
	"sbackup/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Config{}

	cmd := &cobra.Command{
		Use:   "sbackup <source-dir> <target-dir>",
		Short: "Recursively copy a directory tree, skipping files already up to date",
		Long: "sbackup mirrors a directory tree into a target directory. Files whose\n" +
			"target modification time already equals the source are skipped, so\n" +
			"re-running a partially failed copy resumes where it left off.",
		Args:          cobra.MaximumNArgs(2),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				cfg.SourceDir = args[0]
			}
			if len(args) > 1 {
				cfg.TargetDir = args[1]
			}
			cfg.ApplyEnv()
			if err := cfg.Normalize(); err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
			}
			cmd.SilenceUsage = true
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().BoolVarP(&cfg.Interactive, "interactive", "i", false, "ask before overwriting an existing target file")
	cmd.Flags().BoolVar(&cfg.Preserve, "preserve", true, "preserve file modes and modification times")
	cmd.Flags().BoolVarP(&cfg.DryRun, "dry-run", "d", false, "report what would be copied without writing")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "verbose output")
	cmd.Flags().BoolVar(&cfg.TUI, "tui", false, "interactive terminal UI")

	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	filesystem := osfs.OSFS{}

	info, err := filesystem.Stat(cfg.SourceDir)
	if err != nil {
		return appErrors.Wrap(appErrors.NotFound, "stat", cfg.SourceDir, err)
	}
	if !info.IsDir() {
		return appErrors.Wrap(appErrors.NotDirectory, "stat", cfg.SourceDir, errors.New("source must be a directory"))
	}

	if info, err := filesystem.Stat(cfg.TargetDir); err == nil {
		if !info.IsDir() {
			return appErrors.Wrap(appErrors.NotDirectory, "stat", cfg.TargetDir, errors.New("target must be a directory"))
		}
	} else if !cfg.DryRun {
		if err := filesystem.MkdirAll(cfg.TargetDir, 0o755); err != nil {
			return appErrors.Wrap(appErrors.IOFailure, "mkdir", cfg.TargetDir, err)
		}
	}

	if cfg.TUI {
		return runTUI(ctx, cfg, filesystem)
	}
	return runPlain(ctx, cfg, filesystem)
}

func runPlain(ctx context.Context, cfg config.Config, filesystem osfs.OSFS) error {
	tctx := cfg.TraversalContext()
	logger := logging.New(os.Stdout, os.Stderr, cfg.Verbose)
	printer := presentation.Printer{Writer: os.Stdout, Verbose: cfg.Verbose}

	walker := &app.Walker{
		FS: filesystem,
		Copier: &app.Copier{
			FS:                 filesystem,
			Prompt:             console.New(os.Stdin, os.Stderr),
			PromptOnOverwrite:  tctx.PromptOnOverwrite,
			PreserveAttributes: tctx.PreserveAttributes,
			DryRun:             tctx.DryRun,
		},
		Logger:  logger,
		OnEntry: printer.PrintEntry,
	}

	report, err := walker.Walk(ctx, tctx)
	if err != nil {
		return appErrors.Wrap(appErrors.Internal, "walk", cfg.SourceDir, err)
	}
	printer.PrintSummary(report, cfg.DryRun)
	return nil
}

func runTUI(ctx context.Context, cfg config.Config, filesystem osfs.OSFS) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tctx := cfg.TraversalContext()
	events := make(chan tea.Msg)

	// The alternate screen owns the terminal while the TUI runs; diagnostics
	// are buffered and flushed to stderr afterwards.
	diag := &diagBuffer{}
	logger := logging.Logger{Out: io.Discard, Err: diag, Verbose: cfg.Verbose}

	walker := &app.Walker{
		FS: filesystem,
		Copier: &app.Copier{
			FS:                 filesystem,
			Prompt:             teaPrompter{ctx: ctx, events: events},
			PromptOnOverwrite:  tctx.PromptOnOverwrite,
			PreserveAttributes: tctx.PreserveAttributes,
			DryRun:             tctx.DryRun,
		},
		Logger: logger,
		OnEntry: func(entry domain.Entry, outcome domain.Outcome) {
			select {
			case events <- tui.EntryMsg{Entry: entry, Outcome: outcome}:
			case <-ctx.Done():
			}
		},
	}

	go func() {
		defer close(events)
		report, err := walker.Walk(ctx, tctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			events <- tui.ErrorMsg{Err: err}
			return
		}
		events <- tui.DoneMsg{Report: report}
	}()

	model := tui.NewModel(tui.Config{
		SourceDir: cfg.SourceDir,
		TargetDir: cfg.TargetDir,
		DryRun:    cfg.DryRun,
		Events:    events,
		Cancel:    cancel,
	})

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	cancel()
	for range events {
		// unblock and wait out the walk goroutine
	}
	diag.FlushTo(os.Stderr)

	if err != nil {
		return appErrors.Wrap(appErrors.Internal, "tui", "", err)
	}
	if m, ok := final.(tui.Model); ok && m.Err != nil {
		return appErrors.Wrap(appErrors.Internal, "walk", cfg.SourceDir, m.Err)
	}
	return nil
}

// teaPrompter bridges the copier's blocking confirmation to the TUI event
// loop. Both sends bail out on cancellation so a quit never strands the walk
// goroutine.
type teaPrompter struct {
	ctx    context.Context
	events chan<- tea.Msg
}

func (p teaPrompter) Confirm(target string) (bool, error) {
	reply := make(chan bool, 1)
	select {
	case p.events <- tui.PromptMsg{Target: target, Reply: reply}:
	case <-p.ctx.Done():
		return false, p.ctx.Err()
	}
	select {
	case ok := <-reply:
		return ok, nil
	case <-p.ctx.Done():
		return false, p.ctx.Err()
	}
}
