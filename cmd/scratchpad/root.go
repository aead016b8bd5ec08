package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/scratchpad/internal/app"
	"github.com/marcus/scratchpad/internal/config"
	"github.com/marcus/scratchpad/internal/dashboard"
	"github.com/marcus/scratchpad/internal/images"
	"github.com/marcus/scratchpad/internal/keymap"
	"github.com/marcus/scratchpad/internal/launcher"
	"github.com/marcus/scratchpad/internal/notes"
	"github.com/marcus/scratchpad/internal/state"
	"github.com/marcus/scratchpad/internal/sticky"
	"github.com/marcus/scratchpad/internal/store"
	"github.com/marcus/scratchpad/internal/watch"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "scratchpad",
		Short: "A terminal notebook for contacts, bookmarks, prompts and sticky notes.",
		Example: `
scratchpad
scratchpad --config ~/notes.yaml
scratchpad add bookmarks https://go.dev
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(opts, app.Options{})
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	addStats(cmd, opts)
	addList(cmd, opts)
	addAdd(cmd, opts)
	addSticky(cmd, opts)
	addRun(cmd, opts)
	addConfig(cmd, opts)
	addVersion(cmd)

	return cmd
}

// env holds the resources shared by every command.
type env struct {
	cfg     *config.Config
	paths   config.Paths
	logger  *slog.Logger
	store   *store.Store
	notes   *notes.Service
	logFile *os.File
}

// openEnv loads config and opens storage. With toFile the log goes to the
// data directory so it does not draw over the TUI; otherwise to stderr.
func openEnv(opts *rootOptions, toFile bool, stderr io.Writer) (*env, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	paths, err := config.ResolvePaths(cfg.Storage)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, paths: paths}

	level := slog.LevelWarn
	if opts.debug {
		level = slog.LevelDebug
	}
	var out io.Writer = stderr
	if toFile {
		f, err := os.OpenFile(paths.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		e.logFile = f
		out = f
		if !opts.debug {
			level = slog.LevelInfo
		}
	}
	e.logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

	st, err := store.Open(paths.DB, cfg.Storage.Driver)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.store = st

	img, err := images.Open(paths.Images)
	if err != nil {
		e.Close()
		return nil, err
	}

	e.notes = notes.NewService(st, img, e.logger)
	e.logger.Debug("storage opened", "db", paths.DB, "driver", cfg.Storage.Driver, "images", img.Dir())
	return e, nil
}

// stats builds the dashboard aggregator for this environment.
func (e *env) stats() *dashboard.Aggregator {
	return dashboard.New(e.notes, e.store, e.cfg.Storage.CapacityBytes)
}

func (e *env) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Warn("close store", "err", err)
		}
	}
	if e.logFile != nil {
		_ = e.logFile.Close()
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// runTUI opens storage and runs the interactive program until it quits.
func runTUI(opts *rootOptions, appOpts app.Options) error {
	e, err := openEnv(opts, true, os.Stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	// Persistent state is optional; a broken file starts fresh.
	if err := state.Init(); err != nil {
		e.logger.Warn("load state", "err", err)
	}

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	for key, cmdID := range e.cfg.Keymap.Overrides {
		km.SetUserOverride(key, cmdID)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := watch.Watch(ctx, e.paths.DB)
	if err != nil {
		e.logger.Warn("watch database", "err", err)
		events = nil
	}

	if !appOpts.StickyOnly {
		appOpts.StartCategory = e.cfg.UI.StartCategory
		if appOpts.StartCategory == "" {
			appOpts.StartCategory = state.GetLastCategory()
		}
		appOpts.OpenStickies = state.GetOpenStickies()
	}

	model := app.New(app.Deps{
		Config:   e.cfg,
		Keymap:   km,
		Notes:    e.notes,
		Stats:    e.stats(),
		Stickies: sticky.NewManager(e.notes, e.cfg.Sticky.SaveDelay, e.logger),
		Launcher: launcher.New(e.logger),
		Events:   events,
		Logger:   e.logger,
	}, appOpts)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run application: %w", err)
	}
	return nil
}
