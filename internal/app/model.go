package app

import (
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/scratchpad/internal/config"
	"github.com/marcus/scratchpad/internal/coordinator"
	"github.com/marcus/scratchpad/internal/dashboard"
	"github.com/marcus/scratchpad/internal/keymap"
	"github.com/marcus/scratchpad/internal/launcher"
	"github.com/marcus/scratchpad/internal/notes"
	"github.com/marcus/scratchpad/internal/state"
	"github.com/marcus/scratchpad/internal/sticky"
	"github.com/marcus/scratchpad/internal/store"
	"github.com/marcus/scratchpad/internal/ui"
	"github.com/marcus/scratchpad/internal/watch"
)

// Context names used for key lookup.
const (
	contextGlobal    = "global"
	contextList      = "list"
	contextDashboard = "dashboard"
	contextEditor    = "editor"
	contextSticky    = "sticky"
	contextConfirm   = "confirm"
	contextWarning   = "warning"
	contextPicker    = "picker"
)

const (
	minListWidth = 20
	listStep     = 4
)

// Deps are the collaborators the model drives.
type Deps struct {
	Config   *config.Config
	Keymap   *keymap.Registry
	Notes    *notes.Service
	Stats    coordinator.StatsSource
	Stickies *sticky.Manager
	Launcher *launcher.Launcher
	Events   <-chan watch.Event // optional; nil disables external refresh
	Logger   *slog.Logger
}

// Options configure startup.
type Options struct {
	StartCategory string   // category name or coordinator.Dashboard
	OpenStickies  []string // sticky ids to reopen
	StickyOnly    bool     // show only sticky windows and quit when the last one closes
}

// pendingDialog is a queued confirm or warning box.
type pendingDialog struct {
	dialog *ui.Dialog
	onYes  func()
}

// Model is the root Bubble Tea model. It is used by pointer because the
// coordinator holds it as its View.
type Model struct {
	cfg      *config.Config
	keymap   *keymap.Registry
	notes    *notes.Service
	coord    *coordinator.Coordinator
	stickies *sticky.Manager
	launcher *launcher.Launcher
	events   <-chan watch.Event
	saved    chan string
	logger   *slog.Logger

	// copyText writes to the system clipboard.
	copyText func(string) error

	width, height int
	ready         bool
	showFooter    bool
	listWidth     int
	stickyOnly    bool
	quitting      bool

	// Screen contents, written by the coordinator through the View methods.
	category     notes.Category
	onDashboard  bool
	items        []store.Note
	cursor       int // -1 when nothing is highlighted
	preview      string
	stats        dashboard.Stats
	stickyList   []store.Note
	stickyCursor int
	gauge        progress.Model

	// Overlays, highest priority first.
	dialogs       []pendingDialog
	prompt        *pathPrompt
	editor        *editorModal
	windows       []*stickyWindow
	focusedWindow int // index into windows, -1 when the main view has focus

	toast    string
	toastErr bool
	toastSeq int
}

// New creates the model, selects the start category and reopens stickies.
func New(d Deps, opts Options) *Model {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg := d.Config
	if cfg == nil {
		cfg = config.Default()
	}
	km := d.Keymap
	if km == nil {
		km = keymap.NewRegistry()
		keymap.RegisterDefaults(km)
	}

	m := &Model{
		cfg:           cfg,
		keymap:        km,
		notes:         d.Notes,
		stickies:      d.Stickies,
		launcher:      d.Launcher,
		events:        d.Events,
		saved:         make(chan string, 16),
		logger:        logger,
		copyText:      clipboard.WriteAll,
		showFooter:    cfg.UI.ShowFooter,
		listWidth:     cfg.UI.ListWidth,
		stickyOnly:    opts.StickyOnly,
		cursor:        -1,
		focusedWindow: -1,
		gauge:         progress.New(progress.WithDefaultGradient()),
	}
	if w := state.GetListWidth(); w >= minListWidth {
		m.listWidth = w
	}
	if m.launcher == nil {
		m.launcher = launcher.New(logger)
	}

	m.stickies.OnSave = func(id string) {
		select {
		case m.saved <- id:
		default:
		}
	}
	m.coord = coordinator.New(d.Notes, d.Stats, m, logger)

	if !opts.StickyOnly {
		start := opts.StartCategory
		if start == "" {
			start = coordinator.Dashboard
		}
		if err := m.coord.SelectCategory(start); err != nil {
			logger.Warn("start category", "category", start, "err", err)
			// Fall back so the screen is never empty.
			if start != coordinator.Dashboard {
				_ = m.coord.SelectCategory(coordinator.Dashboard)
			}
		}
	}

	for _, id := range opts.OpenStickies {
		if _, err := m.openSticky(id); err != nil {
			logger.Warn("reopen sticky", "id", id, "err", err)
		}
	}
	if opts.StickyOnly && len(m.windows) == 0 {
		if _, err := m.openSticky(""); err != nil {
			logger.Error("new sticky", "err", err)
			m.Warn("Cannot create sticky note", err.Error())
		}
	}
	if opts.StickyOnly {
		m.focusWindow(len(m.windows) - 1)
	} else {
		m.focusWindow(-1)
	}
	return m
}

// SetClipboard replaces the clipboard writer.
func (m *Model) SetClipboard(fn func(string) error) { m.copyText = fn }

// Coordinator returns the selection coordinator.
func (m *Model) Coordinator() *coordinator.Coordinator { return m.coord }

// Init starts the background listeners.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		waitForEvent(m.events),
		waitForSave(m.saved),
	)
}

// context returns the key context of whatever has input focus.
func (m *Model) context() string {
	switch {
	case len(m.dialogs) > 0:
		if m.dialogs[0].dialog.Kind == ui.KindWarning {
			return contextWarning
		}
		return contextConfirm
	case m.prompt != nil:
		return contextPicker
	case m.editor != nil:
		return contextEditor
	case m.focusedWindow >= 0:
		return contextSticky
	case m.onDashboard:
		return contextDashboard
	default:
		return contextList
	}
}

// scope returns the current category name or coordinator.Dashboard.
func (m *Model) scope() string {
	if m.onDashboard || m.category == "" {
		return coordinator.Dashboard
	}
	return m.category.String()
}

// scopes is the order used by next/prev-category.
func scopes() []string {
	out := []string{coordinator.Dashboard}
	for _, c := range notes.FixedCategories {
		out = append(out, c.String())
	}
	return out
}
