package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/javiermolinar/bangumi/internal/config"
	"github.com/javiermolinar/bangumi/internal/epg"
	"github.com/javiermolinar/bangumi/internal/grid"
	"github.com/javiermolinar/bangumi/internal/jump"
	"github.com/javiermolinar/bangumi/internal/nav"
	"github.com/javiermolinar/bangumi/internal/render"
	"github.com/javiermolinar/bangumi/internal/tui/commands"
	"github.com/javiermolinar/bangumi/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeGuide  Mode = iota // keys drive the guide
	ModeTabs               // keys drive the broadcast-type tab bar
	ModeJump               // jump menu modal
	ModeDetail             // program detail modal
	ModeInit               // storage initialization prompt
)

func (m Mode) String() string {
	switch m {
	case ModeGuide:
		return "guide"
	case ModeTabs:
		return "tabs"
	case ModeJump:
		return "jump"
	case ModeDetail:
		return "detail"
	case ModeInit:
		return "init"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Screen rows outside the guide.
const (
	tabBarHeight   = 1
	fullHelpHeight = 4
)

// detailState is the program shown in the detail modal and the layout
// generation it was opened from.
type detailState struct {
	program    epg.Program
	channel    *epg.Channel
	generation uint64
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   epg.Repository
	config *config.Config
	logger *log.Logger
	now    func() time.Time

	// Guide engine
	store    *grid.Store
	builder  *grid.Builder
	ctrl     *nav.Controller
	renderer *render.Renderer
	anim     *Animator

	// Theme and styles
	theme      *theme.Theme
	styles     *Styles
	styleCache *StyleCache

	// Components
	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	// Broadcast-type tabs
	types      []epg.BroadcastType
	typeIdx    int
	layoutType epg.BroadcastType // type of the published layout

	// State
	mode    Mode
	loading bool
	jump    *jump.Menu
	detail  detailState

	initState InitState
	initError string

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusErr  bool
	statusTime time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithInitState sets the startup initialization state.
func WithInitState(state InitState) ModelOption {
	return func(m *Model) {
		m.initState = state
		if state.NeedsInit {
			m.mode = ModeInit
		}
	}
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) ModelOption {
	return func(m *Model) {
		m.logger = logger
	}
}

// New creates a new TUI model. repo may be nil while initialization is pending.
func New(repo epg.Repository, cfg *config.Config, opts ...ModelOption) Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.ShortSeparator = styles.HelpSepStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle
	h.Styles.FullSeparator = styles.HelpSepStyle
	h.Styles.Ellipsis = styles.HelpSepStyle

	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(styles.SpinnerStyle))

	m := Model{
		config:     cfg,
		logger:     log.New(io.Discard),
		now:        time.Now,
		store:      grid.NewStore(nil),
		renderer:   render.NewRenderer(render.TerminalMetrics(), render.TerminalMeasurer{}),
		anim:       &Animator{},
		theme:      t,
		styles:     styles,
		styleCache: NewStyleCache(),
		keys:       DefaultKeyMap(),
		help:       h,
		spinner:    sp,
		mode:       ModeGuide,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.ctrl = nav.NewController(m.store, m.now)
	if repo != nil {
		m.setRepo(repo)
		m.loading = !m.initState.NeedsInit
	}
	return m
}

// setRepo installs the repository and the builder reading from it.
func (m *Model) setRepo(repo epg.Repository) {
	m.repo = repo
	m.builder = grid.NewBuilder(repo, m.store, grid.BuilderConfig{
		Geometry:     m.config.TerminalGeometry(),
		WindowLead:   time.Duration(m.config.Guide.WindowLeadMinutes) * time.Minute,
		WindowLength: time.Duration(m.config.Guide.WindowLengthMinutes) * time.Minute,
		GapTitle:     m.config.Guide.GapEntryTitle,
		Now:          m.now,
	}, m.logger)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.initState.NeedsInit || m.repo == nil {
		return nil
	}
	return m.loadCmd()
}

// startLoading marks the model loading and returns loadCmd.
func (m *Model) startLoading() tea.Cmd {
	m.loading = true
	return m.loadCmd()
}

// loadCmd lists the available types and starts the clock.
func (m Model) loadCmd() tea.Cmd {
	return tea.Batch(
		commands.LoadTypes(m.repo, m.config.EnabledTypes()),
		commands.Clock(m.now()),
		m.spinner.Tick,
	)
}

// currentType returns the selected broadcast type.
func (m Model) currentType() (epg.BroadcastType, bool) {
	if m.typeIdx < 0 || m.typeIdx >= len(m.types) {
		return "", false
	}
	return m.types[m.typeIdx], true
}

// Run starts the TUI.
func Run(cfg *config.Config) error {
	return RunWithDebug(cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(cfg *config.Config, debug bool) error {
	logger, closer, err := NewLogger(cfg.Log, debug)
	if err != nil {
		return err
	}
	defer closer.Close()

	state, err := DetectInitState(cfg)
	if err != nil {
		return err
	}
	var repo epg.Repository
	if !state.NeedsInit {
		repo, err = OpenRepo(state.DBPath)
		if err != nil {
			return err
		}
	}

	model := New(repo, cfg, WithInitState(state), WithLogger(logger))
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if m, ok := finalModel.(Model); ok && m.repo != nil {
		if cerr := m.repo.Close(); cerr != nil {
			logger.Warn("closing database", "err", cerr)
		}
	}
	return err
}
