package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/bangumi/internal/dateutil"
	"github.com/javiermolinar/bangumi/internal/epg"
	"github.com/javiermolinar/bangumi/internal/jump"
	"github.com/javiermolinar/bangumi/internal/nav"
	"github.com/javiermolinar/bangumi/internal/tui/commands"
	"github.com/javiermolinar/bangumi/internal/tui/view"
)

const (
	// pageMinutes is how far page up/down travel.
	pageMinutes = 180
	// maxPageSteps bounds the moves a single page key may repeat.
	maxPageSteps = 64

	statusDuration      = 3 * time.Second
	errorStatusDuration = 5 * time.Second
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		logKeyPress(m.logger, m.mode, msg)
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case animTickMsg:
		return m, m.anim.Step(msg, m.ctrl.State())

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case commands.TypesLoadedMsg:
		m.types = msg.Types
		m.typeIdx = 0
		for i, t := range m.types {
			if t == epg.ParseType(m.config.Guide.DefaultType) {
				m.typeIdx = i
			}
		}
		typ, ok := m.currentType()
		if !ok {
			m.loading = false
			cmd := m.setStatus("No channels. Import a guide with: bangumi import <file.json>", false)
			return m, cmd
		}
		m.logger.Debug("types loaded", "types", m.types, "current", typ)
		return m, commands.Rebuild(m.builder, typ, true)

	case commands.LayoutPublishedMsg:
		return m.handleLayoutPublished(msg)

	case commands.ClockMsg:
		cmds := []tea.Cmd{commands.Clock(time.Time(msg))}
		if cmd := m.rebuildIfWindowMoved(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case commands.ErrMsg:
		m.loading = false
		m.logger.Error("command failed", "err", msg.Err)
		cmd := m.setStatus(fmt.Sprintf("Error: %v", msg.Err), true)
		return m, cmd

	case commands.StatusMsgCmd:
		cmd := m.setStatus(msg.Msg, false)
		return m, cmd

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleLayoutPublished(msg commands.LayoutPublishedMsg) (tea.Model, tea.Cmd) {
	typ, ok := m.currentType()
	if ok && msg.Type != typ {
		// The tab changed while this build ran; the store now holds the wrong type.
		m.logger.Debug("stale layout", "type", msg.Type, "want", typ)
		return m, commands.Rebuild(m.builder, typ, true)
	}
	m.loading = false
	m.layoutType = msg.Type

	ev := m.ctrl.Refresh(msg.Reset)
	cmd := m.follow(ev, msg.Reset)
	if msg.Channels == 0 {
		cmd = tea.Batch(cmd, m.setStatus("No channels for "+msg.Type.Label(), false))
	}
	return m, cmd
}

// rebuildIfWindowMoved rebuilds the current type once the window base a
// rebuild would use has passed the published one.
func (m *Model) rebuildIfWindowMoved() tea.Cmd {
	l := m.store.Load()
	typ, ok := m.currentType()
	if l == nil || !ok || m.builder == nil || m.loading {
		return nil
	}
	if !m.builder.Window().Base.After(l.Window.Base) {
		return nil
	}
	m.logger.Debug("window moved", "from", l.Window.Base, "to", m.builder.Window().Base)
	m.loading = true
	return tea.Batch(commands.Rebuild(m.builder, typ, false), m.spinner.Tick)
}

// guideHeight returns the rows left for the guide.
func (m Model) guideHeight() int {
	return m.height - tabBarHeight - m.footerHeight()
}

func (m Model) footerHeight() int {
	if m.help.ShowAll {
		return 1 + fullHelpHeight
	}
	return 1
}

// resize hands the guide area to the controller and snaps to the new targets.
func (m *Model) resize() {
	ev := m.ctrl.Resize(float64(m.width), float64(max(m.guideHeight(), 0)))
	m.follow(ev, true)
}

// follow logs ev and moves the animation toward the controller's targets.
func (m *Model) follow(ev nav.Event, snap bool) tea.Cmd {
	logNavEvent(m.logger, ev)
	switch ev.Kind {
	case nav.EventNone, nav.EventBoundary, nav.EventProgramSelected:
		return nil
	}
	if snap {
		m.anim.Snap(m.ctrl.State())
		return nil
	}
	return m.anim.Retarget(m.ctrl.State())
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	d := statusDuration
	if isErr {
		d = errorStatusDuration
	}
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusTime = m.now().Add(d)
	return commands.ClearStatusAfter(d)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch m.mode {
	case ModeInit:
		return m.handleInitKey(msg)
	case ModeJump:
		return m.handleJumpKey(msg)
	case ModeDetail:
		return m.handleDetailKey(msg)
	case ModeTabs:
		return m.handleTabsKey(msg)
	default:
		return m.handleGuideKey(msg)
	}
}

func (m Model) handleGuideKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		cmd := m.move(nav.Up)
		return m, cmd
	case key.Matches(msg, m.keys.Down):
		cmd := m.move(nav.Down)
		return m, cmd
	case key.Matches(msg, m.keys.Left):
		cmd := m.move(nav.Left)
		return m, cmd
	case key.Matches(msg, m.keys.Right):
		cmd := m.move(nav.Right)
		return m, cmd
	case key.Matches(msg, m.keys.PageUp):
		cmd := m.page(nav.Up)
		return m, cmd
	case key.Matches(msg, m.keys.PageDown):
		cmd := m.page(nav.Down)
		return m, cmd
	case key.Matches(msg, m.keys.Now):
		cmd := m.follow(m.ctrl.BackToNow(), false)
		return m, cmd
	case key.Matches(msg, m.keys.Select):
		return m.openDetail()
	case key.Matches(msg, m.keys.Jump):
		if m.ctrl.Layout() == nil {
			return m, nil
		}
		m.jump = jump.New(m.now(), jump.DefaultDays)
		m.mode = ModeJump
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		cmd := m.switchType(1)
		return m, cmd
	case key.Matches(msg, m.keys.PrevTab):
		cmd := m.switchType(-1)
		return m, cmd
	case key.Matches(msg, m.keys.Refresh):
		cmd := m.reload()
		return m, cmd
	case key.Matches(msg, m.keys.Copy):
		cmd := m.copyFocused()
		return m, cmd
	}
	return m, nil
}

// move applies a directional input. An upward boundary hands focus to the tab bar.
func (m *Model) move(d nav.Direction) tea.Cmd {
	ev := m.ctrl.Move(d)
	if ev.Kind == nav.EventBoundary {
		logNavEvent(m.logger, ev)
		switch d {
		case nav.Up:
			m.mode = ModeTabs
		case nav.Down:
			return m.setStatus("End of guide", false)
		}
		return nil
	}
	return m.follow(ev, false)
}

// page repeats a vertical move until pageMinutes are covered, keeping the
// focused column.
func (m *Model) page(d nav.Direction) tea.Cmd {
	start := m.ctrl.State().Minute
	var last nav.Event
	for range maxPageSteps {
		ev := m.ctrl.Move(d)
		if ev.Kind != nav.EventFocusChanged {
			break
		}
		last = ev
		if moved := m.ctrl.State().Minute - start; moved >= pageMinutes || -moved >= pageMinutes {
			break
		}
	}
	return m.follow(last, false)
}

func (m *Model) switchType(delta int) tea.Cmd {
	n := len(m.types)
	if n < 2 {
		return nil
	}
	m.typeIdx = ((m.typeIdx+delta)%n + n) % n
	typ := m.types[m.typeIdx]
	m.logger.Debug("switch type", "type", typ)
	m.loading = true
	return tea.Batch(commands.Rebuild(m.builder, typ, true), m.spinner.Tick)
}

func (m *Model) reload() tea.Cmd {
	typ, ok := m.currentType()
	if !ok || m.builder == nil {
		return nil
	}
	m.loading = true
	return tea.Batch(commands.Rebuild(m.builder, typ, false), m.spinner.Tick)
}

// focusedChannel returns the channel of the focused column.
func (m Model) focusedChannel() *epg.Channel {
	l := m.ctrl.Layout()
	col := m.ctrl.State().Column
	if l == nil || col < 0 || col >= l.ChannelCount() {
		return nil
	}
	ch := l.Columns[col].Channel
	return &ch
}

func (m *Model) copyFocused() tea.Cmd {
	p, ok := m.ctrl.State().CurrentProgram()
	if !ok {
		return m.setStatus("Nothing to copy", false)
	}
	return commands.CopyToClipboard(view.NewProgramDetailModel(p, m.focusedChannel()).Summary())
}

func (m Model) openDetail() (tea.Model, tea.Cmd) {
	ev := m.ctrl.Activate()
	logNavEvent(m.logger, ev)
	if ev.Kind != nav.EventProgramSelected {
		cmd := m.setStatus("No program information", false)
		return m, cmd
	}
	m.detail = detailState{
		program:    ev.Program,
		channel:    m.focusedChannel(),
		generation: m.ctrl.State().Generation,
	}
	m.mode = ModeDetail
	return m, nil
}

func (m Model) handleTabsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.PrevTab):
		cmd := m.switchType(-1)
		return m, cmd
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.NextTab):
		cmd := m.switchType(1)
		return m, cmd
	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Back):
		m.mode = ModeGuide
	}
	return m, nil
}

func (m Model) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.closeJump()
	case key.Matches(msg, m.keys.Up):
		m.jump.Up()
	case key.Matches(msg, m.keys.Down):
		m.jump.Down()
	case key.Matches(msg, m.keys.Left):
		m.jump.Left()
	case key.Matches(msg, m.keys.Right):
		m.jump.Right()
	case key.Matches(msg, m.keys.Now):
		m.closeJump()
		cmd := m.follow(m.ctrl.BackToNow(), false)
		return m, cmd
	case key.Matches(msg, m.keys.Select):
		t, err := m.jump.Select()
		if err != nil {
			cmd := m.setStatus(err.Error(), true)
			return m, cmd
		}
		m.closeJump()
		cmd := tea.Batch(
			m.follow(m.ctrl.JumpTo(t), false),
			m.setStatus("Jumped to "+dateutil.DayLabel(t)+" "+t.Format("15:04"), false),
		)
		return m, cmd
	}
	return m, nil
}

func (m *Model) closeJump() {
	m.jump = nil
	m.mode = ModeGuide
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Quit):
		cmd := m.closeDetail()
		return m, cmd
	case key.Matches(msg, m.keys.Copy):
		return m, commands.CopyToClipboard(view.NewProgramDetailModel(m.detail.program, m.detail.channel).Summary())
	}
	return m, nil
}

// closeDetail returns to the guide. If a new layout was published while the
// modal was open, focus is restored to the program's channel and start.
func (m *Model) closeDetail() tea.Cmd {
	d := m.detail
	m.detail = detailState{}
	m.mode = ModeGuide
	if m.store.Generation() == d.generation {
		return nil
	}
	return m.follow(m.ctrl.Restore(d.program.ChannelID, d.program.Start.Format(time.RFC3339)), true)
}

func (m Model) handleInitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		if err := m.initializeStorage(); err != nil {
			m.initError = err.Error()
			m.logger.Error("initialization failed", "err", err)
			return m, nil
		}
		m.initError = ""
		m.mode = ModeGuide
		cmd := m.startLoading()
		return m, cmd
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}
