package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/bangumi/internal/nav"
	"github.com/javiermolinar/bangumi/internal/render"
	"github.com/javiermolinar/bangumi/internal/tui/view"
)

// View renders the tab bar, the guide and the footer, with any modal on top.
func (m Model) View() string {
	return view.Compose(m.screen(), view.Layers{
		Base:  m.renderAppContent(),
		Modal: m.renderModal(),
	}, modalLayer{bg: m.styles.ModalBgColor})
}

// screen is the full terminal area.
func (m Model) screen() view.Screen {
	return view.Screen{Width: m.width, Height: m.height, Bg: m.styles.Background()}
}

func (m Model) renderAppContent() string {
	guideH := m.guideHeight()
	if m.width <= 0 || guideH <= 0 {
		return "Terminal too small"
	}
	content := strings.Join([]string{
		m.renderTabBar(),
		m.renderGuide(guideH),
		m.renderFooter(),
	}, "\n")
	return m.screen().Fill(content)
}

func (m Model) renderTabBar() string {
	labels := make([]string, len(m.types))
	for i, t := range m.types {
		labels[i] = t.Label()
	}
	right := m.now().Format("Mon 1/2 15:04")
	if m.loading {
		right = m.spinner.View() + " " + right
	}
	return view.RenderTabBar(view.TabBarModel{
		Width:   m.width,
		Labels:  labels,
		Active:  m.typeIdx,
		Focused: m.mode == ModeTabs,
		Right:   right,
	}, view.TabBarStyles{
		Bar:     m.styles.TabBarStyle,
		Tab:     m.styles.TabStyle,
		Active:  m.styles.TabActiveStyle,
		Focused: m.styles.TabFocusedStyle,
	})
}

// renderGuide rasterizes the current frame into an h-row canvas.
func (m Model) renderGuide(h int) string {
	l := m.ctrl.Layout()
	switch {
	case l == nil && m.loading:
		return m.placeholder(h, "Loading guide...")
	case l == nil:
		return m.placeholder(h, "No guide data")
	case l.ChannelCount() == 0 && !m.loading:
		return m.placeholder(h, "No channels for "+m.layoutType.Label())
	}

	vp := nav.Size{W: float64(m.width), H: float64(h)}
	cmds := m.renderer.Render(render.Frame{
		Layout:   l,
		State:    m.ctrl.State(),
		Scroll:   m.anim.Scroll,
		Focus:    m.anim.Focus,
		Viewport: vp,
		Now:      m.now(),
	})
	c := NewCanvas(m.width, h, m.styles, m.styleCache)
	c.Draw(cmds, m.renderer.Clips(l, vp))
	return c.String()
}

func (m Model) placeholder(h int, text string) string {
	placed := lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center,
		m.styles.EmptyStyle.Render(text),
		lipgloss.WithWhitespaceBackground(m.styles.Background()))
	return view.Screen{Width: m.width, Height: h, Bg: m.styles.Background()}.Fill(placed)
}

func (m Model) renderFooter() string {
	status := m.help.ShortHelpView(m.keys.ShortHelp())
	statusStyle := lipgloss.NewStyle().Background(m.styles.Background())
	if m.statusMsg != "" {
		status = m.statusMsg
		statusStyle = m.styles.StatusStyle
		if m.statusErr {
			statusStyle = m.styles.StatusErrorStyle
		}
	}
	helpBlock := ""
	if m.help.ShowAll {
		helpBlock = m.help.FullHelpView(m.keys.FullHelp())
	}
	return view.RenderFooter(view.FooterModel{
		Width:       m.width,
		Height:      m.footerHeight(),
		HelpBlock:   helpBlock,
		StatusLine:  status,
		StatusStyle: statusStyle,
		Bg:          m.styles.Background(),
	})
}
