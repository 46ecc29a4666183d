package tui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/bangumi/internal/nav"
)

const (
	// frameInterval paces animation ticks.
	frameInterval = time.Second / 30
	// easeRate is the share of the remaining distance covered per frame.
	easeRate = 0.45
	// settleEpsilon snaps values this close to their target.
	settleEpsilon = 0.05
)

// animTickMsg advances the animation loop it was scheduled for by one frame.
type animTickMsg struct {
	loop uint64
}

func animTick(loop uint64) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return animTickMsg{loop: loop}
	})
}

// Animator owns the current scroll offset and focus rectangle and eases them
// toward the controller's targets. Only the render loop reads these values.
type Animator struct {
	Scroll nav.Point
	Focus  nav.Rect

	running bool
	loop    uint64 // id of the current tick chain
}

// Snap jumps straight to the targets of s. A tick still in flight is
// dropped by Step.
func (a *Animator) Snap(s nav.State) {
	a.Scroll = s.ScrollTarget
	a.Focus = s.FocusTarget
	a.running = false
}

// Retarget starts an animation toward s. It returns a tick command when a new
// animation loop has to be started, nil when one is already running or the
// values are already settled.
func (a *Animator) Retarget(s nav.State) tea.Cmd {
	if a.running || a.settled(s) {
		return nil
	}
	a.running = true
	a.loop++
	return animTick(a.loop)
}

// Step advances one frame toward s. It returns the next tick command, or nil
// once every value has settled. Ticks from a stopped or replaced loop are
// ignored, so only one chain ever drives the easing.
func (a *Animator) Step(tick animTickMsg, s nav.State) tea.Cmd {
	if !a.running || tick.loop != a.loop {
		return nil
	}
	a.Scroll.X = ease(a.Scroll.X, s.ScrollTarget.X)
	a.Scroll.Y = ease(a.Scroll.Y, s.ScrollTarget.Y)
	a.Focus.X = ease(a.Focus.X, s.FocusTarget.X)
	a.Focus.Y = ease(a.Focus.Y, s.FocusTarget.Y)
	a.Focus.W = ease(a.Focus.W, s.FocusTarget.W)
	a.Focus.H = ease(a.Focus.H, s.FocusTarget.H)
	if a.settled(s) {
		a.running = false
		return nil
	}
	return animTick(a.loop)
}

// Running reports whether an animation loop is active.
func (a *Animator) Running() bool {
	return a.running
}

func (a *Animator) settled(s nav.State) bool {
	return a.Scroll == s.ScrollTarget && a.Focus == s.FocusTarget
}

func ease(cur, target float64) float64 {
	next := cur + (target-cur)*easeRate
	if math.Abs(target-next) < settleEpsilon {
		return target
	}
	return next
}
