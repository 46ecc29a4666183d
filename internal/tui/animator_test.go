package tui

import (
	"math"
	"testing"

	"github.com/javiermolinar/bangumi/internal/nav"
)

func TestAnimatorSnap(t *testing.T) {
	var a Animator
	s := nav.State{ScrollTarget: nav.Point{X: -22, Y: -12}, FocusTarget: nav.Rect{X: 22, Y: 12, W: 22, H: 6}}
	a.Snap(s)
	if a.Scroll != s.ScrollTarget || a.Focus != s.FocusTarget {
		t.Errorf("Snap() = %+v %+v, want targets", a.Scroll, a.Focus)
	}
	if a.Running() {
		t.Errorf("Running() = true after Snap")
	}
}

func TestAnimatorRetargetStartsOnce(t *testing.T) {
	var a Animator
	s := nav.State{ScrollTarget: nav.Point{Y: -30}}

	if cmd := a.Retarget(s); cmd == nil {
		t.Fatalf("Retarget() = nil, want a tick")
	}
	if cmd := a.Retarget(s); cmd != nil {
		t.Errorf("second Retarget() started another loop")
	}
}

func TestAnimatorRetargetSettledIsNoop(t *testing.T) {
	var a Animator
	if cmd := a.Retarget(nav.State{}); cmd != nil {
		t.Errorf("Retarget() = tick, want nil when already at the target")
	}
}

func TestAnimatorStepEasesMonotonically(t *testing.T) {
	var a Animator
	s := nav.State{ScrollTarget: nav.Point{Y: -100}, FocusTarget: nav.Rect{Y: 100, W: 22, H: 5}}
	a.Retarget(s)

	prev := a.Scroll.Y
	frames := 0
	for a.Running() {
		a.Step(animTickMsg{loop: a.loop}, s)
		frames++
		if a.Scroll.Y > prev {
			t.Fatalf("scroll moved away from the target: %v -> %v", prev, a.Scroll.Y)
		}
		prev = a.Scroll.Y
		if frames > 100 {
			t.Fatalf("animation did not settle")
		}
	}
	if a.Scroll != s.ScrollTarget || a.Focus != s.FocusTarget {
		t.Errorf("settled at %+v %+v, want targets", a.Scroll, a.Focus)
	}
	if frames < 2 {
		t.Errorf("frames = %d, want an eased animation", frames)
	}
}

func TestAnimatorDropsStaleTicks(t *testing.T) {
	var a Animator
	s := nav.State{ScrollTarget: nav.Point{Y: -100}}
	a.Retarget(s)
	stale := animTickMsg{loop: a.loop}

	// A snap while the first tick is in flight, then a new animation.
	a.Snap(nav.State{})
	if cmd := a.Step(stale, s); cmd != nil || a.Scroll.Y != 0 {
		t.Fatalf("Step() after Snap advanced: cmd=%v scroll=%v", cmd != nil, a.Scroll.Y)
	}
	if cmd := a.Retarget(s); cmd == nil {
		t.Fatal("Retarget() after Snap = nil, want a new loop")
	}

	if cmd := a.Step(stale, s); cmd != nil || a.Scroll.Y != 0 {
		t.Errorf("stale tick advanced the new loop: scroll=%v", a.Scroll.Y)
	}
	if cmd := a.Step(animTickMsg{loop: a.loop}, s); cmd == nil || a.Scroll.Y != ease(0, -100) {
		t.Errorf("current tick: scroll = %v, want one eased frame %v", a.Scroll.Y, ease(0, -100))
	}
}

func TestEase(t *testing.T) {
	tests := []struct {
		cur, target, want float64
	}{
		{0, 10, 4.5},
		{10, 10, 10},
		{9.98, 10, 10},
		{0, -2, -0.9},
	}
	for _, tt := range tests {
		if got := ease(tt.cur, tt.target); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ease(%v, %v) = %v, want %v", tt.cur, tt.target, got, tt.want)
		}
	}
}
