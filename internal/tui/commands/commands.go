// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/bangumi/internal/epg"
	"github.com/javiermolinar/bangumi/internal/grid"
)

// RebuildTimeout bounds a single guide rebuild.
const RebuildTimeout = 30 * time.Second

// TypesLoadedMsg is sent when the broadcast types with channels are known.
type TypesLoadedMsg struct {
	Types []epg.BroadcastType
}

// LayoutPublishedMsg is sent when a rebuild published a new layout.
type LayoutPublishedMsg struct {
	Type       epg.BroadcastType
	Generation uint64
	Channels   int
	// Reset asks the controller to focus now instead of keeping the focused instant.
	Reset bool
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// ClockMsg is sent periodically so the now line and past cells advance.
type ClockMsg time.Time

// TypeLister reports which broadcast types have channels.
type TypeLister interface {
	AvailableTypes(ctx context.Context) ([]epg.BroadcastType, error)
}

// LoadTypes lists the broadcast types that have channels, keeping only
// enabled ones in enabled order.
func LoadTypes(src TypeLister, enabled []epg.BroadcastType) tea.Cmd {
	return func() tea.Msg {
		available, err := src.AvailableTypes(context.Background())
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("listing broadcast types: %w", err)}
		}
		types := make([]epg.BroadcastType, 0, len(enabled))
		for _, t := range enabled {
			if slices.Contains(available, t) {
				types = append(types, t)
			}
		}
		return TypesLoadedMsg{Types: types}
	}
}

// Rebuild fetches the guide for typ and publishes a new layout off the
// interaction goroutine.
func Rebuild(b *grid.Builder, typ epg.BroadcastType, reset bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), RebuildTimeout)
		defer cancel()

		l, err := b.Rebuild(ctx, typ)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return LayoutPublishedMsg{
			Type:       typ,
			Generation: l.Generation,
			Channels:   l.ChannelCount(),
			Reset:      reset,
		}
	}
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: "Copied to clipboard"}
	}
}

// ClearStatusAfter clears the status message after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// Clock ticks at the next whole minute.
func Clock(now time.Time) tea.Cmd {
	next := now.Truncate(time.Minute).Add(time.Minute)
	return tea.Tick(next.Sub(now), func(t time.Time) tea.Msg {
		return ClockMsg(t)
	})
}
