// Package epg defines the program guide data model, time conversion and gap filling.
package epg

import (
	"context"
	"strings"
	"time"
)

// BroadcastType identifies the delivery network of a channel.
type BroadcastType string

const (
	TypeTerrestrial BroadcastType = "GR"
	TypeBS          BroadcastType = "BS"
	TypeCS          BroadcastType = "CS"
	TypeBS4K        BroadcastType = "BS4K"
	TypeSKY         BroadcastType = "SKY"
)

// AllTypes returns every known broadcast type in tab order.
func AllTypes() []BroadcastType {
	return []BroadcastType{TypeTerrestrial, TypeBS, TypeCS, TypeBS4K, TypeSKY}
}

// Label returns the tab label for the broadcast type.
func (t BroadcastType) Label() string {
	if t == TypeTerrestrial {
		return "Terrestrial"
	}
	return string(t)
}

// IsValid reports whether t is a known broadcast type.
func (t BroadcastType) IsValid() bool {
	for _, known := range AllTypes() {
		if strings.EqualFold(string(known), string(t)) {
			return true
		}
	}
	return false
}

// ParseType normalizes a broadcast type string. Unknown values are returned upper-cased.
func ParseType(s string) BroadcastType {
	return BroadcastType(strings.ToUpper(strings.TrimSpace(s)))
}

// Channel is a broadcast channel. It is owned by the upstream source and read-only here.
type Channel struct {
	ID        string        `json:"id"`
	DisplayID string        `json:"display_channel_id"`
	Number    string        `json:"channel_number"`
	Type      BroadcastType `json:"type"`
	Name      string        `json:"name"`
	LogoURL   string        `json:"logo_url,omitempty"`
}

// Genre is an ARIB-style genre pair.
type Genre struct {
	Major  string `json:"major"`
	Middle string `json:"middle"`
}

// RawProgram is a program entry as delivered upstream. Times are unparsed.
type RawProgram struct {
	ID          string            `json:"id"`
	ChannelID   string            `json:"channel_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Detail      map[string]string `json:"detail,omitempty"`
	Genres      []Genre           `json:"genres,omitempty"`
	StartTime   string            `json:"start_time"`
	EndTime     string            `json:"end_time"`
	Duration    int               `json:"duration"` // seconds
}

// Program is a parsed guide entry. Synthetic entries are created only by Fill
// and must never be persisted or sent upstream.
type Program struct {
	ID          string
	ChannelID   string
	Title       string
	Description string
	Detail      map[string]string
	Genres      []Genre
	Start       time.Time
	End         time.Time
	Synthetic   bool
}

// Duration returns the program length.
func (p Program) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// MajorGenre returns the first genre's major category, or "".
func (p Program) MajorGenre() string {
	if len(p.Genres) == 0 {
		return ""
	}
	return p.Genres[0].Major
}

// Contains reports whether t falls within [Start, End).
func (p Program) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// ChannelPrograms pairs a channel with its raw upstream programs.
type ChannelPrograms struct {
	Channel  Channel      `json:"channel"`
	Programs []RawProgram `json:"programs"`
}

// ChannelSchedule pairs a channel with its gap-filled, time-ordered programs.
type ChannelSchedule struct {
	Channel  Channel
	Programs []Program
}

// Source supplies raw guide data for a broadcast type and time range.
type Source interface {
	FetchGuide(ctx context.Context, typ BroadcastType, start, end time.Time) ([]ChannelPrograms, error)
}

// Repository defines the storage interface for guide data.
type Repository interface {
	Source

	// UpsertChannel inserts or replaces a channel.
	UpsertChannel(ctx context.Context, ch Channel) error

	// UpsertPrograms inserts or replaces programs. Only upstream entries are accepted.
	UpsertPrograms(ctx context.Context, programs []RawProgram) error

	// ListChannels returns channels of the given type ordered by channel number.
	// An empty type lists every channel.
	ListChannels(ctx context.Context, typ BroadcastType) ([]Channel, error)

	// GetChannel returns a channel by id.
	GetChannel(ctx context.Context, id string) (*Channel, error)

	// ListPrograms returns raw programs of a channel overlapping [start, end).
	ListPrograms(ctx context.Context, channelID string, start, end time.Time) ([]RawProgram, error)

	// AvailableTypes returns the broadcast types that have at least one channel.
	AvailableTypes(ctx context.Context) ([]BroadcastType, error)

	// Close releases any resources held by the repository.
	Close() error
}
