package epg

import (
	"fmt"
	"sort"
	"time"
)

// DefaultGapTitle is the title given to synthetic entries when none is configured.
const DefaultGapTitle = "No information"

// Filler turns raw channel programs into a gapless sequence over a window.
type Filler struct {
	GapTitle string
}

// NewFiller returns a filler that labels synthetic entries with gapTitle.
func NewFiller(gapTitle string) Filler {
	if gapTitle == "" {
		gapTitle = DefaultGapTitle
	}
	return Filler{GapTitle: gapTitle}
}

// Fill returns the programs of channelID tiling [start, end). Raw entries with
// unparseable times or a non-positive duration are dropped. Overlapping real
// entries are passed through as-is.
func (f Filler) Fill(channelID string, raw []RawProgram, start, end time.Time) []Program {
	parsed := make([]Program, 0, len(raw))
	for _, r := range raw {
		p, ok := Parse(r)
		if !ok {
			continue
		}
		if p.ChannelID == "" {
			p.ChannelID = channelID
		}
		parsed = append(parsed, p)
	}
	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].Start.Before(parsed[j].Start)
	})

	out := make([]Program, 0, 2*len(parsed)+1)
	covered := start
	for _, p := range parsed {
		if p.Start.After(covered) {
			out = append(out, f.gap(channelID, covered, p.Start))
		}
		out = append(out, p)
		// A nested overlap must not pull the cursor backwards.
		if p.End.After(covered) {
			covered = p.End
		}
	}
	if end.After(covered) {
		out = append(out, f.gap(channelID, covered, end))
	}
	return out
}

// FillSchedule fills a channel's raw programs over the window.
func (f Filler) FillSchedule(cp ChannelPrograms, w Window) ChannelSchedule {
	return ChannelSchedule{
		Channel:  cp.Channel,
		Programs: f.Fill(cp.Channel.ID, cp.Programs, w.Base, w.Limit),
	}
}

func (f Filler) gap(channelID string, start, end time.Time) Program {
	return Program{
		ID:        SyntheticID(channelID, start),
		ChannelID: channelID,
		Title:     f.GapTitle,
		Start:     start,
		End:       end,
		Synthetic: true,
	}
}

// SyntheticID returns the id given to a gap entry starting at start.
func SyntheticID(channelID string, start time.Time) string {
	return fmt.Sprintf("empty_%s_%d", channelID, start.Unix())
}

// Parse converts a raw upstream entry. It reports false when either time is
// unreadable or the entry does not end after it starts.
func Parse(r RawProgram) (Program, bool) {
	start, ok := ParseTime(r.StartTime)
	if !ok {
		return Program{}, false
	}
	end, ok := ParseTime(r.EndTime)
	if !ok {
		if r.Duration <= 0 {
			return Program{}, false
		}
		end = start.Add(time.Duration(r.Duration) * time.Second)
	}
	if !end.After(start) {
		return Program{}, false
	}
	return Program{
		ID:          r.ID,
		ChannelID:   r.ChannelID,
		Title:       r.Title,
		Description: r.Description,
		Detail:      r.Detail,
		Genres:      r.Genres,
		Start:       start,
		End:         end,
	}, true
}

// ToRaw converts a real program back to its upstream form. Synthetic programs report false.
func ToRaw(p Program) (RawProgram, bool) {
	if p.Synthetic {
		return RawProgram{}, false
	}
	return RawProgram{
		ID:          p.ID,
		ChannelID:   p.ChannelID,
		Title:       p.Title,
		Description: p.Description,
		Detail:      p.Detail,
		Genres:      p.Genres,
		StartTime:   p.Start.Format(time.RFC3339),
		EndTime:     p.End.Format(time.RFC3339),
		Duration:    int(p.Duration() / time.Second),
	}, true
}
