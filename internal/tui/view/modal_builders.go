package view

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/javiermolinar/bangumi/internal/dateutil"
	"github.com/javiermolinar/bangumi/internal/epg"
)

// NewProgramDetailModel builds a program detail model. ch may be nil when the
// channel is no longer in the guide.
func NewProgramDetailModel(p epg.Program, ch *epg.Channel) ProgramDetailModel {
	channel := p.ChannelID
	if ch != nil {
		channel = strings.TrimSpace(ch.Number + " " + ch.Name)
	}

	genres := make([]string, 0, len(p.Genres))
	for _, g := range p.Genres {
		label := g.Major
		if g.Middle != "" {
			label += " / " + g.Middle
		}
		if label != "" && !slices.Contains(genres, label) {
			genres = append(genres, label)
		}
	}

	detail := make([][2]string, 0, len(p.Detail))
	for _, k := range slices.Sorted(maps.Keys(p.Detail)) {
		if v := strings.TrimSpace(p.Detail[k]); v != "" {
			detail = append(detail, [2]string{k, v})
		}
	}

	return ProgramDetailModel{
		Title:       p.Title,
		Channel:     channel,
		TimeRange:   dateutil.ClockRange(p.Start, p.End),
		DateLabel:   dateutil.DayLabel(p.Start),
		Duration:    FormatDuration(p.Duration()),
		Genres:      genres,
		Description: strings.TrimSpace(p.Description),
		Detail:      detail,
	}
}

// Summary renders the model as plain text for the clipboard.
func (m ProgramDetailModel) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s %s (%s) %s\n", m.Title, m.DateLabel, m.TimeRange, m.Duration, m.Channel)
	if len(m.Genres) > 0 {
		b.WriteString(strings.Join(m.Genres, ", ") + "\n")
	}
	if m.Description != "" {
		b.WriteString("\n" + m.Description + "\n")
	}
	for _, kv := range m.Detail {
		fmt.Fprintf(&b, "\n%s\n%s\n", kv[0], kv[1])
	}
	return strings.TrimRight(b.String(), "\n")
}
