package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/bangumi/internal/dateutil"
	"github.com/javiermolinar/bangumi/internal/epg"
	"github.com/javiermolinar/bangumi/internal/tui/view"
)

// Schedule row layout in cells.
const (
	scheduleRangeWidth = 17 // "23:30-1/2 01:00" plus slack
	scheduleMinTitle   = 12
)

func (a *App) scheduleCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "schedule [channel-id]",
		Short: "Print a channel's schedule",
		Long: `Print the gap-filled schedule of a channel.

Without --date the whole guide window is printed. Holes in the upstream
schedule are shown as dimmed filler entries.`,
		Example: `  bangumi schedule gr-1
  bangumi schedule gr-1 --date=tomorrow
  bangumi schedule bs-101 --date=2025-01-15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()
			now := time.Now()

			w, err := scheduleWindow(a.config.Guide.WindowLeadMinutes, a.config.Guide.WindowLengthMinutes, date, now)
			if err != nil {
				return err
			}
			ch, err := a.repo.GetChannel(ctx, args[0])
			if err != nil {
				return err
			}
			raw, err := a.repo.ListPrograms(ctx, ch.ID, w.Base, w.Limit)
			if err != nil {
				return err
			}

			programs := epg.NewFiller(a.config.Guide.GapEntryTitle).Fill(ch.ID, raw, w.Base, w.Limit)
			printSchedule(cmd.OutOrStdout(), *ch, programs, now, termWidth())
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, today, tomorrow or a weekday name)")

	return cmd
}

// scheduleWindow returns the single day named by date, or the guide window
// at now when date is empty.
func scheduleWindow(leadMinutes, lengthMinutes int, date string, now time.Time) (epg.Window, error) {
	if date == "" {
		return epg.WindowFor(now,
			time.Duration(leadMinutes)*time.Minute,
			time.Duration(lengthMinutes)*time.Minute), nil
	}
	day, err := dateutil.ParseRelativeDate(date, now)
	if err != nil {
		return epg.Window{}, err
	}
	return epg.Window{Base: day, Limit: day.AddDate(0, 0, 1)}, nil
}

// printSchedule writes programs grouped by day. Filler entries are dimmed and
// the program airing at now is highlighted.
func printSchedule(w io.Writer, ch epg.Channel, programs []epg.Program, now time.Time, width int) {
	fmt.Fprintln(w, formatHeader(fmt.Sprintf("%s %s", ch.Number, ch.Name))+" "+formatMuted("("+ch.Type.Label()+")"))
	if len(programs) == 0 {
		fmt.Fprintln(w, "  No programs in this window.")
		return
	}

	titleWidth := max(width-scheduleRangeWidth-16, scheduleMinTitle)
	var day time.Time
	for _, p := range programs {
		if d := dateutil.TruncateToDay(p.Start); !d.Equal(day) {
			fmt.Fprintln(w)
			fmt.Fprintln(w, formatHeader(dateutil.DayLabel(d)))
			day = d
		}
		fmt.Fprintln(w, scheduleRow(p, now, titleWidth))
	}
}

// scheduleRow formats one program line.
func scheduleRow(p epg.Program, now time.Time, titleWidth int) string {
	marker := "  "
	if p.Contains(now) {
		marker = "▶ "
	}
	timeRange := runewidth.FillRight(dateutil.ClockRange(p.Start, p.End), scheduleRangeWidth)
	title := runewidth.FillRight(runewidth.Truncate(p.Title, titleWidth, "…"), titleWidth)
	duration := fmt.Sprintf("%6s", view.FormatDuration(p.Duration()))

	if p.Synthetic {
		return formatMuted(marker + timeRange + title + duration)
	}
	if p.Contains(now) {
		title = formatNow(title)
	}
	line := marker + timeRange + title + formatMuted(duration)
	if g := p.MajorGenre(); g != "" {
		line += "  " + formatGenre(g)
	}
	return line
}
