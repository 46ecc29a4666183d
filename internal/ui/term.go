package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const defaultTermWidth = 80

// CLI text styles. color honors NO_COLOR and non-tty output on its own.
var (
	colorHeader = color.New(color.Bold)
	colorNow    = color.New(color.FgGreen, color.Bold) // airing program
	colorGenre  = color.New(color.FgCyan)
	colorMuted  = color.New(color.FgWhite, color.Faint) // synthetic rows, ids, counts
)

// termWidth is the stdout width, or defaultTermWidth when stdout is not a
// terminal.
func termWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultTermWidth
}

// DisableColor forces plain output.
func DisableColor() { color.NoColor = true }

func formatHeader(s string) string { return colorHeader.Sprint(s) }
func formatNow(s string) string    { return colorNow.Sprint(s) }
func formatGenre(s string) string  { return colorGenre.Sprint(s) }
func formatMuted(s string) string  { return colorMuted.Sprint(s) }
