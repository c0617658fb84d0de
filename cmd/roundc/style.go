package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/lemonberrylabs/roundscript/pkg/parser"
)

var (
	colorError = lipgloss.Color("#EF4444") // Red
	colorOK    = lipgloss.Color("#10B981") // Emerald
	colorMuted = lipgloss.Color("#6B7280") // Gray
)

// palette holds the styles for one output stream. Styles only ever wrap
// single-line text: lipgloss pads multi-line blocks to a common width.
type palette struct {
	fail  lipgloss.Style
	ok    lipgloss.Style
	muted lipgloss.Style
	bold  lipgloss.Style
}

func newPalette(w io.Writer, color bool) palette {
	if !color {
		plain := lipgloss.NewStyle()
		return palette{fail: plain, ok: plain, muted: plain, bold: plain}
	}

	r := lipgloss.NewRenderer(w)
	return palette{
		fail:  r.NewStyle().Foreground(colorError).Bold(true),
		ok:    r.NewStyle().Foreground(colorOK).Bold(true),
		muted: r.NewStyle().Foreground(colorMuted),
		bold:  r.NewStyle().Bold(true),
	}
}

// reportError writes err for the named file. Parse errors get their
// diagnostic, with the quoted source line left unstyled.
func (p palette) reportError(w io.Writer, name string, err error) {
	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		fmt.Fprintf(w, "%s %s\n", p.fail.Render("error:"), err)
		return
	}

	fmt.Fprintf(w, "%s %s: %s\n", p.fail.Render("error:"), p.bold.Render(name), pe.Error())
	if pe.Context != "" {
		fmt.Fprintf(w, "  %s %s\n", p.muted.Render(fmt.Sprintf("%d |", pe.Line+1)), pe.Context)
	}
}
