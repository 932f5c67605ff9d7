package reportfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"deprecheck/internal/report"
)

const defaultWidth = 100

// Pretty writes a header line with the verdict followed by a two-column
// table. Original positions go on a continuation line under the source.
func Pretty(w io.Writer, a report.Artifact, opts PrettyOpts) error {
	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)
	head := color.New(color.Bold)
	for _, c := range []*color.Color{pass, fail, dim, head} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	if a.Passed() {
		_, err := fmt.Fprintf(w, "%s %s\n", pass.Sprint("PASS"), a.Title)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s %s (%s)\n", fail.Sprint("FAIL"), a.Title, a.DisplayValue); err != nil {
		return err
	}

	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	msgWidth := width * 3 / 5
	headings := a.Details.Headings

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(head.Sprint(runewidth.FillRight(headings[0].Label, msgWidth)))
	b.WriteString("  ")
	b.WriteString(head.Sprint(headings[1].Label))
	b.WriteByte('\n')

	rows := limitRows(a, opts.Max)
	for _, f := range rows {
		msg := foldLines(f.Value)
		if msg == "" {
			msg = "-"
		}
		msg = runewidth.Truncate(msg, msgWidth, "...")
		b.WriteString("  ")
		b.WriteString(runewidth.FillRight(msg, msgWidth))
		b.WriteString("  ")
		b.WriteString(FormatLocation(f.Source, opts.URLMode))
		b.WriteByte('\n')
		if orig := FormatOriginal(f.Source, opts.URLMode); orig != "" {
			b.WriteString("  ")
			b.WriteString(strings.Repeat(" ", msgWidth))
			b.WriteString("  ")
			b.WriteString(dim.Sprint("↳ " + orig))
			b.WriteByte('\n')
		}
	}
	if hidden := len(a.Details.Rows) - len(rows); hidden > 0 {
		fmt.Fprintf(&b, "  %s\n", dim.Sprintf("... %d more not shown", hidden))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
