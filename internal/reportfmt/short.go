package reportfmt

import (
	"fmt"
	"io"
	"strings"

	"deprecheck/internal/report"
)

// Short writes one line per finding:
//
//	warning deprecations <url>:<line>:<col> [-> <orig>:<line>:<col>] <message>
//
// Newlines inside messages are folded into spaces.
func Short(w io.Writer, a report.Artifact, opts ShortOpts) error {
	for _, f := range limitRows(a, opts.Max) {
		line := fmt.Sprintf("warning %s %s", report.ID, FormatLocation(f.Source, opts.URLMode))
		if orig := FormatOriginal(f.Source, opts.URLMode); orig != "" {
			line += " -> " + orig
		}
		if msg := foldLines(f.Value); msg != "" {
			line += " " + msg
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func foldLines(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
