package reportfmt

import (
	"encoding/json"
	"io"

	"deprecheck/internal/report"
)

// JSON writes the artifact as JSON. Max truncates the rendered rows only;
// score and display value still describe the full artifact.
func JSON(w io.Writer, a report.Artifact, opts JSONOpts) error {
	a.Details.Rows = limitRows(a, opts.Max)
	enc := json.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(a)
}
