package reportfmt

import "deprecheck/internal/source"

// PrettyOpts configures human-readable output.
type PrettyOpts struct {
	Color   bool
	URLMode source.URLMode
	Width   int // total width, 0 - default 100
	Max     int // rows to print, 0 - all
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	Indent bool
	Max    int // обрезка вывода, не артефакта
}

// ShortOpts configures one-line-per-finding output.
type ShortOpts struct {
	URLMode source.URLMode
	Max     int
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
	Max            int // results to emit, 0 - all
}
