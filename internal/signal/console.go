package signal

// Source is the provenance tag of a console entry.
type Source string

const (
	SourceDeprecation Source = "deprecation"
	SourceConsoleAPI  Source = "console.log"
	SourceViolation   Source = "violation"
	SourceException   Source = "exception"
	SourceNetwork     Source = "network"
)

// ConsoleEntry is one legacy console log record.
type ConsoleEntry struct {
	Source       Source
	Level        string
	Text         string
	URL          string
	LineNumber   uint32
	ColumnNumber uint32 // 0-based
	Timestamp    float64
}

// IsDeprecation reports whether the entry was tagged as a deprecation
// message by the producer.
func (e ConsoleEntry) IsDeprecation() bool {
	return e.Source == SourceDeprecation
}

type consoleJSON struct {
	Source       string  `json:"source"`
	Level        string  `json:"level"`
	Text         string  `json:"text"`
	URL          string  `json:"url"`
	LineNumber   int64   `json:"lineNumber"`
	ColumnNumber int64   `json:"columnNumber"`
	Timestamp    float64 `json:"timestamp"`
}

func (j consoleJSON) entry(n *normalizer) ConsoleEntry {
	return ConsoleEntry{
		Source:       Source(j.Source),
		Level:        j.Level,
		Text:         j.Text,
		URL:          j.URL,
		LineNumber:   n.position("lineNumber", j.LineNumber),
		ColumnNumber: n.position("columnNumber", j.ColumnNumber),
		Timestamp:    j.Timestamp,
	}
}
