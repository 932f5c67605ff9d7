package signal

// Issue is one structured deprecation issue.
type Issue struct {
	Message      string
	Type         string // deprecation type token, informational
	ScriptID     string
	URL          string
	LineNumber   uint32
	ColumnNumber uint32 // 1-based
}

// issueJSON mirrors the DevTools deprecationIssue payload.
type issueJSON struct {
	Message            string `json:"message"`
	Type               string `json:"type"`
	SourceCodeLocation struct {
		ScriptID     string `json:"scriptId"`
		URL          string `json:"url"`
		LineNumber   int64  `json:"lineNumber"`
		ColumnNumber int64  `json:"columnNumber"`
	} `json:"sourceCodeLocation"`
}

func (j issueJSON) issue(n *normalizer) Issue {
	loc := j.SourceCodeLocation
	return Issue{
		Message:      j.Message,
		Type:         j.Type,
		ScriptID:     loc.ScriptID,
		URL:          loc.URL,
		LineNumber:   n.position("lineNumber", loc.LineNumber),
		ColumnNumber: n.position("columnNumber", loc.ColumnNumber),
	}
}
