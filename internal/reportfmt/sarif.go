package reportfmt

import (
	"encoding/json"
	"io"

	"fortio.org/safecast"

	"deprecheck/internal/report"
	"deprecheck/internal/source"
)

const sarifSchema = "https://json.schemastore.org/sarif-2.1.0.json"

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
	FullDescription  sarifMessage `json:"fullDescription"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID           string          `json:"ruleId"`
	Level            string          `json:"level"`
	Message          sarifMessage    `json:"message"`
	Locations        []sarifLocation `json:"locations"`
	RelatedLocations []sarifLocation `json:"relatedLocations,omitempty"`
}

type sarifLocation struct {
	ID               int                   `json:"id,omitempty"`
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
	Message          *sarifMessage         `json:"message,omitempty"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
}

// Sarif writes the artifact as a SARIF 2.1.0 log with one warning result
// per finding. Regions are 1-based; the original position, when known, is
// attached as a related location.
func Sarif(w io.Writer, a report.Artifact, meta SarifRunMeta) error {
	rows := limitRows(a, meta.Max)
	results := make([]sarifResult, 0, len(rows))
	for _, f := range rows {
		msg := f.Value
		if msg == "" {
			msg = a.Title
		}
		res := sarifResult{
			RuleID:    a.ID,
			Level:     "warning",
			Message:   sarifMessage{Text: msg},
			Locations: []sarifLocation{{PhysicalLocation: physical(f.Source.Deployed())}},
		}
		if f.Source.Original != nil {
			res.RelatedLocations = []sarifLocation{{
				ID:               1,
				PhysicalLocation: physical(*f.Source.Original),
				Message:          &sarifMessage{Text: "original source"},
			}}
		}
		results = append(results, res)
	}

	log := sarifLog{
		Schema:  sarifSchema,
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:           meta.ToolName,
				Version:        meta.ToolVersion,
				InformationURI: meta.InformationURI,
				Rules: []sarifRule{{
					ID:               a.ID,
					Name:             "DeprecatedAPIUsage",
					ShortDescription: sarifMessage{Text: "Uses deprecated APIs"},
					FullDescription:  sarifMessage{Text: a.Description},
				}},
			}},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}

func physical(p source.Position) sarifPhysicalLocation {
	return sarifPhysicalLocation{
		ArtifactLocation: sarifArtifactLocation{URI: p.URL},
		Region:           sarifRegion{StartLine: oneBased(p.Line), StartColumn: oneBased(p.Column)},
	}
}

func oneBased(v uint32) int {
	n, err := safecast.Conv[int](v)
	if err != nil {
		return 1
	}
	return n + 1
}
