// Package report turns reconciled findings into the scored deprecations
// artifact consumed by renderers.
package report

import (
	"deprecheck/internal/reconcile"
	"deprecheck/internal/source"
)

const (
	// ID identifies the check in rendered output.
	ID = "deprecations"

	titlePass    = "Avoids deprecated APIs"
	titleFail    = "Uses deprecated APIs"
	description  = "Deprecated APIs will eventually be removed from the browser."
	tableType    = "table"
	valueTypeTxt = "text"

	// KeyValue and KeySource are the stable column keys of the details table.
	KeyValue  = "value"
	KeySource = "source"
)

// Heading declares one table column.
type Heading struct {
	Key       string `json:"key"`
	ValueType string `json:"valueType"`
	Label     string `json:"label"`
}

// Table is the details payload: two fixed columns, one row per finding.
type Table struct {
	Type     string              `json:"type"`
	Headings []Heading           `json:"headings"`
	Rows     []reconcile.Finding `json:"rows"`
}

// Artifact is the scored result of one deprecations check.
type Artifact struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Score        int    `json:"score"`
	DisplayValue string `json:"displayValue,omitempty"`
	Details      Table  `json:"details"`
}

// Passed reports whether the check found nothing.
func (a Artifact) Passed() bool {
	return a.Score == 1
}

// Headings returns the table columns in their fixed order.
func Headings() []Heading {
	return []Heading{
		{Key: KeyValue, ValueType: valueTypeTxt, Label: "Deprecation / Warning"},
		{Key: KeySource, ValueType: source.LocationType, Label: "Source"},
	}
}

// Build scores findings. It keeps row order and performs no sorting,
// grouping, or deduplication.
func Build(findings []reconcile.Finding) Artifact {
	rows := make([]reconcile.Finding, len(findings))
	copy(rows, findings)

	a := Artifact{
		ID:          ID,
		Title:       titlePass,
		Description: description,
		Score:       1,
		Details: Table{
			Type:     tableType,
			Headings: Headings(),
			Rows:     rows,
		},
	}
	if len(rows) > 0 {
		a.Title = titleFail
		a.Score = 0
		a.DisplayValue = DisplayValue(len(rows))
	}
	return a
}
