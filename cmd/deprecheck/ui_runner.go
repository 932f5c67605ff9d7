package main

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"deprecheck/internal/audit"
	"deprecheck/internal/report"
	"deprecheck/internal/source"
	"deprecheck/internal/ui"
)

var errInterrupted = errors.New("audit interrupted")

// runAuditWithUI runs the audit behind a spinner and leaves the findings
// on screen until the user quits.
func runAuditWithUI(ctx context.Context, opts audit.Options, urlMode source.URLMode) (*audit.Result, error) {
	var res *audit.Result
	run := func() (report.Artifact, error) {
		r, err := audit.Run(ctx, opts)
		if err != nil {
			return report.Artifact{}, err
		}
		res = r
		return r.Artifact, nil
	}

	model := ui.NewFindingsModel("auditing deprecated API usage", urlMode, run)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	final, uiErr := program.Run()
	if uiErr != nil {
		return nil, uiErr
	}
	return browserOutcome(final, func() *audit.Result { return res })
}

// browserOutcome maps the final browser state to the audit result. A user
// who quits before the audit completes gets errInterrupted. result is read
// only once the browser has received the artifact.
func browserOutcome(final tea.Model, result func() *audit.Result) (*audit.Result, error) {
	artifact, err := ui.Artifact(final)
	if err != nil {
		return nil, err
	}
	if artifact == nil {
		return nil, errInterrupted
	}
	res := result()
	if res == nil {
		return nil, errInterrupted
	}
	return res, nil
}
