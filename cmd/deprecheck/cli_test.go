package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"deprecheck/internal/audit"
	"deprecheck/internal/source"
	"deprecheck/internal/ui"
)

const oneIssue = `[{"message": "Deprecated API X",
  "sourceCodeLocation": {"scriptId": "S1", "url": "a.js", "lineNumber": 5, "columnNumber": 10}}]`

// runCLI executes a fresh command tree from a scratch working directory so
// that no deprecheck.toml of the host is discovered.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestAuditFailOnFindings(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	issues := filepath.Join(dir, "issues.json")
	writeFile(t, issues, oneIssue)

	base := []string{"audit", "--issues", issues, "--format", "short", "--ui", "off", "--color", "off"}

	out, _, err := runCLI(t, base...)
	if err != nil {
		t.Fatalf("audit without --fail-on-findings: %v", err)
	}
	if want := "warning deprecations a.js:5:9 Deprecated API X"; !strings.Contains(out, want) {
		t.Fatalf("output missing %q:\n%s", want, out)
	}

	out, _, err = runCLI(t, append(base, "--fail-on-findings")...)
	if err == nil || err.Error() != "deprecations: 1 warning found" {
		t.Fatalf("err = %v, want findings failure", err)
	}
	if !strings.Contains(out, "Deprecated API X") {
		t.Fatalf("findings must still be rendered before failing:\n%s", out)
	}
}

func TestAuditEmptyArtifactPasses(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	empty := filepath.Join(dir, "issues.json")
	writeFile(t, empty, "[]")

	out, _, err := runCLI(t, "audit", "--issues", empty, "--format", "json", "--ui", "off", "--fail-on-findings")
	if err != nil {
		t.Fatalf("audit of an empty artifact: %v", err)
	}
	if !strings.Contains(out, `"score": 1`) {
		t.Fatalf("expected passing score:\n%s", out)
	}
}

func TestAuditNothingToAudit(t *testing.T) {
	chdir(t, t.TempDir())

	_, _, err := runCLI(t, "audit", "--ui", "off")
	if !errors.Is(err, errNothingToAudit) {
		t.Fatalf("err = %v, want errNothingToAudit", err)
	}
	if !strings.Contains(err.Error(), `"[]"`) {
		t.Fatalf("error should suggest an empty artifact: %v", err)
	}
}

func TestAuditFailureDumpsRing(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	issues := filepath.Join(dir, "issues.json")
	writeFile(t, issues, oneIssue)
	missing := filepath.Join(dir, "missing.json")

	out, errOut, err := runCLI(t, "audit", "--issues", issues, "--bundles", missing, "--ui", "off",
		"--trace-level", "phase", "--trace-mode", "ring")
	if err == nil || !strings.Contains(err.Error(), "failed to fetch bundles") {
		t.Fatalf("err = %v, want bundle fetch failure", err)
	}
	if out != "" {
		t.Fatalf("failed run must not render an artifact:\n%s", out)
	}
	for _, want := range []string{"--- trace (most recent events) ---", "audit", "bundles.fetch", "failed"} {
		if !strings.Contains(errOut, want) {
			t.Fatalf("stderr missing %q:\n%s", want, errOut)
		}
	}
}

func TestAuditFailureWithoutRingHasNoDump(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	issues := filepath.Join(dir, "issues.json")
	writeFile(t, issues, oneIssue)

	_, errOut, err := runCLI(t, "audit", "--issues", issues, "--bundles", filepath.Join(dir, "missing.json"),
		"--ui", "off", "--trace-level", "phase", "--trace-mode", "stream", "--trace", filepath.Join(dir, "trace.log"))
	if err == nil {
		t.Fatalf("expected bundle fetch failure")
	}
	if strings.Contains(errOut, "--- trace") {
		t.Fatalf("stream-only tracing must not print a dump header:\n%s", errOut)
	}
}

func TestBundlesStat(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "bundles.json")
	writeFile(t, path, `[
  {"scriptId": "S1", "scriptUrl": "https://cdn.example/a.js", "mappings": []},
  {"scriptId": "S1", "scriptUrl": "https://cdn.example/b.js"},
  {"scriptId": "", "scriptUrl": "https://cdn.example/c.js"}
]`)

	out, _, err := runCLI(t, "bundles", "stat", path)
	if err != nil {
		t.Fatalf("bundles stat: %v", err)
	}
	for _, want := range []string{"bundles:    3", "indexed:    1", "with map:   0", "skipped:    2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBrowserQuitBeforeResultIsInterrupted(t *testing.T) {
	m := ui.NewFindingsModel("auditing", source.URLModeAuto, nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	_, err := browserOutcome(m, func() *audit.Result {
		t.Fatalf("result read although the audit never finished")
		return nil
	})
	if !errors.Is(err, errInterrupted) {
		t.Fatalf("err = %v, want errInterrupted", err)
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := runCLI(t, "version", "--format", "json", "--full")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	for _, want := range []string{`"tool": "deprecheck"`, `"git_commit": "unknown"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
