package signal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"fortio.org/safecast"

	"deprecheck/internal/trace"
)

// LoadIssues reads a JSON array of deprecation issues from path ("-" reads
// stdin).
// An empty path yields an empty collection.
func LoadIssues(ctx context.Context, path string) ([]Issue, error) {
	if path == "" {
		return nil, nil
	}
	var raw []issueJSON
	if err := decodeFile(path, &raw); err != nil {
		return nil, err
	}
	n := newNormalizer(ctx, path)
	out := make([]Issue, 0, len(raw))
	for i := range raw {
		n.item = i
		out = append(out, raw[i].issue(n))
	}
	return out, nil
}

// LoadConsole reads a JSON array of console entries from path.
// An empty path yields an empty collection.
func LoadConsole(ctx context.Context, path string) ([]ConsoleEntry, error) {
	if path == "" {
		return nil, nil
	}
	var raw []consoleJSON
	if err := decodeFile(path, &raw); err != nil {
		return nil, err
	}
	n := newNormalizer(ctx, path)
	out := make([]ConsoleEntry, 0, len(raw))
	for i := range raw {
		n.item = i
		out = append(out, raw[i].entry(n))
	}
	return out, nil
}

func decodeFile(path string, v any) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		// #nosec G304 -- path is provided by the caller
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			// пустой файл = пустая коллекция
			return nil
		}
		return fmt.Errorf("%s: failed to parse JSON: %w", path, err)
	}
	return nil
}

// normalizer converts producer integers into uint32 positions, clamping
// values that do not fit to 0 and tracing the degradation.
type normalizer struct {
	tracer trace.Tracer
	path   string
	item   int
}

func newNormalizer(ctx context.Context, path string) *normalizer {
	return &normalizer{tracer: trace.FromContext(ctx), path: path}
}

func (n *normalizer) position(field string, v int64) uint32 {
	out, err := safecast.Conv[uint32](v)
	if err == nil {
		return out
	}
	if n.tracer.Enabled() {
		trace.Point(n.tracer, trace.ScopeItem, "signal.clamp", fmt.Sprintf("%s.%s=%d", n.path, field, v),
			map[string]string{"item": strconv.Itoa(n.item)})
	}
	return 0
}
