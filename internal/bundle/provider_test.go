package bundle

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

const bundlesJSON = `[
	{"scriptId": "S1", "scriptUrl": "https://example.com/app.min.js",
	 "mappings": [{"line": 10, "column": 4, "sourceUrl": "orig.js", "sourceLine": 2, "sourceColumn": 1}]},
	{"scriptId": "S2", "scriptUrl": "https://example.com/vendor.js", "mappings": []}
]`

func TestFileProviderJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundles.json")
	if err := os.WriteFile(path, []byte(bundlesJSON), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cache, err := NewDiskCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}

	p := &FileProvider{Path: path, Cache: cache}
	for pass := 0; pass < 2; pass++ {
		bundles, err := p.Bundles(context.Background())
		if err != nil {
			t.Fatalf("pass %d: Bundles: %v", pass, err)
		}
		if len(bundles) != 2 {
			t.Fatalf("pass %d: expected 2 bundles, got %d", pass, len(bundles))
		}
		if !bundles[0].HasMap() || bundles[1].HasMap() {
			t.Fatalf("pass %d: unexpected map presence: %+v", pass, bundles)
		}
		pos, err := bundles[0].Resolver.Lookup(10, 4)
		if err != nil || pos.URL != "orig.js" || pos.Line != 2 || pos.Column != 1 {
			t.Fatalf("pass %d: Lookup = %+v, %v", pass, pos, err)
		}
	}

	entries, err := filepath.Glob(filepath.Join(dir, "cache", "bundles", "*.mp"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one cache entry, got %v (%v)", entries, err)
	}
}

func TestFileProviderMsgpack(t *testing.T) {
	records, err := DecodeJSON(bytes.NewReader([]byte(bundlesJSON)))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	var buf bytes.Buffer
	if err := EncodeMsgpack(&buf, records); err != nil {
		t.Fatalf("EncodeMsgpack: %v", err)
	}
	path := filepath.Join(t.TempDir(), "bundles.mp")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	bundles, err := (&FileProvider{Path: path}).Bundles(context.Background())
	if err != nil {
		t.Fatalf("Bundles: %v", err)
	}
	if len(bundles) != 2 || bundles[0].ScriptID != "S1" || bundles[0].ScriptURL != "https://example.com/app.min.js" {
		t.Fatalf("unexpected bundles: %+v", bundles)
	}
}

func TestFileProviderErrors(t *testing.T) {
	if _, err := (&FileProvider{Path: filepath.Join(t.TempDir(), "nope.json")}).Bundles(context.Background()); err == nil {
		t.Fatalf("expected error for missing bundle file")
	}
	bundles, err := (&FileProvider{}).Bundles(context.Background())
	if err != nil || len(bundles) != 0 {
		t.Fatalf("empty path: %v, %v", bundles, err)
	}
}
