package bundle

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"deprecheck/internal/trace"
)

// Record is the serialised form of a bundle as produced by the external
// bundle-resolution service.
type Record struct {
	ScriptID  string    `json:"scriptId" msgpack:"script_id"`
	ScriptURL string    `json:"scriptUrl" msgpack:"script_url"`
	Mappings  []Mapping `json:"mappings" msgpack:"mappings"`
}

// Bundle converts the record into a queryable Bundle.
func (r Record) Bundle() Bundle {
	b := Bundle{ScriptID: r.ScriptID, ScriptURL: r.ScriptURL}
	if t := NewMappingTable(r.Mappings); t != nil {
		b.Resolver = t
	}
	return b
}

// Provider fetches the bundle collection for a run.
type Provider interface {
	Bundles(ctx context.Context) ([]Bundle, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) ([]Bundle, error)

// Bundles calls f.
func (f ProviderFunc) Bundles(ctx context.Context) ([]Bundle, error) { return f(ctx) }

// Static returns a provider serving a fixed collection.
func Static(bundles ...Bundle) Provider {
	return ProviderFunc(func(context.Context) ([]Bundle, error) { return bundles, nil })
}

// FileProvider reads bundle records from a JSON or msgpack file.
// JSON decodes are cached in Cache (when set) keyed by content hash.
type FileProvider struct {
	Path  string
	Cache *DiskCache
}

// Bundles implements Provider. An empty Path yields no bundles.
func (p *FileProvider) Bundles(ctx context.Context) ([]Bundle, error) {
	if p == nil || p.Path == "" {
		return nil, nil
	}
	t := trace.FromContext(ctx)
	span := trace.Begin(t, trace.ScopePass, "bundles.fetch", trace.CurrentSpan(ctx))
	records, err := p.records(ctx)
	if err != nil {
		span.End("failed")
		return nil, err
	}
	out := make([]Bundle, 0, len(records))
	for _, r := range records {
		out = append(out, r.Bundle())
	}
	span.WithExtra("records", fmt.Sprint(len(records))).End(p.Path)
	return out, nil
}

func (p *FileProvider) records(ctx context.Context) ([]Record, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundles: %w", err)
	}
	if isMsgpackPath(p.Path) {
		records, err := DecodeMsgpack(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Path, err)
		}
		return records, nil
	}

	key := sha256.Sum256(data)
	if p.Cache != nil {
		var payload CachePayload
		if ok, err := p.Cache.Get(key, &payload); err == nil && ok && payload.Schema == cacheSchemaVersion {
			trace.Point(trace.FromContext(ctx), trace.ScopeItem, "bundles.cache_hit", p.Path, nil)
			return payload.Records, nil
		}
	}

	var records []Record
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("%s: failed to parse JSON: %w", p.Path, err)
		}
	}
	if p.Cache != nil {
		payload := CachePayload{Schema: cacheSchemaVersion, Source: p.Path, Records: records}
		if err := p.Cache.Put(key, &payload); err != nil {
			// кэш необязателен
			trace.Point(trace.FromContext(ctx), trace.ScopeItem, "bundles.cache_put_failed", err.Error(), nil)
		}
	}
	return records, nil
}

func isMsgpackPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp", ".msgpack":
		return true
	}
	return false
}

// DecodeMsgpack reads a msgpack-encoded record list.
func DecodeMsgpack(r io.Reader) ([]Record, error) {
	var records []Record
	if err := msgpack.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode msgpack bundles: %w", err)
	}
	return records, nil
}

// EncodeMsgpack writes records in the msgpack bundle format.
func EncodeMsgpack(w io.Writer, records []Record) error {
	return msgpack.NewEncoder(w).Encode(records)
}

// DecodeJSON reads a JSON record list.
func DecodeJSON(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode JSON bundles: %w", err)
	}
	return records, nil
}
