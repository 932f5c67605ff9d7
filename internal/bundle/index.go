package bundle

// Index answers "does script X have a bundle?" for one run.
// It is built once and never mutated.
type Index struct {
	byScript map[string]*Bundle
	count    int
}

// NewIndex builds an index over bundles. When several records share a
// script id the first one wins; records without a script id are skipped.
func NewIndex(bundles []Bundle) *Index {
	idx := &Index{
		byScript: make(map[string]*Bundle, len(bundles)),
		count:    len(bundles),
	}
	for i := range bundles {
		b := &bundles[i]
		if b.ScriptID == "" {
			continue
		}
		if _, dup := idx.byScript[b.ScriptID]; dup {
			continue
		}
		idx.byScript[b.ScriptID] = b
	}
	return idx
}

// Find returns the bundle for scriptID. Absence is the normal outcome for
// scripts that were not bundled.
func (idx *Index) Find(scriptID string) (*Bundle, bool) {
	if idx == nil || scriptID == "" {
		return nil, false
	}
	b, ok := idx.byScript[scriptID]
	return b, ok
}

// Len returns the number of distinct scripts with a bundle.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.byScript)
}

// Records returns how many bundle records the index was built from.
func (idx *Index) Records() int {
	if idx == nil {
		return 0
	}
	return idx.count
}
