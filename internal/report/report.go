package report

// Report maps root-relative paths to the differences found for them.
// Keys keep their insertion order, which is the traversal order.
type Report struct {
	keys    []string
	entries map[string][]Record
}

// Summary counts what a report contains.
type Summary struct {
	Paths           int `json:"paths"`
	LineMismatches  int `json:"lineMismatches"`
	StructuralNotes int `json:"structuralNotes"`
}

// New creates an empty report.
func New() *Report {
	return &Report{entries: make(map[string][]Record)}
}

// Set stores records under key. Empty record lists are ignored so that a
// key only exists when something differs. Setting an existing key replaces
// its records and keeps its position.
func (r *Report) Set(key string, records []Record) {
	if len(records) == 0 {
		return
	}
	if _, ok := r.entries[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.entries[key] = records
}

// Keys returns the report keys in insertion order.
func (r *Report) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of paths in the report.
func (r *Report) Len() int {
	return len(r.keys)
}

// Empty reports whether no differences were recorded.
func (r *Report) Empty() bool {
	return len(r.keys) == 0
}

// Summary counts paths, line mismatches and structural notes.
func (r *Report) Summary() Summary {
	s := Summary{Paths: r.Len()}
	for _, key := range r.keys {
		for _, rec := range r.entries[key] {
			if rec.IsNote() {
				s.StructuralNotes++
			} else {
				s.LineMismatches++
			}
		}
	}
	return s
}
