package manifest

import "slices"

// Record is one package entry of the lock file.
type Record struct {
	Name     string
	Version  string
	Resolved string
	Dev      bool
	Optional bool

	// Dependencies lists sub-dependency names in declaration order.
	// Names are resolved against the enclosing Manifest; a name with no
	// record there is a leaf.
	Dependencies []string
}

// Project identifies the package that owns the lock file.
type Project struct {
	Name    string
	Version string
}

// Manifest maps package names to records, preserving declaration order.
//
// The zero value is not usable - use New. A nil *Manifest behaves as an
// empty manifest for all read methods.
type Manifest struct {
	Project         Project
	LockfileVersion int

	names   []string
	records map[string]*Record
}

// New creates an empty manifest.
func New() *Manifest {
	return &Manifest{records: make(map[string]*Record)}
}

// Add inserts r under r.Name. The first record for a name wins: Add reports
// false and leaves the manifest unchanged when the name is already present or
// empty. Duplicate dependency names within r are collapsed.
func (m *Manifest) Add(r Record) bool {
	if r.Name == "" {
		return false
	}
	if _, exists := m.records[r.Name]; exists {
		return false
	}
	r.Dependencies = uniq(r.Dependencies)
	m.records[r.Name] = &r
	m.names = append(m.names, r.Name)
	return true
}

// Names returns the package names in declaration order.
func (m *Manifest) Names() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.names)
}

// Lookup returns the record stored under name.
func (m *Manifest) Lookup(name string) (*Record, bool) {
	if m == nil {
		return nil, false
	}
	r, ok := m.records[name]
	return r, ok
}

// Len returns the number of records.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

func uniq(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
