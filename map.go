package globset

// GlobMap associates a value with each glob pattern and answers lookups with
// the value of the best match. When several patterns match a path, the one
// inserted first wins.
type GlobMap[T any] struct {
	engine *matchEngine
	values []T
}

// GlobMapBuilder accumulates pattern/value pairs for a GlobMap.
type GlobMapBuilder[T any] struct {
	patterns []*Glob
	values   []T
}

// NewGlobMapBuilder returns an empty builder.
func NewGlobMapBuilder[T any]() *GlobMapBuilder[T] {
	return &GlobMapBuilder[T]{}
}

// Insert appends a compiled pattern with its value. Earlier insertions take
// priority in Get.
func (b *GlobMapBuilder[T]) Insert(g *Glob, value T) *GlobMapBuilder[T] {
	b.patterns = append(b.patterns, g)
	b.values = append(b.values, value)
	return b
}

// Build compiles the accumulated pairs into a GlobMap.
func (b *GlobMapBuilder[T]) Build() (*GlobMap[T], error) {
	engine, err := buildEngine(b.patterns)
	if err != nil {
		return nil, err
	}
	return &GlobMap[T]{engine: engine, values: b.values}, nil
}

// Len returns the number of patterns in the map.
func (m *GlobMap[T]) Len() int { return len(m.values) }

// IsEmpty reports whether the map contains no patterns.
func (m *GlobMap[T]) IsEmpty() bool { return m.Len() == 0 }

// IsMatch reports whether any pattern matches path.
func (m *GlobMap[T]) IsMatch(path string) bool {
	return m.engine.isMatch(path)
}

// Get returns the value of the first-inserted pattern matching path.
func (m *GlobMap[T]) Get(path string) (T, bool) {
	if idx, ok := m.engine.firstMatch(path); ok {
		return m.values[idx], true
	}
	var zero T
	return zero, false
}

// GetCandidate returns the value of the first-inserted pattern matching the
// candidate.
func (m *GlobMap[T]) GetCandidate(c *Candidate) (T, bool) {
	return m.Get(c.path)
}

// GetMatches returns the values of all patterns matching path, in bucket
// scan order.
func (m *GlobMap[T]) GetMatches(path string) []T {
	indices := m.engine.matchesInto(path, nil)
	if len(indices) == 0 {
		return nil
	}
	values := make([]T, len(indices))
	for i, idx := range indices {
		values[i] = m.values[idx]
	}
	return values
}

// GetMatchesCandidate returns the values of all patterns matching the
// candidate.
func (m *GlobMap[T]) GetMatchesCandidate(c *Candidate) []T {
	return m.GetMatches(c.path)
}
