package globset

// GlobSet matches a path against a whole collection of glob patterns at
// once, reporting which pattern indices match.
type GlobSet struct {
	engine *matchEngine
}

// GlobSetBuilder accumulates patterns for a GlobSet.
type GlobSetBuilder struct {
	patterns []*Glob
}

// NewGlobSetBuilder returns an empty builder.
func NewGlobSetBuilder() *GlobSetBuilder {
	return &GlobSetBuilder{}
}

// Add appends a compiled pattern. Indices reported by the built set follow
// insertion order.
func (b *GlobSetBuilder) Add(g *Glob) *GlobSetBuilder {
	b.patterns = append(b.patterns, g)
	return b
}

// Build compiles the accumulated patterns into a GlobSet.
func (b *GlobSetBuilder) Build() (*GlobSet, error) {
	engine, err := buildEngine(b.patterns)
	if err != nil {
		return nil, err
	}
	return &GlobSet{engine: engine}, nil
}

// NewGlobSet compiles raw patterns into a GlobSet in one step.
func NewGlobSet(patterns []string) (*GlobSet, error) {
	b := NewGlobSetBuilder()
	for _, pattern := range patterns {
		g, err := New(pattern)
		if err != nil {
			return nil, err
		}
		b.Add(g)
	}
	return b.Build()
}

// Len returns the number of patterns in the set.
func (s *GlobSet) Len() int { return len(s.engine.patterns) }

// IsEmpty reports whether the set contains no patterns.
func (s *GlobSet) IsEmpty() bool { return s.Len() == 0 }

// IsMatch reports whether any pattern matches path.
func (s *GlobSet) IsMatch(path string) bool {
	return s.engine.isMatch(path)
}

// IsMatchCandidate reports whether any pattern matches the candidate.
func (s *GlobSet) IsMatchCandidate(c *Candidate) bool {
	return s.engine.isMatch(c.path)
}

// Matches returns the indices of all patterns matching path.
func (s *GlobSet) Matches(path string) []int {
	return s.engine.matchesInto(path, nil)
}

// MatchesCandidate returns the indices of all patterns matching the
// candidate.
func (s *GlobSet) MatchesCandidate(c *Candidate) []int {
	return s.engine.matchesInto(c.path, nil)
}

// MatchesInto appends the indices of all patterns matching path to into,
// reusing its capacity, and returns the result.
func (s *GlobSet) MatchesInto(path string, into []int) []int {
	return s.engine.matchesInto(path, into[:0])
}

// MatchesIntoCandidate appends the indices of all patterns matching the
// candidate to into, reusing its capacity, and returns the result.
func (s *GlobSet) MatchesIntoCandidate(c *Candidate, into []int) []int {
	return s.engine.matchesInto(c.path, into[:0])
}

// FirstMatch returns the lowest index of any pattern matching path.
func (s *GlobSet) FirstMatch(path string) (int, bool) {
	return s.engine.firstMatch(path)
}

// FirstMatchCandidate returns the lowest index of any pattern matching the
// candidate.
func (s *GlobSet) FirstMatchCandidate(c *Candidate) (int, bool) {
	return s.engine.firstMatch(c.path)
}
