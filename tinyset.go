package globset

import (
	"strings"

	"github.com/lintel-rs/globset/globmatch"
)

// TinyGlobSet is a GlobSet variant for small pattern collections. It keeps
// the same strategy classification but scans plain slices instead of
// building tries and an Aho-Corasick automaton, so construction is nearly
// free and the footprint stays tiny.
type TinyGlobSet struct {
	patterns []*Glob
	strat    strategies
}

// TinyGlobSetBuilder accumulates patterns for a TinyGlobSet.
type TinyGlobSetBuilder struct {
	patterns []*Glob
}

// NewTinyGlobSetBuilder returns an empty builder.
func NewTinyGlobSetBuilder() *TinyGlobSetBuilder {
	return &TinyGlobSetBuilder{}
}

// Add appends a compiled pattern.
func (b *TinyGlobSetBuilder) Add(g *Glob) *TinyGlobSetBuilder {
	b.patterns = append(b.patterns, g)
	return b
}

// Build compiles the accumulated patterns into a TinyGlobSet.
func (b *TinyGlobSetBuilder) Build() *TinyGlobSet {
	return NewTinyGlobSetFromGlobs(b.patterns)
}

// NewTinyGlobSet compiles raw patterns into a TinyGlobSet.
func NewTinyGlobSet(patterns []string) (*TinyGlobSet, error) {
	globs := make([]*Glob, len(patterns))
	for i, pattern := range patterns {
		g, err := New(pattern)
		if err != nil {
			return nil, err
		}
		globs[i] = g
	}
	return NewTinyGlobSetFromGlobs(globs), nil
}

// NewTinyGlobSetFromGlobs compiles already-validated patterns into a
// TinyGlobSet.
func NewTinyGlobSetFromGlobs(globs []*Glob) *TinyGlobSet {
	raw := make([]string, len(globs))
	for i, g := range globs {
		raw[i] = g.Glob()
	}
	return &TinyGlobSet{patterns: globs, strat: buildStrategies(raw)}
}

// Len returns the number of patterns in the set.
func (s *TinyGlobSet) Len() int { return len(s.patterns) }

// IsEmpty reports whether the set contains no patterns.
func (s *TinyGlobSet) IsEmpty() bool { return s.Len() == 0 }

func (s *TinyGlobSet) verify(idx int, path string) bool {
	return globmatch.Match(s.patterns[idx].Glob(), path)
}

// suffixMatches mirrors `**/name`: the stored suffix carries a leading `/`,
// and the bare name alone is also a match.
func suffixMatches(path, suffix string) bool {
	return strings.HasSuffix(path, suffix) || path == suffix[1:]
}

// IsMatch reports whether any pattern matches path.
func (s *TinyGlobSet) IsMatch(path string) bool {
	if ext, ok := pathExtension(path); ok {
		if len(s.strat.extAny[ext]) > 0 {
			return true
		}
		for _, idx := range s.strat.extLocal[ext] {
			if s.verify(idx, path) {
				return true
			}
		}
	}

	if _, ok := s.strat.literals[path]; ok {
		return true
	}

	for _, p := range s.strat.prefixes {
		if strings.HasPrefix(path, p.str) {
			return true
		}
	}

	for _, suf := range s.strat.suffixes {
		if suffixMatches(path, suf.str) {
			return true
		}
	}

	for _, suf := range s.strat.compoundSuffixes {
		if strings.HasSuffix(path, suf.str) {
			return true
		}
	}

	for _, ps := range s.strat.prefixSuffixes {
		if len(path) >= len(ps.prefix)+len(ps.suffix) &&
			strings.HasPrefix(path, ps.prefix) && strings.HasSuffix(path, ps.suffix) {
			return true
		}
	}

	for _, idx := range s.strat.globIndices {
		if s.verify(idx, path) {
			return true
		}
	}

	return false
}

// IsMatchCandidate reports whether any pattern matches the candidate.
func (s *TinyGlobSet) IsMatchCandidate(c *Candidate) bool {
	return s.IsMatch(c.path)
}

// Matches returns the indices of all patterns matching path.
func (s *TinyGlobSet) Matches(path string) []int {
	return s.MatchesInto(path, nil)
}

// MatchesCandidate returns the indices of all patterns matching the
// candidate.
func (s *TinyGlobSet) MatchesCandidate(c *Candidate) []int {
	return s.MatchesInto(c.path, nil)
}

// MatchesIntoCandidate appends the indices of all patterns matching the
// candidate to into, reusing its capacity, and returns the result.
func (s *TinyGlobSet) MatchesIntoCandidate(c *Candidate, into []int) []int {
	return s.MatchesInto(c.path, into)
}

// MatchesInto appends the indices of all patterns matching path to into,
// reusing its capacity, and returns the result.
func (s *TinyGlobSet) MatchesInto(path string, into []int) []int {
	into = into[:0]
	seen := make([]bool, len(s.patterns))
	add := func(idx int) {
		if !seen[idx] {
			seen[idx] = true
			into = append(into, idx)
		}
	}

	if ext, ok := pathExtension(path); ok {
		for _, idx := range s.strat.extAny[ext] {
			add(idx)
		}
		for _, idx := range s.strat.extLocal[ext] {
			if s.verify(idx, path) {
				add(idx)
			}
		}
	}

	if idx, ok := s.strat.literals[path]; ok {
		add(idx)
	}

	for _, p := range s.strat.prefixes {
		if strings.HasPrefix(path, p.str) {
			add(p.idx)
		}
	}

	for _, suf := range s.strat.suffixes {
		if suffixMatches(path, suf.str) {
			add(suf.idx)
		}
	}

	for _, suf := range s.strat.compoundSuffixes {
		if strings.HasSuffix(path, suf.str) {
			add(suf.idx)
		}
	}

	for _, ps := range s.strat.prefixSuffixes {
		if len(path) >= len(ps.prefix)+len(ps.suffix) &&
			strings.HasPrefix(path, ps.prefix) && strings.HasSuffix(path, ps.suffix) {
			add(ps.idx)
		}
	}

	for _, idx := range s.strat.globIndices {
		if s.verify(idx, path) {
			add(idx)
		}
	}

	return into
}
