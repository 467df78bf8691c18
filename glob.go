package globset

import (
	"strings"

	"github.com/lintel-rs/globset/globmatch"
)

// Glob is a single validated glob pattern. It can be matched directly with a
// GlobMatcher, or combined with others in a GlobSet or GlobMap.
type Glob struct {
	pattern string
}

// New validates pattern and returns it as a Glob.
func New(pattern string) (*Glob, error) {
	if err := validate(pattern); err != nil {
		return nil, err
	}
	return &Glob{pattern: pattern}, nil
}

// Glob returns the original pattern.
func (g *Glob) Glob() string { return g.pattern }

func (g *Glob) String() string { return g.pattern }

// CompileMatcher returns a matcher for this pattern alone.
func (g *Glob) CompileMatcher() *GlobMatcher {
	return &GlobMatcher{pattern: g.pattern}
}

// GlobBuilder configures and builds a single Glob.
type GlobBuilder struct {
	pattern         string
	caseInsensitive bool
}

// NewBuilder returns a builder for pattern.
func NewBuilder(pattern string) *GlobBuilder {
	return &GlobBuilder{pattern: pattern}
}

// CaseInsensitive lowercases the pattern at build time. Callers should
// lowercase paths before matching.
func (b *GlobBuilder) CaseInsensitive(yes bool) *GlobBuilder {
	b.caseInsensitive = yes
	return b
}

// LiteralSeparator is accepted for compatibility; wildcards already never
// cross `/`.
func (b *GlobBuilder) LiteralSeparator(bool) *GlobBuilder { return b }

// BackslashEscape is accepted for compatibility; `\` always escapes.
func (b *GlobBuilder) BackslashEscape(bool) *GlobBuilder { return b }

// EmptyAlternates is accepted for compatibility; empty alternates like
// `{,/}` are always allowed.
func (b *GlobBuilder) EmptyAlternates(bool) *GlobBuilder { return b }

// Build validates the configured pattern and returns the Glob.
func (b *GlobBuilder) Build() (*Glob, error) {
	pattern := b.pattern
	if b.caseInsensitive {
		pattern = strings.ToLower(pattern)
	}
	if err := validate(pattern); err != nil {
		return nil, err
	}
	return &Glob{pattern: pattern}, nil
}

// GlobMatcher matches paths against a single compiled pattern.
type GlobMatcher struct {
	pattern string
}

// IsMatch reports whether path matches the pattern.
func (m *GlobMatcher) IsMatch(path string) bool {
	return globmatch.Match(m.pattern, path)
}

// IsMatchCandidate reports whether the candidate matches the pattern.
func (m *GlobMatcher) IsMatchCandidate(c *Candidate) bool {
	return globmatch.Match(m.pattern, c.path)
}

// Candidate is a path pre-normalised for repeated matching against several
// sets. Backslash separators are rewritten to `/` once up front.
type Candidate struct {
	path string
}

// NewCandidate normalises path for matching.
func NewCandidate(path string) *Candidate {
	if strings.ContainsRune(path, '\\') {
		path = strings.ReplaceAll(path, "\\", "/")
	}
	return &Candidate{path: path}
}

// Path returns the normalised path.
func (c *Candidate) Path() string { return c.path }
