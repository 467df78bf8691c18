package globset

import "strings"

// Build-time pattern classification for fast-path matching.
//
// Each glob is analysed once and assigned to the cheapest strategy that can
// decide a match:
//
//	Extension  *.rs, **/*.rs      hash lookup on file extension
//	Prefix     src/**             prefix walk
//	Suffix     **/foo.txt         reversed-suffix walk
//	Literal    Cargo.toml         hash lookup
//	Glob       everything else    AC prefilter + globmatch.Match
//
// Patterns containing `{a,b}` brace alternations are expanded at build time
// so that each alternative can be classified independently.

type strategyKind int

const (
	// No wildcards at all: exact string match.
	stratLiteral strategyKind = iota
	// `**/*.ext`: any path with this extension matches, no verification.
	stratExtensionAny
	// `*.ext`: extension matches only in the current directory; still needs
	// globmatch verification.
	stratExtensionLocal
	// `prefix/**`: match by prefix.
	stratPrefix
	// `**/suffix`: match by suffix plus bare-name fallback. The stored
	// suffix has a leading `/`, e.g. `/foo.txt`.
	stratSuffix
	// `**/*<literal>`: match by suffix only, no leading `/`.
	stratCompoundSuffix
	// `prefix/**/*<literal>`: match by prefix plus suffix.
	stratPrefixSuffix
	// Needs the full glob engine.
	stratGlob
)

// patternStrategy is the strategy chosen for a single pattern at build time.
// str holds the literal/extension/prefix/suffix; suffix is set only for
// stratPrefixSuffix.
type patternStrategy struct {
	kind   strategyKind
	str    string
	suffix string
}

// classify assigns a validated glob pattern its optimal strategy.
func classify(pattern string) patternStrategy {
	// No wildcard characters at all means literal.
	if !strings.ContainsAny(pattern, `*?[{\`) {
		return patternStrategy{kind: stratLiteral, str: pattern}
	}

	if ext, anyDepth, ok := extractExtension(pattern); ok {
		if anyDepth {
			return patternStrategy{kind: stratExtensionAny, str: ext}
		}
		return patternStrategy{kind: stratExtensionLocal, str: ext}
	}

	if prefix, ok := extractPrefix(pattern); ok {
		return patternStrategy{kind: stratPrefix, str: prefix}
	}

	if suffix, ok := extractBasenameSuffix(pattern); ok {
		return patternStrategy{kind: stratSuffix, str: suffix}
	}

	if suffix, ok := extractCompoundSuffix(pattern); ok {
		return patternStrategy{kind: stratCompoundSuffix, str: suffix}
	}

	if prefix, suffix, ok := extractPrefixSuffix(pattern); ok {
		return patternStrategy{kind: stratPrefixSuffix, str: prefix, suffix: suffix}
	}

	return patternStrategy{kind: stratGlob}
}

func containsSpecial(s string) bool {
	return strings.ContainsAny(s, `*?[{\`)
}

// extractExtension recognises `*.ext` and `**/*.ext` patterns, returning the
// extension with its dot and whether the pattern matches at any depth.
//
// Only patterns where everything after the wildcard prefix is a simple
// extension qualify. `*.test.js` is rejected because the extension alone
// (`.js`) is not sufficient.
func extractExtension(pattern string) (ext string, anyDepth, ok bool) {
	dot := strings.LastIndexByte(pattern, '.')
	if dot < 0 {
		return "", false, false
	}

	// The extension part must be pure literal.
	extPart := pattern[dot+1:]
	if extPart == "" || containsSpecial(extPart) {
		return "", false, false
	}

	// The part before the dot must be a wildcard-only prefix:
	// `*`, `**/*`, or `**/` segments followed by `**/*`.
	prefix := pattern[:dot]
	if !isPureWildcardPrefix(prefix) {
		return "", false, false
	}

	// Reject multi-dot extensions like `*.test.js`: the part between the
	// wildcard and the last dot contains a literal dot.
	if wildcardPrefixLen(prefix) < dot {
		return "", false, false
	}

	return "." + extPart, prefix != "*", true
}

func wildcardPrefixLen(prefix string) int {
	switch {
	case prefix == "*":
		return 1
	case strings.HasSuffix(prefix, "**/*"):
		return len(prefix)
	default:
		return 0
	}
}

func isPureWildcardPrefix(prefix string) bool {
	switch {
	case prefix == "*":
		return true
	case strings.HasSuffix(prefix, "**/*"):
		return isGlobstarSegments(prefix[:len(prefix)-4])
	default:
		return false
	}
}

func isGlobstarSegments(s string) bool {
	if len(s)%3 != 0 {
		return false
	}
	for len(s) > 0 {
		if s[:3] != "**/" {
			return false
		}
		s = s[3:]
	}
	return true
}

// extractPrefix recognises `prefix/**` with a purely literal prefix,
// returning the prefix with a trailing slash.
func extractPrefix(pattern string) (string, bool) {
	if !strings.HasSuffix(pattern, "/**") {
		return "", false
	}
	prefix := pattern[:len(pattern)-3]
	if prefix == "" || containsSpecial(prefix) {
		return "", false
	}
	return prefix + "/", true
}

// extractBasenameSuffix recognises `**/suffix` with a purely literal suffix,
// returning the suffix with a leading slash (`/foo.txt` for `**/foo.txt`).
func extractBasenameSuffix(pattern string) (string, bool) {
	if !strings.HasPrefix(pattern, "**/") {
		return "", false
	}
	suffix := pattern[3:]
	if suffix == "" || containsSpecial(suffix) {
		return "", false
	}
	return "/" + suffix, true
}

// extractCompoundSuffix recognises `**/*<literal>` (e.g. `**/*.test.js`),
// returning the literal tail. No leading slash; a suffix check alone is
// correct.
func extractCompoundSuffix(pattern string) (string, bool) {
	if !strings.HasPrefix(pattern, "**/*") {
		return "", false
	}
	rest := pattern[4:]
	if rest == "" || containsSpecial(rest) {
		return "", false
	}
	return rest, true
}

// extractPrefixSuffix recognises `prefix/**/*<literal>` with a purely
// literal prefix and tail. The prefix includes a trailing `/`.
func extractPrefixSuffix(pattern string) (prefix, suffix string, ok bool) {
	pos := strings.Index(pattern, "/**/*")
	if pos < 0 {
		return "", "", false
	}

	prefix = pattern[:pos]
	if prefix == "" || containsSpecial(prefix) {
		return "", "", false
	}

	suffix = pattern[pos+5:]
	if suffix == "" || containsSpecial(suffix) {
		return "", "", false
	}

	return prefix + "/", suffix, true
}

// expandBraces expands `{a,b}` alternations in a glob pattern.
//
// Returns the original pattern when there are no braces (or an unclosed
// group). Nested braces and multiple groups expand recursively.
func expandBraces(pattern string) []string {
	bytes := []byte(pattern)

	// Find the first unescaped `{`.
	i := 0
	for {
		if i >= len(bytes) {
			return []string{pattern}
		}
		if bytes[i] == '\\' {
			i += 2
			continue
		}
		if bytes[i] == '{' {
			break
		}
		i++
	}
	open := i

	// Find the matching `}`.
	depth := 1
	i = open + 1
	for {
		if i >= len(bytes) {
			// Unclosed brace, don't expand.
			return []string{pattern}
		}
		if bytes[i] == '\\' {
			i += 2
			continue
		}
		switch bytes[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 {
			break
		}
		i++
	}
	close := i

	prefix := pattern[:open]
	suffix := pattern[close+1:]
	inner := pattern[open+1 : close]

	var results []string
	for _, alt := range splitBraceAlternatives(inner) {
		// Recursively expand in case there are more brace groups.
		results = append(results, expandBraces(prefix+alt+suffix)...)
	}
	return results
}

// splitBraceAlternatives splits a brace interior on top-level commas.
func splitBraceAlternatives(s string) []string {
	bytes := []byte(s)
	var parts []string
	start := 0
	depth := 0
	i := 0

	for i < len(bytes) {
		if bytes[i] == '\\' {
			i += 2
			continue
		}
		switch bytes[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
		i++
	}
	return append(parts, s[start:])
}

// pathExtension returns the file extension of path with its leading dot.
// Dotfiles like `.gitignore` yield the whole basename; a trailing dot
// yields no extension.
func pathExtension(path string) (string, bool) {
	basename := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		basename = path[i+1:]
	}
	dot := strings.LastIndexByte(basename, '.')
	if dot < 0 || dot+1 >= len(basename) {
		return "", false
	}
	return basename[dot:], true
}

type indexedString struct {
	str string
	idx int
}

type indexedPrefixSuffix struct {
	prefix string
	suffix string
	idx    int
}

// strategies holds the fast-path buckets built from a set of patterns.
type strategies struct {
	// Extension -> pattern indices where the extension alone decides a
	// match (`**/*.ext`).
	extAny map[string][]int
	// Extension -> pattern indices that still need globmatch verification
	// (`*.ext`).
	extLocal map[string][]int
	// Literal path -> pattern index.
	literals map[string]int
	// Prefix strings (with trailing `/`).
	prefixes []indexedString
	// Basename suffixes (with leading `/`); suffix check plus bare match.
	suffixes []indexedString
	// Compound suffixes (no leading `/`); suffix check only.
	compoundSuffixes []indexedString
	// Prefix+suffix pairs.
	prefixSuffixes []indexedPrefixSuffix
	// Indices of patterns that need full glob matching.
	globIndices []int
}

// buildStrategies classifies a list of patterns into fast-path buckets.
//
// Patterns with braces are expanded first so each alternative can take the
// fastest route independently; if any alternative needs the full engine the
// whole pattern falls back to it. Expanded variants all register under the
// original pattern index.
func buildStrategies(patterns []string) strategies {
	s := strategies{
		extAny:   make(map[string][]int),
		extLocal: make(map[string][]int),
		literals: make(map[string]int),
	}

	for i, pat := range patterns {
		// A leading `!` negates the whole pattern; none of the structural
		// buckets can express "everything except", so it goes straight to
		// full matching.
		if len(pat) > 0 && pat[0] == '!' {
			s.globIndices = append(s.globIndices, i)
			continue
		}

		variants := expandBraces(pat)

		allFast := true
		pending := make([]patternStrategy, 0, len(variants))
		for _, variant := range variants {
			strat := classify(variant)
			if strat.kind == stratGlob {
				allFast = false
				break
			}
			pending = append(pending, strat)
		}

		if !allFast || len(pending) == 0 {
			s.globIndices = append(s.globIndices, i)
			continue
		}

		for _, strat := range pending {
			switch strat.kind {
			case stratExtensionAny:
				s.extAny[strat.str] = append(s.extAny[strat.str], i)
			case stratExtensionLocal:
				s.extLocal[strat.str] = append(s.extLocal[strat.str], i)
			case stratLiteral:
				s.literals[strat.str] = i
			case stratPrefix:
				s.prefixes = append(s.prefixes, indexedString{strat.str, i})
			case stratSuffix:
				s.suffixes = append(s.suffixes, indexedString{strat.str, i})
			case stratCompoundSuffix:
				s.compoundSuffixes = append(s.compoundSuffixes, indexedString{strat.str, i})
			case stratPrefixSuffix:
				s.prefixSuffixes = append(s.prefixSuffixes, indexedPrefixSuffix{strat.str, strat.suffix, i})
			}
		}
	}

	return s
}
