// Package globset matches paths against many glob patterns at once.
//
// A single pattern is validated with New and matched with a GlobMatcher.
// Larger collections compile into a GlobSet (which pattern indices match?),
// a GlobMap (what value is attached to the best match?), or a TinyGlobSet
// (a small-footprint variant for a handful of patterns).
//
// Pattern syntax:
//
//	?           any single character except `/`
//	*           any number of characters, not crossing `/`
//	**          any number of whole path segments
//	[ab], [a-z] character class, negate with `[^...]` or `[!...]`
//	{a,b}       alternation, may nest
//	\x          match x literally
//
// At build time each pattern is classified into the cheapest strategy that
// can decide it (extension, literal, prefix, suffix lookups, with
// double-array tries and an Aho-Corasick prefilter for the rest), so that
// matching a path against thousands of patterns stays far below one
// comparison per pattern.
package globset

import "strings"

// escapeSpecial lists the bytes Escape protects: pattern metacharacters plus
// the class/alternation punctuation that is special in some positions.
const escapeSpecial = `*?[]{}\!^,`

// Escape returns s with all glob metacharacters backslash-escaped, so the
// result matches s literally when used as a pattern.
func Escape(s string) string {
	if !strings.ContainsAny(s, escapeSpecial) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(escapeSpecial, s[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
