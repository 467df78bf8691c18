package globset

import "github.com/lintel-rs/globset/globmatch"

// extractLiteral returns the longest contiguous literal substring of a glob
// pattern, used as the Aho-Corasick prefilter key.
//
// Character classes, alternation groups, escaped characters, wildcards, and
// `**/` tokens all break literal runs. A tie goes to the earliest run.
// Reports false if no literal of length >= 1 exists.
func extractLiteral(pattern string) (string, bool) {
	bytes := []byte(pattern)
	bestStart, bestLen := 0, 0
	curStart, curLen := 0, 0
	i := 0

	flush := func() {
		if curLen > bestLen {
			bestStart, bestLen = curStart, curLen
		}
	}

	for i < len(bytes) {
		switch bytes[i] {
		case '*':
			flush()
			start := i
			for i < len(bytes) && bytes[i] == '*' {
				i++
			}
			// `**/` is a single optional token, skip the `/` too.
			if i-start >= 2 && i < len(bytes) && bytes[i] == '/' {
				i++
			}
			curStart, curLen = i, 0
		case '?':
			flush()
			i++
			curStart, curLen = i, 0
		case '[':
			flush()
			i = globmatch.SkipCharClass(bytes, i)
			curStart, curLen = i, 0
		case '{':
			flush()
			i = globmatch.SkipBraces(bytes, i)
			curStart, curLen = i, 0
		case '\\':
			flush()
			i += 2 // backslash + escaped char
			curStart, curLen = i, 0
		default:
			curLen++
			i++
		}
	}

	flush()
	if bestLen == 0 {
		return "", false
	}
	return pattern[bestStart : bestStart+bestLen], true
}
