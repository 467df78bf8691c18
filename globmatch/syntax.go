package globmatch

// SkipCharClass advances past a [...] character class in a glob pattern.
//
// i must point at the opening '['. The returned index is immediately after
// the closing ']', or len(pattern) if the class is unterminated.
//
// Negation ([^...], [!...]), ']' as the first character in the class (which
// is literal, not a close), and backslash escapes are all handled.
func SkipCharClass(pattern []byte, i int) int {
	i++ // skip `[`
	// Skip negation prefix.
	if i < len(pattern) && (pattern[i] == '^' || pattern[i] == '!') {
		i++
	}
	// `]` as first character in class is literal, not a close.
	if i < len(pattern) && pattern[i] == ']' {
		i++
	}
	for i < len(pattern) && pattern[i] != ']' {
		if pattern[i] == '\\' {
			i++
		}
		i++
	}
	if i < len(pattern) {
		i++ // skip `]`
	}
	return i
}

// SkipBraces advances past a {...} alternation group in a glob pattern.
//
// i must point at the opening '{'. The returned index is immediately after
// the matching '}', or len(pattern) if no match is found. Nested braces,
// character classes (so a '}' inside [}] does not close the group), and
// backslash escapes are handled.
func SkipBraces(pattern []byte, i int) int {
	depth := 1
	i++ // skip `{`
	for i < len(pattern) && depth > 0 {
		switch pattern[i] {
		case '[':
			i = SkipCharClass(pattern, i)
			continue
		case '{':
			depth++
		case '}':
			depth--
		case '\\':
			i++
		}
		i++
	}
	return i
}
