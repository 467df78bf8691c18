package globset

// validate checks a glob pattern for structural correctness.
func validate(pattern string) *Error {
	bytes := []byte(pattern)
	i := 0
	braceDepth := 0

	for i < len(bytes) {
		switch bytes[i] {
		case '\\':
			i++
			if i >= len(bytes) {
				return newError(DanglingEscape, pattern)
			}
			// Skip the escaped character.

		case '[':
			i++
			// Skip negation.
			if i < len(bytes) && (bytes[i] == '^' || bytes[i] == '!') {
				i++
			}
			// Allow `]` as first character in class.
			if i < len(bytes) && bytes[i] == ']' {
				i++
			}
			foundClose := false
			for i < len(bytes) {
				if bytes[i] == ']' {
					foundClose = true
					break
				}
				if bytes[i] == '\\' {
					i++
					if i >= len(bytes) {
						return newError(DanglingEscape, pattern)
					}
				}
				// Check ranges like [a-z].
				if i+2 < len(bytes) && bytes[i+1] == '-' && bytes[i+2] != ']' {
					lo, hi := bytes[i], bytes[i+2]
					if lo > hi {
						err := newError(InvalidRange, pattern)
						err.lo, err.hi = lo, hi
						return err
					}
					i += 2
				}
				i++
			}
			if !foundClose {
				return newError(UnclosedClass, pattern)
			}

		case '{':
			braceDepth++

		case '}':
			if braceDepth == 0 {
				return newError(UnopenedAlternates, pattern)
			}
			braceDepth--
		}
		i++
	}

	if braceDepth > 0 {
		return newError(UnclosedAlternates, pattern)
	}
	return nil
}
