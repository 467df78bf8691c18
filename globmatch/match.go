// Package globmatch implements shell-style glob matching of a single
// pattern against a path string.
//
// Supported syntax: `?` (any byte except `/`), `*` (any run of bytes not
// crossing `/`), `**` (as a full path segment: any run of segments),
// `[...]`/`[!...]`/`[^...]` character classes with ranges, `{a,b}`
// alternation (nestable), and `\x` escapes.
//
// Matching is an explicit backtracking loop with saved star/globstar marks
// rather than recursion, in the style of https://research.swtch.com/glob,
// so wildcard-heavy patterns cannot exhaust the call stack. Brace
// alternation uses a small fixed-depth stack of saved states.
package globmatch

func isSeparator(c byte) bool {
	return c == '/' || c == '\\'
}

// wildcard records the position of the most recent `*` or `**` so the
// matcher can backtrack to it. A zero path mark means "no mark"; the stored
// mark is the retry position plus one.
type wildcard struct {
	glob uint32
	path uint32
}

type state struct {
	// Byte index into the path string.
	pathIndex int
	// Byte index into the glob string.
	globIndex int

	// Saved marks for the most recent `*` and `**`.
	wildcard wildcard
	globstar wildcard
}

func (s *state) backtrack() {
	s.globIndex = int(s.wildcard.glob)
	s.pathIndex = int(s.wildcard.path)
}

const maxBraceNesting = 10

// braceStack holds the states saved on entry to `{` groups. Nesting beyond
// maxBraceNesting makes the pattern fail to match rather than recurse.
type braceStack struct {
	stack             [maxBraceNesting]state
	length            int
	longestBraceMatch uint32
}

// push saves the state at an opening `{` and returns the fresh state for
// matching the first alternative.
func (b *braceStack) push(s *state) state {
	b.stack[b.length] = *s
	b.length++
	return state{
		pathIndex: s.pathIndex,
		globIndex: s.globIndex + 1,
	}
}

// pop restores state after a `}`, resuming at the longest alternative match
// seen so far and reinstating the enclosing star marks.
func (b *braceStack) pop(s *state) state {
	b.length--
	out := state{
		pathIndex: int(b.longestBraceMatch) - 1,
		globIndex: s.globIndex,
		wildcard:  b.stack[b.length].wildcard,
		globstar:  b.stack[b.length].globstar,
	}
	if b.length == 0 {
		b.longestBraceMatch = 0
	}
	return out
}

func (b *braceStack) last() *state {
	return &b.stack[b.length-1]
}

type step int

const (
	stepBacktrack step = iota
	stepContinue
	stepFail
)

type braceState int

const (
	braceInvalid braceState = iota
	braceComma
	braceEnd
)

type matcher struct {
	glob   string
	path   string
	st     state
	braces braceStack
}

// Match reports whether path matches the glob pattern.
//
// Match performs no per-call heap allocation. It assumes the pattern is
// well formed; malformed patterns simply fail to match.
func Match(pattern, path string) bool {
	m := matcher{glob: pattern, path: path}
	return m.run()
}

// unescape resolves c, consuming the escaped byte when c is a backslash.
// Reports false on a dangling trailing escape.
func (m *matcher) unescape(c byte) (byte, bool) {
	if c != '\\' {
		return c, true
	}
	m.st.globIndex++
	if m.st.globIndex >= len(m.glob) {
		// Invalid pattern.
		return 0, false
	}
	switch e := m.glob[m.st.globIndex]; e {
	case 'a':
		return 'a', true
	case 'b':
		return '\x08', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	default:
		return e, true
	}
}

func (m *matcher) run() bool {
	// A leading '!' (repeatable) negates the whole pattern.
	negated := false
	for m.st.globIndex < len(m.glob) && m.glob[m.st.globIndex] == '!' {
		negated = !negated
		m.st.globIndex++
	}

outer:
	for m.st.globIndex < len(m.glob) || m.st.pathIndex < len(m.path) {
		if m.st.globIndex < len(m.glob) {
			switch c := m.glob[m.st.globIndex]; {
			case c == '*':
				switch m.matchStar() {
				case stepContinue:
					continue outer
				case stepFail:
					return false
				}

			case c == '?' && m.st.pathIndex < len(m.path):
				if !isSeparator(m.path[m.st.pathIndex]) {
					m.st.globIndex++
					m.st.pathIndex++
					continue outer
				}

			case c == '[' && m.st.pathIndex < len(m.path):
				switch m.matchBracket() {
				case stepContinue:
					continue outer
				case stepFail:
					return false
				}

			case c == '{':
				if m.braces.length >= maxBraceNesting {
					return false
				}
				snap := m.st
				m.st = m.braces.push(&snap)
				continue outer

			case c == '}' && m.braces.length > 0:
				if n := uint32(m.st.pathIndex) + 1; n > m.braces.longestBraceMatch {
					m.braces.longestBraceMatch = n
				}
				m.st.globIndex++
				snap := m.st
				m.st = m.braces.pop(&snap)
				continue outer

			case c == ',' && m.braces.length > 0:
				if n := uint32(m.st.pathIndex) + 1; n > m.braces.longestBraceMatch {
					m.braces.longestBraceMatch = n
				}
				// Next alternative: rewind the path, clear star marks.
				m.st.pathIndex = m.braces.last().pathIndex
				m.st.globIndex++
				m.st.wildcard = wildcard{}
				m.st.globstar = wildcard{}
				continue outer

			case m.st.pathIndex < len(m.path):
				switch m.matchLiteral() {
				case stepContinue:
					continue outer
				case stepFail:
					return false
				}
			}
		}

		if !m.tryBacktrack() {
			return negated
		}
	}

	if m.braces.length > 0 && m.st.globIndex > 0 && m.glob[m.st.globIndex-1] == '}' {
		m.braces.longestBraceMatch = uint32(m.st.pathIndex) + 1
		snap := m.st
		m.braces.pop(&snap)
	}

	return !negated
}

func (m *matcher) matchStar() step {
	isGlobstar := m.st.globIndex+1 < len(m.glob) && m.glob[m.st.globIndex+1] == '*'
	if isGlobstar {
		m.skipGlobstars()
	}

	m.st.wildcard.glob = uint32(m.st.globIndex)
	m.st.wildcard.path = uint32(m.st.pathIndex) + 1

	// ** allows path separators, whereas * does not.
	// However, ** must be a full path segment, i.e. a/**/b, not a**b.
	inGlobstar := false
	if isGlobstar {
		m.st.globIndex += 2
		isEndInvalid := m.st.globIndex != len(m.glob) &&
			!(m.braces.length > 0 && (m.glob[m.st.globIndex] == '}' || m.glob[m.st.globIndex] == ','))
		precededBySep := m.st.globIndex < 3 ||
			m.glob[m.st.globIndex-3] == '/' ||
			(m.braces.length > 0 && (m.glob[m.st.globIndex-3] == '{' || m.glob[m.st.globIndex-3] == ','))
		if precededBySep && (!isEndInvalid || m.glob[m.st.globIndex] == '/') {
			if isEndInvalid {
				m.st.globIndex++
			}
			m.skipToSeparator(isEndInvalid)
			inGlobstar = true
		}
	} else {
		m.st.globIndex++
	}

	if m.st.pathIndex < len(m.path) && isSeparator(m.path[m.st.pathIndex]) {
		switch {
		case inGlobstar:
			m.st.pathIndex++
		case m.st.globstar.path > 0:
			// A single * cannot cross the separator, but an enclosing **
			// can: resume from its mark.
			m.st.wildcard = m.st.globstar
		default:
			m.st.wildcard.path = 0
		}
	}

	// If the next char is a special brace separator,
	// skip to the end of the braces so we don't try to match it.
	if m.braces.length > 0 && m.st.globIndex < len(m.glob) &&
		(m.glob[m.st.globIndex] == ',' || m.glob[m.st.globIndex] == '}') &&
		m.skipBraces(false) == braceInvalid {
		return stepFail
	}

	return stepContinue
}

func (m *matcher) matchBracket() step {
	m.st.globIndex++
	c := m.path[m.st.pathIndex]

	// Check if the character class is negated.
	negated := false
	if m.st.globIndex < len(m.glob) && (m.glob[m.st.globIndex] == '^' || m.glob[m.st.globIndex] == '!') {
		negated = true
		m.st.globIndex++
	}

	// Try each range.
	first := true
	isMatch := false
	for m.st.globIndex < len(m.glob) && (first || m.glob[m.st.globIndex] != ']') {
		low, ok := m.unescape(m.glob[m.st.globIndex])
		if !ok {
			return stepFail
		}
		m.st.globIndex++

		// If there is a - and the following character is not ], read the
		// range end character.
		high := low
		if m.st.globIndex+1 < len(m.glob) && m.glob[m.st.globIndex] == '-' && m.glob[m.st.globIndex+1] != ']' {
			m.st.globIndex++
			h, ok := m.unescape(m.glob[m.st.globIndex])
			if !ok {
				return stepFail
			}
			m.st.globIndex++
			high = h
		}

		if low <= c && c <= high {
			isMatch = true
		}
		first = false
	}
	if m.st.globIndex >= len(m.glob) {
		return stepFail
	}
	m.st.globIndex++
	if isMatch != negated {
		m.st.pathIndex++
		return stepContinue
	}
	return stepBacktrack
}

func (m *matcher) matchLiteral() step {
	c, ok := m.unescape(m.glob[m.st.globIndex])
	if !ok {
		return stepFail
	}

	var isMatch bool
	if c == '/' {
		isMatch = isSeparator(m.path[m.st.pathIndex])
	} else {
		isMatch = m.path[m.st.pathIndex] == c
	}

	if !isMatch {
		return stepBacktrack
	}

	if m.braces.length > 0 && m.st.globIndex > 0 && m.glob[m.st.globIndex-1] == '}' {
		m.braces.longestBraceMatch = uint32(m.st.pathIndex) + 1
		snap := m.st
		m.st = m.braces.pop(&snap)
	}
	m.st.globIndex++
	m.st.pathIndex++

	if c == '/' {
		m.st.wildcard = m.st.globstar
	}
	return stepContinue
}

// tryBacktrack restores the most recent star mark, or abandons the current
// brace alternative. It reports whether matching should continue; false
// means the pattern has failed to match.
func (m *matcher) tryBacktrack() bool {
	if m.st.wildcard.path > 0 && int(m.st.wildcard.path) <= len(m.path) {
		m.st.backtrack()
		return true
	}

	if m.braces.length > 0 {
		switch m.skipBraces(true) {
		case braceInvalid:
			return false

		case braceComma:
			m.st.pathIndex = m.braces.last().pathIndex
			return true

		case braceEnd:
			if m.braces.longestBraceMatch > 0 {
				snap := m.st
				m.st = m.braces.pop(&snap)
				return true
			}
			// No alternative matched: restore the pre-brace state and see
			// if an enclosing star can still save us.
			m.st = *m.braces.last()
			m.braces.length--
			if m.st.wildcard.path > 0 && int(m.st.wildcard.path) <= len(m.path) {
				m.st.backtrack()
				return true
			}
		}
	}

	return false
}

// skipGlobstars coalesces runs of `/**/**/` (and a trailing `/**`) into a
// single globstar token.
func (m *matcher) skipGlobstars() {
	gi := m.st.globIndex + 2
	for gi+4 <= len(m.glob) && m.glob[gi:gi+4] == "/**/" {
		gi += 3
	}
	if gi+3 == len(m.glob) && m.glob[gi:] == "/**" {
		gi += 3
	}
	m.st.globIndex = gi - 2
}

// skipToSeparator advances the globstar retry mark to the next path
// separator, so `**` is retried a whole segment at a time.
func (m *matcher) skipToSeparator(isEndInvalid bool) {
	if m.st.pathIndex == len(m.path) {
		m.st.wildcard.path++
		return
	}

	pi := m.st.pathIndex + 1
	for pi < len(m.path) && !isSeparator(m.path[pi]) {
		pi++
	}

	if isEndInvalid && pi == len(m.path) {
		pi++
	}

	m.st.wildcard.path = uint32(pi)
	m.st.globstar = m.st.wildcard
}

// skipBraces scans forward from inside a brace group. With stopOnComma it
// stops after the next top-level comma (the next alternative); otherwise it
// scans to the matching closing brace.
func (m *matcher) skipBraces(stopOnComma bool) braceState {
	braces := 1
	inBrackets := false
	for m.st.globIndex < len(m.glob) && braces > 0 {
		switch c := m.glob[m.st.globIndex]; {
		case c == '{' && !inBrackets:
			braces++
		case c == '}' && !inBrackets:
			braces--
		case c == ',' && stopOnComma && braces == 1 && !inBrackets:
			m.st.globIndex++
			return braceComma
		case (c == '*' || c == '?' || c == '[') && !inBrackets:
			if c == '[' {
				inBrackets = true
			}
			if c == '*' && m.st.globIndex+1 < len(m.glob) && m.glob[m.st.globIndex+1] == '*' {
				m.skipGlobstars()
				m.st.globIndex++
			}
		case c == ']':
			inBrackets = false
		case c == '\\':
			m.st.globIndex++
		}
		m.st.globIndex++
	}

	if braces != 0 {
		return braceInvalid
	}
	return braceEnd
}
