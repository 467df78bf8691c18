package globset

import (
	"sort"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/lintel-rs/globset/globmatch"
	"github.com/lintel-rs/globset/tried"
)

// suffixIdx attaches a required literal suffix to a pattern index. Used for
// `prefix/**/*<literal>` patterns hanging off a prefix trie hit.
type suffixIdx struct {
	suffix string
	idx    int
}

// prefixEntry is the payload behind one prefix-trie key.
type prefixEntry struct {
	// Patterns matched by the prefix alone (`prefix/**`).
	indices []int
	// Patterns that additionally require a literal suffix.
	prefixSuffix []suffixIdx
}

// suffixEntry is the payload behind one reversed-suffix-trie key.
type suffixEntry struct {
	// Patterns matched whenever the key is a suffix of the path.
	indices []int
	// Patterns matched only when the key is the entire path. `**/foo.txt`
	// must match the bare path `foo.txt` as well as `a/foo.txt`.
	exactIndices []int
}

// matchEngine is the compiled form shared by GlobSet and GlobMap. Patterns
// are bucketed by strategy at build time; matching a path consults each
// bucket with at most one hash lookup or trie walk.
type matchEngine struct {
	patterns []*Glob

	extAny   map[string][]int
	extLocal map[string][]int
	literals map[string]int

	prefixDA      *tried.DoubleArray
	prefixEntries []prefixEntry

	suffixDA      *tried.DoubleArray
	suffixEntries []suffixEntry

	// Aho-Corasick prefilter over literal fragments of the remaining glob
	// patterns. A pattern whose fragment is absent from the path cannot
	// match, so only prefilter hits are verified. Several patterns may share
	// one dictionary word, so each word maps to a list of glob indices.
	ac       *ahocorasick.Matcher
	acToGlob [][]int

	// Glob patterns with no usable literal fragment; always verified.
	alwaysCheck []int
}

func buildEngine(patterns []*Glob) (*matchEngine, error) {
	raw := make([]string, len(patterns))
	for i, g := range patterns {
		raw[i] = g.Glob()
	}
	strat := buildStrategies(raw)

	e := &matchEngine{
		patterns: patterns,
		extAny:   strat.extAny,
		extLocal: strat.extLocal,
		literals: strat.literals,
	}

	var err error
	e.prefixDA, e.prefixEntries, err = buildPrefixTrie(strat.prefixes, strat.prefixSuffixes)
	if err != nil {
		return nil, err
	}
	e.suffixDA, e.suffixEntries, err = buildSuffixTrie(strat.suffixes, strat.compoundSuffixes)
	if err != nil {
		return nil, err
	}

	acWords := make(map[string]int)
	var acDict []string
	for _, idx := range strat.globIndices {
		pat := raw[idx]
		if len(pat) > 0 && pat[0] == '!' {
			// A negated pattern matches when its literal is absent, so the
			// prefilter cannot gate it.
			e.alwaysCheck = append(e.alwaysCheck, idx)
			continue
		}
		lit, ok := extractLiteral(pat)
		if !ok {
			e.alwaysCheck = append(e.alwaysCheck, idx)
			continue
		}
		// The dictionary must be duplicate-free: the automaton reports each
		// word once, so all patterns sharing a word hang off the same entry.
		word, seen := acWords[lit]
		if !seen {
			word = len(acDict)
			acWords[lit] = word
			acDict = append(acDict, lit)
			e.acToGlob = append(e.acToGlob, nil)
		}
		e.acToGlob[word] = append(e.acToGlob[word], idx)
	}
	if len(acDict) > 0 {
		e.ac = ahocorasick.NewStringMatcher(acDict)
	}

	return e, nil
}

// buildPrefixTrie builds a double-array over prefix keys. Prefix-suffix
// patterns share the trie, hanging their suffix requirement off the prefix
// key.
func buildPrefixTrie(prefixes []indexedString, prefixSuffixes []indexedPrefixSuffix) (*tried.DoubleArray, []prefixEntry, error) {
	if len(prefixes) == 0 && len(prefixSuffixes) == 0 {
		return nil, nil, nil
	}

	byKey := make(map[string]*prefixEntry)
	entryFor := func(key string) *prefixEntry {
		e := byKey[key]
		if e == nil {
			e = &prefixEntry{}
			byKey[key] = e
		}
		return e
	}
	for _, p := range prefixes {
		e := entryFor(p.str)
		e.indices = append(e.indices, p.idx)
	}
	for _, ps := range prefixSuffixes {
		e := entryFor(ps.prefix)
		e.prefixSuffix = append(e.prefixSuffix, suffixIdx{ps.suffix, ps.idx})
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	keyset := make([]tried.Entry, len(keys))
	entries := make([]prefixEntry, len(keys))
	for i, key := range keys {
		keyset[i] = tried.Entry{Key: []byte(key), Value: uint32(i)}
		entries[i] = *byKey[key]
	}

	bytes, err := tried.Build(keyset)
	if err != nil {
		return nil, nil, err
	}
	return tried.New(bytes), entries, nil
}

// buildSuffixTrie builds a double-array over reversed suffix keys, walked
// with the reversed path. Basename suffixes (`**/name`, key `/name`) also
// register their bare form so that the whole-path match `name` is found;
// those land in exactIndices and only count when the hit spans the entire
// path.
func buildSuffixTrie(suffixes, compound []indexedString) (*tried.DoubleArray, []suffixEntry, error) {
	if len(suffixes) == 0 && len(compound) == 0 {
		return nil, nil, nil
	}

	byKey := make(map[string]*suffixEntry)
	entryFor := func(key string) *suffixEntry {
		e := byKey[key]
		if e == nil {
			e = &suffixEntry{}
			byKey[key] = e
		}
		return e
	}
	for _, s := range suffixes {
		e := entryFor(string(reverseBytes(s.str)))
		e.indices = append(e.indices, s.idx)
		// Bare name without the leading slash.
		bare := entryFor(string(reverseBytes(s.str[1:])))
		bare.exactIndices = append(bare.exactIndices, s.idx)
	}
	for _, c := range compound {
		e := entryFor(string(reverseBytes(c.str)))
		e.indices = append(e.indices, c.idx)
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	keyset := make([]tried.Entry, len(keys))
	entries := make([]suffixEntry, len(keys))
	for i, key := range keys {
		keyset[i] = tried.Entry{Key: []byte(key), Value: uint32(i)}
		entries[i] = *byKey[key]
	}

	bytes, err := tried.Build(keyset)
	if err != nil {
		return nil, nil, err
	}
	return tried.New(bytes), entries, nil
}

func reverseBytes(s string) []byte {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b[i] = s[len(s)-1-i]
	}
	return b
}

func (e *matchEngine) verify(idx int, path string) bool {
	return globmatch.Match(e.patterns[idx].Glob(), path)
}

// isMatch reports whether any pattern matches path.
func (e *matchEngine) isMatch(path string) bool {
	if ext, ok := pathExtension(path); ok {
		if len(e.extAny[ext]) > 0 {
			return true
		}
		for _, idx := range e.extLocal[ext] {
			if e.verify(idx, path) {
				return true
			}
		}
	}

	if _, ok := e.literals[path]; ok {
		return true
	}

	if e.prefixDA != nil {
		it := e.prefixDA.CommonPrefixSearch([]byte(path))
		for {
			value, length, ok := it.Next()
			if !ok {
				break
			}
			entry := &e.prefixEntries[value]
			if len(entry.indices) > 0 {
				return true
			}
			for _, ps := range entry.prefixSuffix {
				if len(path) >= length+len(ps.suffix) && strings.HasSuffix(path, ps.suffix) {
					return true
				}
			}
		}
	}

	if e.suffixDA != nil {
		rev := reverseBytes(path)
		it := e.suffixDA.CommonPrefixSearch(rev)
		for {
			value, length, ok := it.Next()
			if !ok {
				break
			}
			entry := &e.suffixEntries[value]
			if len(entry.indices) > 0 {
				return true
			}
			if length == len(path) && len(entry.exactIndices) > 0 {
				return true
			}
		}
	}

	for _, idx := range e.alwaysCheck {
		if e.verify(idx, path) {
			return true
		}
	}

	if e.ac != nil {
		for _, hit := range e.ac.MatchThreadSafe([]byte(path)) {
			for _, idx := range e.acToGlob[hit] {
				if e.verify(idx, path) {
					return true
				}
			}
		}
	}

	return false
}

// matchesInto appends the indices of all matching patterns to into,
// deduplicated but in bucket-scan order, and returns the result.
func (e *matchEngine) matchesInto(path string, into []int) []int {
	seen := make([]bool, len(e.patterns))
	add := func(idx int) {
		if !seen[idx] {
			seen[idx] = true
			into = append(into, idx)
		}
	}

	if ext, ok := pathExtension(path); ok {
		for _, idx := range e.extAny[ext] {
			add(idx)
		}
		for _, idx := range e.extLocal[ext] {
			if e.verify(idx, path) {
				add(idx)
			}
		}
	}

	if idx, ok := e.literals[path]; ok {
		add(idx)
	}

	if e.prefixDA != nil {
		it := e.prefixDA.CommonPrefixSearch([]byte(path))
		for {
			value, length, ok := it.Next()
			if !ok {
				break
			}
			entry := &e.prefixEntries[value]
			for _, idx := range entry.indices {
				add(idx)
			}
			for _, ps := range entry.prefixSuffix {
				if len(path) >= length+len(ps.suffix) && strings.HasSuffix(path, ps.suffix) {
					add(ps.idx)
				}
			}
		}
	}

	if e.suffixDA != nil {
		rev := reverseBytes(path)
		it := e.suffixDA.CommonPrefixSearch(rev)
		for {
			value, length, ok := it.Next()
			if !ok {
				break
			}
			entry := &e.suffixEntries[value]
			for _, idx := range entry.indices {
				add(idx)
			}
			if length == len(path) {
				for _, idx := range entry.exactIndices {
					add(idx)
				}
			}
		}
	}

	for _, idx := range e.alwaysCheck {
		if e.verify(idx, path) {
			add(idx)
		}
	}

	if e.ac != nil {
		for _, hit := range e.ac.MatchThreadSafe([]byte(path)) {
			for _, idx := range e.acToGlob[hit] {
				if e.verify(idx, path) {
					add(idx)
				}
			}
		}
	}

	return into
}

// firstMatch returns the lowest index of any matching pattern. Buckets whose
// candidate index is already above the best seen are skipped without
// verification.
func (e *matchEngine) firstMatch(path string) (int, bool) {
	best := len(e.patterns)
	consider := func(idx int) {
		if idx < best {
			best = idx
		}
	}

	if ext, ok := pathExtension(path); ok {
		if indices := e.extAny[ext]; len(indices) > 0 {
			// Indices are appended in pattern order, so the head is the
			// minimum.
			consider(indices[0])
		}
		for _, idx := range e.extLocal[ext] {
			if idx >= best {
				break
			}
			if e.verify(idx, path) {
				consider(idx)
			}
		}
	}

	if idx, ok := e.literals[path]; ok {
		consider(idx)
	}

	if e.prefixDA != nil {
		it := e.prefixDA.CommonPrefixSearch([]byte(path))
		for {
			value, length, ok := it.Next()
			if !ok {
				break
			}
			entry := &e.prefixEntries[value]
			for _, idx := range entry.indices {
				consider(idx)
			}
			for _, ps := range entry.prefixSuffix {
				if ps.idx < best && len(path) >= length+len(ps.suffix) && strings.HasSuffix(path, ps.suffix) {
					consider(ps.idx)
				}
			}
		}
	}

	if e.suffixDA != nil {
		rev := reverseBytes(path)
		it := e.suffixDA.CommonPrefixSearch(rev)
		for {
			value, length, ok := it.Next()
			if !ok {
				break
			}
			entry := &e.suffixEntries[value]
			for _, idx := range entry.indices {
				consider(idx)
			}
			if length == len(path) {
				for _, idx := range entry.exactIndices {
					consider(idx)
				}
			}
		}
	}

	for _, idx := range e.alwaysCheck {
		if idx >= best {
			break
		}
		if e.verify(idx, path) {
			consider(idx)
		}
	}

	if e.ac != nil {
		for _, hit := range e.ac.MatchThreadSafe([]byte(path)) {
			for _, idx := range e.acToGlob[hit] {
				if idx >= best {
					break
				}
				if e.verify(idx, path) {
					consider(idx)
				}
			}
		}
	}

	if best == len(e.patterns) {
		return 0, false
	}
	return best, true
}
